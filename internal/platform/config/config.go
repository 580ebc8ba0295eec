// Package config lee la configuración del proceso desde el entorno y las reglas
// de negocio desde el archivo de settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"

	BlobMemory = "memory"
	BlobS3     = "s3"
)

type Config struct {
	Port    string
	AppName string

	LogLevel  string
	LogFormat string

	StorageDriver string
	DBDSN         string
	SQLitePath    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	BlobDriver string
	S3         S3Config

	SettingsPath string
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// FromEnv lee el entorno del proceso.
func FromEnv() (Config, error) {
	return Load(os.Getenv)
}

// Load recibe el lookup para poder testear sin tocar el entorno.
func Load(getenv func(string) string) (Config, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	c := Config{
		Port:          get("PORT", "8080"),
		AppName:       get("APP_NAME", "pet-shelter"),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "text"),
		StorageDriver: strings.ToLower(get("STORAGE_DRIVER", "")),
		DBDSN:         get("DB_DSN", ""),
		SQLitePath:    get("SQLITE_PATH", "pet-shelter.db"),
		RedisAddr:     get("REDIS_ADDR", ""),
		RedisPassword: get("REDIS_PASSWORD", ""),
		BlobDriver:    strings.ToLower(get("BLOB_DRIVER", BlobMemory)),
		S3: S3Config{
			Bucket:          get("BLOB_S3_BUCKET", ""),
			Region:          get("BLOB_S3_REGION", "us-east-1"),
			Endpoint:        get("BLOB_S3_ENDPOINT", ""),
			Prefix:          get("BLOB_S3_PREFIX", ""),
			AccessKeyID:     get("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: get("AWS_SECRET_ACCESS_KEY", ""),
			PathStyle:       strings.EqualFold(get("BLOB_S3_PATH_STYLE", "false"), "true"),
		},
		SettingsPath: get("SHELTER_SETTINGS", ""),
	}

	// Sin driver explícito: postgres si hay DSN, memoria si no.
	if c.StorageDriver == "" {
		c.StorageDriver = StorageMemory
		if c.DBDSN != "" {
			c.StorageDriver = StoragePostgres
		}
	}

	db, err := strconv.Atoi(get("REDIS_DB", "0"))
	if err != nil || db < 0 {
		return Config{}, fmt.Errorf("REDIS_DB must be a non-negative integer")
	}
	c.RedisDB = db

	return c, c.validate()
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.BlobDriver {
	case BlobMemory:
	case BlobS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("BLOB_S3_BUCKET required for s3 blob driver")
		}
	default:
		return fmt.Errorf("unknown BLOB_DRIVER %q", c.BlobDriver)
	}

	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
