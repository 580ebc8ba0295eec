package blobstore

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("blob not found")
	ErrExists   = errors.New("blob already exists")
)

type Object struct {
	Key         string
	ContentType string
	Size        int64
	Body        []byte
	StoredAt    time.Time
}

// Store guarda objetos inmutables (create-only).
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (Object, error)
	Get(ctx context.Context, key string) (Object, error)
}
