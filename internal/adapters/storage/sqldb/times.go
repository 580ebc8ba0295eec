package sqldb

import (
	"fmt"
	"time"
)

// timeValue escanea agregados de fecha (MIN, MAX). SQLite los devuelve como texto
// porque pierden el tipo declarado de la columna.
type timeValue struct {
	Time time.Time
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
}

func (v *timeValue) Scan(src any) error {
	switch x := src.(type) {
	case time.Time:
		v.Time = x
		return nil
	case string:
		return v.parse(x)
	case []byte:
		return v.parse(string(x))
	case nil:
		v.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("unsupported time value %T", src)
}

func (v *timeValue) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			v.Time = t
			return nil
		}
	}
	return fmt.Errorf("unparseable time %q", s)
}
