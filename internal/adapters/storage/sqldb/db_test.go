package sqldb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQ_RewritesPlaceholders(t *testing.T) {
	const query = `SELECT id FROM animals WHERE id = $1 AND status IN ($2,$10)`

	numbered := &DB{d: Dialect{NumberedParams: true}}
	assert.Equal(t, query, numbered.q(query))

	positional := &DB{d: Dialect{}}
	assert.Equal(t, `SELECT id FROM animals WHERE id = ?1 AND status IN (?2,?10)`, positional.q(query))
}

func TestTimeValue_Scan(t *testing.T) {
	want := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		src  any
	}{
		{"time", want},
		{"sqlite text", "2025-03-01 10:30:00+00:00"},
		{"iso text", "2025-03-01T10:30:00+00:00"},
		{"rfc3339 bytes", []byte("2025-03-01T10:30:00Z")},
		{"go string", "2025-03-01 10:30:00 +0000 UTC"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v timeValue
			require.NoError(t, v.Scan(tc.src))
			assert.True(t, want.Equal(v.Time), "got %s", v.Time)
		})
	}

	var v timeValue
	require.NoError(t, v.Scan(nil))
	assert.True(t, v.Time.IsZero())

	assert.Error(t, v.Scan(42))
	assert.Error(t, v.Scan("ayer"))
}

func TestMapErr_Duplicate(t *testing.T) {
	s := &DB{d: Dialect{IsDuplicate: func(err error) bool { return err.Error() == "dup" }}}
	assert.Nil(t, s.mapErr(nil))
	assert.Contains(t, s.mapErr(errString("dup")).Error(), "duplicate key")
	assert.Equal(t, errString("other"), s.mapErr(errString("other")))
}

type errString string

func (e errString) Error() string { return string(e) }
