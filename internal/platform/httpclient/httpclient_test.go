package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultTimeout, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotSame(t, http.DefaultTransport, tr)
	assert.Equal(t, 16, tr.MaxIdleConnsPerHost)
}

type stubRT struct{}

func (stubRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, nil }

func TestNewWithTransport(t *testing.T) {
	c := NewWithTransport(2*time.Second, stubRT{})
	assert.Equal(t, 2*time.Second, c.Timeout)
	assert.Equal(t, stubRT{}, c.Transport)

	c = NewWithTransport(0, nil)
	assert.Equal(t, http.DefaultTransport, c.Transport)
}
