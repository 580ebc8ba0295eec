package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"pet-shelter/internal/ports/blobstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 implementa Head/Get/Put en memoria, suficiente para el adapter sin red.
type fakeS3 struct {
	mu    sync.Mutex
	state map[string]fakeObj
}

type fakeObj struct {
	body        []byte
	contentType string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// path-style: /bucket/key
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch req.Method {
	case http.MethodHead:
		if st, ok := f.state[key]; ok {
			return respond(http.StatusOK, nil, http.Header{
				"Content-Length": {strconv.Itoa(len(st.body))},
				"Content-Type":   {st.contentType},
			}), nil
		}
		return respond(http.StatusNotFound, nil, http.Header{}), nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if dec, ok := decodeChunked(body); ok {
			body = dec
		}
		f.state[key] = fakeObj{body: body, contentType: req.Header.Get("Content-Type")}
		return respond(http.StatusOK, nil, http.Header{"ETag": {"\"etag\""}}), nil
	case http.MethodGet:
		if st, ok := f.state[key]; ok {
			return respond(http.StatusOK, st.body, http.Header{
				"Content-Length": {strconv.Itoa(len(st.body))},
				"Content-Type":   {st.contentType},
				"Last-Modified":  {time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC).Format(http.TimeFormat)},
			}), nil
		}
		msg := `<?xml version="1.0"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`
		return respond(http.StatusNotFound, []byte(msg), http.Header{"Content-Type": {"application/xml"}}), nil
	}
	return respond(http.StatusNotImplemented, nil, http.Header{}), nil
}

func respond(status int, body []byte, h http.Header) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(body)), Header: h}
}

// decodeChunked desarma un payload aws-chunked de un solo chunk: <hex>\r\n<body>\r\n0\r\n...
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.SplitN(string(b), "\r\n", 3)
	if len(parts) < 3 {
		return nil, false
	}
	size, err := strconv.ParseInt(strings.SplitN(parts[0], ";", 2)[0], 16, 64)
	if err != nil || int64(len(parts[1])) != size || !strings.HasPrefix(parts[2], "0") {
		return nil, false
	}
	return []byte(parts[1]), true
}

func newTestStore(t *testing.T) (*Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{state: map[string]fakeObj{}}
	s, err := New(context.Background(), Config{
		Bucket:          "contracts",
		Endpoint:        "https://mock.s3.local",
		Prefix:          "shelter/",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: fake},
	})
	require.NoError(t, err)
	return s, fake
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}

func TestPutGet_RoundTrip(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()

	info, err := s.Put(ctx, "a1.txt", []byte("contrato"), "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, int64(len("contrato")), info.Size)
	assert.Contains(t, fake.state, "shelter/a1.txt")

	got, err := s.Get(ctx, "a1.txt")
	require.NoError(t, err)
	assert.Equal(t, "contrato", string(got.Body))
	assert.Equal(t, "text/plain; charset=utf-8", got.ContentType)
}

func TestPut_CreateOnly(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "a1.txt", []byte("v1"), "text/plain")
	require.NoError(t, err)
	_, err = s.Put(ctx, "a1.txt", []byte("v2"), "text/plain")
	assert.ErrorIs(t, err, blobstore.ErrExists)

	got, err := s.Get(ctx, "a1.txt")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got.Body))
}

func TestGet_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Get(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound, fmt.Sprint(err))
}
