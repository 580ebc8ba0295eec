// Package memory guarda blobs en el proceso. Es el driver por defecto.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-shelter/internal/ports/blobstore"
)

type Store struct {
	mu      sync.RWMutex
	objects map[string]blobstore.Object
	now     func() time.Time
}

func New() *Store {
	return &Store{objects: map[string]blobstore.Object{}, now: time.Now}
}

func (s *Store) Put(_ context.Context, key string, body []byte, contentType string) (blobstore.Object, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return blobstore.Object{}, fmt.Errorf("blob key required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[key]; exists {
		return blobstore.Object{}, fmt.Errorf("%s: %w", key, blobstore.ErrExists)
	}
	obj := blobstore.Object{
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(body)),
		Body:        append([]byte(nil), body...),
		StoredAt:    s.now().UTC(),
	}
	s.objects[key] = obj
	return withoutBody(obj), nil
}

func (s *Store) Get(_ context.Context, key string) (blobstore.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return blobstore.Object{}, fmt.Errorf("%s: %w", key, blobstore.ErrNotFound)
	}
	obj.Body = append([]byte(nil), obj.Body...)
	return obj, nil
}

func withoutBody(o blobstore.Object) blobstore.Object {
	o.Body = nil
	return o
}
