package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// MemoryStorage is a map-backed Storage used in tests and local development.
// It mimics the store contract: unordered listings, idempotent deletes, and
// per-object last-modified timestamps.
type MemoryStorage struct {
	mu         sync.RWMutex
	objects    map[string]memoryObject
	publicBase string
}

type memoryObject struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage(publicBase string) *MemoryStorage {
	return &MemoryStorage{
		objects:    make(map[string]memoryObject),
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

func (s *MemoryStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("read body for %q: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memoryObject{
		data:         data,
		contentType:  contentType,
		lastModified: time.Now(),
	}
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return data, nil
}

func (s *MemoryStorage) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := []ObjectInfo{}
	// Map iteration order stands in for the store's lack of an ordering
	// guarantee.
	for key, obj := range s.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, ObjectInfo{
				Key:          key,
				Size:         int64(len(obj.data)),
				LastModified: obj.lastModified,
			})
		}
	}
	return infos, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *MemoryStorage) PresignedPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	expires := time.Now().Add(expiry).UTC()
	return fmt.Sprintf("%s/%s?X-Amz-Expires=%d&X-Amz-Date=%s",
		s.publicBase, key, int(expiry.Seconds()), expires.Format("20060102T150405Z")), nil
}

func (s *MemoryStorage) PublicURL(key string) string {
	return s.publicBase + "/" + key
}

// SetLastModified overrides an object's timestamp. Tests use it to build
// galleries with a known upload order.
func (s *MemoryStorage) SetLastModified(key string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if obj, ok := s.objects[key]; ok {
		obj.lastModified = t
		s.objects[key] = obj
	}
}
