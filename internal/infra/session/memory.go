package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	username  string
	expiresAt time.Time
}

// MemoryStore хранилище токенов в памяти процесса.
// Используется, когда Redis выключен в конфигурации, и в тестах.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore создает пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Save сохраняет токен на время ttl
func (s *MemoryStore) Save(_ context.Context, token, username string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[hashToken(token)] = memoryEntry{username: username, expiresAt: s.now().Add(ttl)}
	return nil
}

// Lookup возвращает логин владельца токена, просроченные записи удаляются
func (s *MemoryStore) Lookup(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := hashToken(token)
	entry, ok := s.entries[key]
	if !ok {
		return "", ErrTokenNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return "", ErrTokenNotFound
	}
	return entry.username, nil
}

// Delete удаляет токен
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, hashToken(token))
	return nil
}

// Ping всегда успешен
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
