// Package record is the fallback lookup tier: a direct query against the
// committed account records only. It cannot see pending registrations; that
// loss of visibility is the accepted price of availability when the
// authoritative directory is degraded.
package record

import (
	"context"
	"strings"
	"sync"

	"idcheck/internal/identity/models"
)

// MemoryStore keeps committed records in memory. Development and tests use
// it in place of Postgres.
type MemoryStore struct {
	mu     sync.RWMutex
	emails map[string]struct{}
	phones map[string]struct{}
	names  map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		emails: make(map[string]struct{}),
		phones: make(map[string]struct{}),
		names:  make(map[string]struct{}),
	}
}

func (s *MemoryStore) Name() string { return "records" }

func (s *MemoryStore) Exists(_ context.Context, kind models.IdentityKind, value string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch kind {
	case models.KindPhone:
		_, ok := s.phones[value]
		return ok, nil
	case models.KindName:
		_, ok := s.names[strings.ToLower(value)]
		return ok, nil
	default:
		_, ok := s.emails[strings.ToLower(value)]
		return ok, nil
	}
}

// Add registers a committed identity value, mimicking a confirmed account
// row.
func (s *MemoryStore) Add(kind models.IdentityKind, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case models.KindPhone:
		s.phones[value] = struct{}{}
	case models.KindName:
		s.names[strings.ToLower(value)] = struct{}{}
	default:
		s.emails[strings.ToLower(value)] = struct{}{}
	}
}
