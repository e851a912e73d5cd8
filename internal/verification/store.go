package verification

import (
	"context"
	"sync"
	"time"
)

// Registration is the pending sign-up payload held until the e-mailed code is
// confirmed. Expires travels inside the payload so every Store implementation
// lets the caller distinguish "expired" from "never requested".
type Registration struct {
	Nome     string    `json:"nome"`
	Email    string    `json:"email"`
	Contacto string    `json:"contacto"`
	BI       string    `json:"bi"`
	Password string    `json:"password"`
	Tipo     string    `json:"tipo"`
	Code     int       `json:"code"`
	Expires  time.Time `json:"expires"`
}

// Store keeps pending registrations keyed by e-mail.
type Store interface {
	Put(ctx context.Context, email string, reg Registration) error
	Get(ctx context.Context, email string) (Registration, bool, error)
	Delete(ctx context.Context, email string) error
}

// MemoryStore lives for the duration of the process. Entries outlive their
// expiry until fetched or replaced, so expiry handling stays with the caller.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Registration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]Registration{}}
}

func (s *MemoryStore) Put(_ context.Context, email string, reg Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = reg
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (Registration, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.entries[email]
	return reg, ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}
