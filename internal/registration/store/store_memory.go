package store

import (
	"context"
	"sync"

	"regguard/internal/registration/models"
	"regguard/pkg/email"
)

// InMemoryDirectory is a process-local user directory for development and
// tests. Its Complete method stands in for the host's persistence so that a
// second registration with the same email or username is rejected.
type InMemoryDirectory struct {
	mu        sync.RWMutex
	emails    map[string]struct{}
	usernames map[string]struct{}
}

func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{
		emails:    make(map[string]struct{}),
		usernames: make(map[string]struct{}),
	}
}

func (d *InMemoryDirectory) EmailExists(_ context.Context, address string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.emails[email.Normalize(address)]
	return ok, nil
}

func (d *InMemoryDirectory) UsernameExists(_ context.Context, username string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.usernames[normalizeUsername(username)]
	return ok, nil
}

// Add records a registered user.
func (d *InMemoryDirectory) Add(address, username string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if address != "" {
		d.emails[email.Normalize(address)] = struct{}{}
	}
	if username != "" {
		d.usernames[normalizeUsername(username)] = struct{}{}
	}
}

// Complete records the attempt's user once the host reports it persisted.
func (d *InMemoryDirectory) Complete(_ context.Context, attempt models.RegistrationAttempt) error {
	d.Add(attempt.Email, attempt.Username)
	return nil
}
