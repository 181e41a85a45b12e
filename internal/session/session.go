// Package session owns the current identity and the directory of known
// identities, and mirrors the current identity through a Persister.
package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/erazemk/rewear/internal/model"
)

var (
	ErrUnknownEmail   = errors.New("no identity with that email")
	ErrSecretRequired = errors.New("secret required")
	ErrEmailRequired  = errors.New("email required")
	ErrNameRequired   = errors.New("name required")
	ErrSecretTooShort = errors.New("secret must be at least 6 characters")
	ErrEmailTaken     = errors.New("email already registered")
)

// Store holds at most one current identity.
type Store struct {
	mu        sync.RWMutex
	persister Persister
	known     []model.Identity
	current   *model.Identity
	now       func() time.Time
}

// Open creates a session store over the given known identities and restores
// a persisted session if one exists. A malformed record is discarded and the
// store starts logged out.
func Open(ctx context.Context, p Persister, known []model.Identity) *Store {
	s := &Store{
		persister: p,
		known:     slices.Clone(known),
		now:       time.Now,
	}

	id, ok, err := p.Load(ctx)
	switch {
	case err != nil:
		slog.Warn("discarding persisted session", "error", err)
		if err := p.Clear(ctx); err != nil {
			slog.Warn("failed to clear persisted session", "error", err)
		}
	case ok:
		s.remember(id)
		s.current = &id
		slog.Info("session restored", "user", id.Email)
	}

	return s
}

// Current returns the current identity, if any.
func (s *Store) Current() (model.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.Identity{}, false
	}
	return *s.current, true
}

// Known returns a copy of the known-identities directory.
func (s *Store) Known() []model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.known)
}

// Lookup returns the known identity with the given ID.
func (s *Store) Lookup(id string) (model.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.known, func(k model.Identity) bool { return k.ID == id })
	if i < 0 {
		return model.Identity{}, false
	}
	return s.known[i], true
}

// Login makes the identity registered under email current. The secret is
// only checked for presence.
func (s *Store) Login(ctx context.Context, email, secret string) (model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByEmail(email)
	if i < 0 {
		return model.Identity{}, ErrUnknownEmail
	}
	if secret == "" {
		return model.Identity{}, ErrSecretRequired
	}

	id := s.known[i]
	s.setCurrent(ctx, id)
	return id, nil
}

// Signup registers a new identity with the welcome bonus and makes it
// current. On failure neither the directory nor the current identity change.
func (s *Store) Signup(ctx context.Context, email, secret, name string) (model.Identity, error) {
	switch {
	case email == "":
		return model.Identity{}, ErrEmailRequired
	case name == "":
		return model.Identity{}, ErrNameRequired
	case len(secret) < model.MinSecretLength:
		return model.Identity{}, ErrSecretTooShort
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByEmail(email) >= 0 {
		return model.Identity{}, ErrEmailTaken
	}

	id := model.Identity{
		ID:       model.NewID(),
		Email:    email,
		Name:     name,
		Points:   model.WelcomeBonus,
		JoinedAt: s.now().UTC(),
	}
	s.known = append(s.known, id)
	s.setCurrent(ctx, id)
	return id, nil
}

// Logout clears the current identity and its persisted copy.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.persister.Clear(ctx); err != nil {
		slog.Warn("failed to clear persisted session", "error", err)
	}
}

// UpdateCurrent merges u into the current identity and its directory entry.
// It reports false, without error, when nobody is logged in.
func (s *Store) UpdateCurrent(ctx context.Context, u model.IdentityUpdate) (model.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return model.Identity{}, false, nil
	}

	id, err := u.Apply(*s.current)
	if err != nil {
		return model.Identity{}, true, err
	}
	s.remember(id)
	s.setCurrent(ctx, id)
	return id, true, nil
}

// setCurrent must be called with mu held.
func (s *Store) setCurrent(ctx context.Context, id model.Identity) {
	s.current = &id
	if err := s.persister.Save(ctx, id); err != nil {
		slog.Warn("failed to persist session", "user", id.Email, "error", err)
	}
}

// remember replaces the directory entry with the same ID, or appends one.
func (s *Store) remember(id model.Identity) {
	i := slices.IndexFunc(s.known, func(k model.Identity) bool { return k.ID == id.ID })
	if i < 0 {
		i = s.indexByEmail(id.Email)
	}
	if i < 0 {
		s.known = append(s.known, id)
		return
	}
	s.known[i] = id
}

func (s *Store) indexByEmail(email string) int {
	return slices.IndexFunc(s.known, func(k model.Identity) bool { return k.Email == email })
}
