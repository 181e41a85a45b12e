package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erazemk/rewear/internal/db"
	"github.com/erazemk/rewear/internal/model"
	"github.com/erazemk/rewear/internal/store"
)

func newTestStore(t *testing.T) (*Store, *KVPersister) {
	t.Helper()
	p := NewKVPersister(db.NewTestDB(t))
	return Open(context.Background(), p, SeedIdentities()), p
}

func TestLoginKnownEmail(t *testing.T) {
	ctx := context.Background()
	s, p := newTestStore(t)

	id, err := s.Login(ctx, "user@example.com", "anything")
	require.NoError(t, err)
	require.Equal(t, "Jane Smith", id.Name)

	cur, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "2", cur.ID)

	stored, ok, err := p.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", stored.ID)
}

func TestLoginUnknownEmail(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Login(context.Background(), "nobody@example.com", "secret")
	require.ErrorIs(t, err, ErrUnknownEmail)

	_, ok := s.Current()
	require.False(t, ok)
}

func TestLoginEmptySecret(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Login(context.Background(), "user@example.com", "")
	require.ErrorIs(t, err, ErrSecretRequired)

	_, ok := s.Current()
	require.False(t, ok)
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	id, err := s.Signup(ctx, "new@example.com", "secret1", "New Person")
	require.NoError(t, err)
	require.NotEmpty(t, id.ID)
	require.Equal(t, model.WelcomeBonus, id.Points)
	require.False(t, id.IsAdmin)
	require.False(t, id.JoinedAt.IsZero())

	require.Len(t, s.Known(), 3)
	cur, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, id.ID, cur.ID)

	// The new identity can log in again later.
	s.Logout(ctx)
	_, err = s.Login(ctx, "new@example.com", "x")
	require.NoError(t, err)
}

func TestSignupRejectedLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	tests := []struct {
		email, secret, name string
		want                error
	}{
		{"a@example.com", "12345", "A", ErrSecretTooShort},
		{"", "123456", "A", ErrEmailRequired},
		{"a@example.com", "123456", "", ErrNameRequired},
		{"user@example.com", "123456", "Dup", ErrEmailTaken},
	}

	for _, tt := range tests {
		_, err := s.Signup(ctx, tt.email, tt.secret, tt.name)
		require.ErrorIs(t, err, tt.want)
		require.Len(t, s.Known(), 2)
		_, ok := s.Current()
		require.False(t, ok)
	}
}

func TestLogoutClearsPersistedRecord(t *testing.T) {
	ctx := context.Background()
	s, p := newTestStore(t)

	_, err := s.Login(ctx, "admin@rewear.com", "pw")
	require.NoError(t, err)

	s.Logout(ctx)
	_, ok := s.Current()
	require.False(t, ok)

	_, ok, err = p.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// Logging out twice is fine.
	s.Logout(ctx)
}

func TestUpdateCurrent(t *testing.T) {
	ctx := context.Background()
	s, p := newTestStore(t)

	name := "Renamed"
	_, ok, err := s.UpdateCurrent(ctx, model.IdentityUpdate{Name: &name})
	require.NoError(t, err)
	require.False(t, ok, "update without a session is a no-op")

	_, err = s.Login(ctx, "user@example.com", "pw")
	require.NoError(t, err)

	points := 30
	id, ok, err := s.UpdateCurrent(ctx, model.IdentityUpdate{Name: &name, Points: &points})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Renamed", id.Name)
	require.Equal(t, 30, id.Points)
	require.Equal(t, "user@example.com", id.Email)

	stored, _, err := p.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "Renamed", stored.Name)

	known, ok := s.Lookup("2")
	require.True(t, ok)
	require.Equal(t, 30, known.Points)

	negative := -1
	_, _, err = s.UpdateCurrent(ctx, model.IdentityUpdate{Points: &negative})
	require.ErrorIs(t, err, model.ErrNegativePoints)
}

func TestOpenRestoresSession(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)
	p := NewKVPersister(database)

	first := Open(ctx, p, SeedIdentities())
	_, err := first.Login(ctx, "user@example.com", "pw")
	require.NoError(t, err)

	second := Open(ctx, p, SeedIdentities())
	cur, ok := second.Current()
	require.True(t, ok)
	require.Equal(t, "Jane Smith", cur.Name)
}

func TestOpenRestoresSignedUpIdentity(t *testing.T) {
	ctx := context.Background()
	p := NewKVPersister(db.NewTestDB(t))

	first := Open(ctx, p, SeedIdentities())
	_, err := first.Signup(ctx, "late@example.com", "secret1", "Late")
	require.NoError(t, err)

	// A fresh process only seeds the demo accounts; the restored identity
	// rejoins the directory.
	second := Open(ctx, p, SeedIdentities())
	require.Len(t, second.Known(), 3)
}

func TestOpenDiscardsMalformedRecord(t *testing.T) {
	ctx := context.Background()

	for _, raw := range []string{`{not json`, `{"id":"","email":""}`, `[]`} {
		database := db.NewTestDB(t)
		require.NoError(t, store.SetValue(ctx, database, StorageKey, raw))

		s := Open(ctx, NewKVPersister(database), SeedIdentities())
		_, ok := s.Current()
		require.False(t, ok, "record %q should be treated as absent", raw)

		_, present, err := store.GetValue(ctx, database, StorageKey)
		require.NoError(t, err)
		require.False(t, present, "malformed record should be removed")
	}
}
