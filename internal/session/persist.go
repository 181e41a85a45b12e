package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/erazemk/rewear/internal/model"
	"github.com/erazemk/rewear/internal/store"
)

// StorageKey is the local storage key holding the current identity.
const StorageKey = "rewear_user"

// ErrMalformedRecord is returned by Load when a stored record cannot be
// decoded into a usable identity.
var ErrMalformedRecord = errors.New("malformed session record")

// Persister mirrors the current identity into durable storage. It is the
// only boundary between the session store and wherever the record lives:
// one record in, one record out.
type Persister interface {
	// Load returns the stored identity. The boolean is false when nothing
	// is stored.
	Load(ctx context.Context) (model.Identity, bool, error)
	Save(ctx context.Context, id model.Identity) error
	Clear(ctx context.Context) error
}

// KVPersister stores the identity as JSON under a single key of the local
// key-value table.
type KVPersister struct {
	DB  *sql.DB
	Key string
}

// NewKVPersister returns a persister using the default storage key.
func NewKVPersister(db *sql.DB) *KVPersister {
	return &KVPersister{DB: db, Key: StorageKey}
}

// Load implements Persister.
func (p *KVPersister) Load(ctx context.Context) (model.Identity, bool, error) {
	raw, ok, err := store.GetValue(ctx, p.DB, p.Key)
	if err != nil || !ok {
		return model.Identity{}, false, err
	}

	var id model.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return model.Identity{}, false, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if !id.Valid() {
		return model.Identity{}, false, fmt.Errorf("%w: missing id or email", ErrMalformedRecord)
	}
	return id, true, nil
}

// Save implements Persister.
func (p *KVPersister) Save(ctx context.Context, id model.Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	return store.SetValue(ctx, p.DB, p.Key, string(data))
}

// Clear implements Persister.
func (p *KVPersister) Clear(ctx context.Context) error {
	return store.DeleteValue(ctx, p.DB, p.Key)
}
