// Package storage provides the key-value persistence port for application
// state. Values are opaque JSON payloads and writes are last-write-wins;
// there are no transactions across keys.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
)

// ErrNotFound signals that a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Logical keys for the persisted application state.
const (
	KeyDiscoveredEvents = "kn-custom-events"
	KeyFavorites        = "kn-favorites"
	KeyUser             = "kn-user"
)

// SchemaVersion is written alongside every value so the stored state can be
// evolved safely later. Readers currently accept any version.
const SchemaVersion = 1

// KV is the storage port. Implementations must be safe for concurrent use.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Load reads key from kv and unmarshals it into v, which must be a non-nil
// pointer. Missing or corrupt entries leave v untouched and report false;
// they are never an error, so initialization cannot fail on bad stored state.
// Decoding goes through a fresh value so a partially-valid payload cannot
// leak partial data into v.
func Load(ctx context.Context, kv KV, key string, v any) bool {
	data, err := kv.Get(ctx, key)
	if err != nil {
		return false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}

	fresh := reflect.New(rv.Type().Elem())
	if json.Unmarshal(data, fresh.Interface()) != nil {
		return false
	}
	rv.Elem().Set(fresh.Elem())
	return true
}

// Save marshals v and writes it under key.
func Save(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, data)
}
