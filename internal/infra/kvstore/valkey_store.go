package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/belaycheck/internal/domain/kv"
)

// minValkeyTTL is the smallest expiry SET EX accepts.
const minValkeyTTL = time.Second

// valkeyCommands is the subset of Valkey the store issues. A zero ttl means
// no expiry.
type valkeyCommands interface {
	get(ctx context.Context, key string) (string, error)
	set(ctx context.Context, key, value string, ttl time.Duration) error
	del(ctx context.Context, key string) error
}

// ValkeyStore persists client state in a Valkey-compatible database.
type ValkeyStore struct {
	cmds   valkeyCommands
	prefix string
	ttl    time.Duration
}

// NewValkeyStore constructs a new store backed by Valkey. A positive ttl
// expires idle client keys.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	return newValkeyStore(clientCommands{client: client}, prefix, ttl)
}

func newValkeyStore(cmds valkeyCommands, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "belaycheck"
	}
	return &ValkeyStore{cmds: cmds, prefix: prefix, ttl: ttl}
}

// Get implements kv.Store.
func (s *ValkeyStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	value, err := s.cmds.get(ctx, s.entryKey(namespace, key))
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set implements kv.Store.
func (s *ValkeyStore) Set(ctx context.Context, namespace, key, value string) error {
	return s.cmds.set(ctx, s.entryKey(namespace, key), value, s.expiry())
}

// Delete implements kv.Store.
func (s *ValkeyStore) Delete(ctx context.Context, namespace, key string) error {
	return s.cmds.del(ctx, s.entryKey(namespace, key))
}

func (s *ValkeyStore) expiry() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	if s.ttl < minValkeyTTL {
		return minValkeyTTL
	}
	return s.ttl
}

func (s *ValkeyStore) entryKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, namespace, key)
}

type clientCommands struct {
	client valkey.Client
}

func (c clientCommands) get(ctx context.Context, key string) (string, error) {
	return c.client.Do(ctx, c.client.B().Get().Key(key).Build()).ToString()
}

func (c clientCommands) set(ctx context.Context, key, value string, ttl time.Duration) error {
	builder := c.client.B().Set().Key(key).Value(value)
	if ttl > 0 {
		return c.client.Do(ctx, builder.Ex(ttl).Build()).Error()
	}
	return c.client.Do(ctx, builder.Build()).Error()
}

func (c clientCommands) del(ctx context.Context, key string) error {
	return c.client.Do(ctx, c.client.B().Del().Key(key).Build()).Error()
}

var _ kv.Store = (*ValkeyStore)(nil)
