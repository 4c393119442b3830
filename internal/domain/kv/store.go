package kv

import "context"

// Store is the key/value collaborator behind saved pairs and notice flags.
// Keys live in a per-client namespace; a missing key is reported with
// found=false, never as an error.
type Store interface {
	Get(ctx context.Context, namespace, key string) (value string, found bool, err error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
}
