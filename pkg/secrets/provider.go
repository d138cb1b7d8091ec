package secrets

import "context"

// Provider defines a generic secrets manager interface.
// Concrete implementations (AWS, GCP, etc.) can satisfy this.
type Provider interface {
	// GetSecret retrieves a secret by key/path and returns a key-value map.
	GetSecret(ctx context.Context, key string) (map[string]string, error)
}

// Lookup fetches a secret through the TTL cache, falling back to the
// provider on a miss. Adapters use this to resolve upstream credential
// bundles (e.g. {"username": "...", "password": "..."}) by secret ID
// instead of carrying raw values in the environment.
func Lookup(ctx context.Context, p Provider, cache *Cache[map[string]string], key string) (map[string]string, error) {
	if cache != nil {
		if val, ok := cache.Get(key); ok {
			return val, nil
		}
	}
	val, err := p.GetSecret(ctx, key)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.Put(key, val)
	}
	return val, nil
}
