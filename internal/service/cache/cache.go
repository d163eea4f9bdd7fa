package cache

import "time"

// BytesCache stores serialized HTTP responses with a TTL. Scan handlers
// use it to short-circuit repeated single-ticker lookups.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
