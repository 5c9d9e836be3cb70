// Package localstore holds the key-value store that stands in for the
// browser's localStorage: content saved while the upstream API is
// unavailable lands here, under the same key names the site always used.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound is returned by Get when the key holds nothing.
var ErrNotFound = errors.New("local key not found")

// Store is a flat byte-oriented key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Fixed keys that do not follow the "{domain}_data" pattern.
const (
	GaleriaYearsKey = "galeria_years_data"
	AdminUsersKey   = "admin_users_data"
)

// GaleriaImagesKey is the per-year key of saved gallery images.
func GaleriaImagesKey(year int) string {
	return "galeria_images_data_" + strconv.Itoa(year)
}

// ValidateBackend checks a configured backend name.
func ValidateBackend(name string) error {
	switch name {
	case BackendMemory, BackendRedis, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown local store backend %q (want memory, redis or sqlite)", name)
	}
}
