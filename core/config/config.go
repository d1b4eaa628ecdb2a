package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNotStructPointer is returned when Load receives anything but a non-nil struct pointer.
var ErrNotStructPointer = errors.New("config: target must be a non-nil pointer to a struct")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> reflect.Value (struct copy)
	loadMu     sync.Mutex
)

// Load populates cfg from the environment. The first call for a type parses the
// environment; later calls for the same type copy the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotStructPointer
	}
	typ := reflect.TypeOf(cfg).Elem()
	if typ.Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	if v, ok := cache.Load(typ); ok {
		*cfg = v.(T)
		return nil
	}

	loadMu.Lock()
	defer loadMu.Unlock()

	if v, ok := cache.Load(typ); ok {
		*cfg = v.(T)
		return nil
	}

	dotenvOnce.Do(func() {
		// A missing .env file is normal outside local development.
		_ = godotenv.Load()
	})

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("config: parse %s: %w", typ.Name(), err)
	}
	cache.Store(typ, loaded)
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
