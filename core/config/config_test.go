package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/staticmount/core/config"
)

// Each test uses its own type because results are cached per type.
// t.Setenv forbids t.Parallel, so these tests run sequentially.

type defaultsConfig struct {
	Addr    string `env:"CFGTEST_DEFAULTS_ADDR" envDefault:":8080"`
	Workers int    `env:"CFGTEST_DEFAULTS_WORKERS" envDefault:"4"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 4, cfg.Workers)
}

type envConfig struct {
	Root string `env:"CFGTEST_ENV_ROOT"`
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CFGTEST_ENV_ROOT", "/srv/www")

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "/srv/www", cfg.Root)
}

type cachedConfig struct {
	Value string `env:"CFGTEST_CACHED_VALUE"`
}

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("CFGTEST_CACHED_VALUE", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CFGTEST_CACHED_VALUE", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

type requiredConfig struct {
	File string `env:"CFGTEST_REQUIRED_FILE,required"`
}

func TestLoadRequiredMissing(t *testing.T) {
	var cfg requiredConfig
	require.Error(t, config.Load(&cfg))
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoadRejectsNonStruct(t *testing.T) {
	var n int
	require.ErrorIs(t, config.Load(&n), config.ErrNotStructPointer)

	var nilCfg *defaultsConfig
	require.ErrorIs(t, config.Load(nilCfg), config.ErrNotStructPointer)
}
