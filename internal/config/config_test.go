package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	cfg, err := Load(ctx, "inline", `
	return {
		bind = "0.0.0.0:9090",
		insecure_cookie = true,
		log = { format = "json" },
		hasher = { time = 2, memory_kib = 32768 },
	}`)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.Bind)
	assert.True(t, cfg.InsecureCookie)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level, "missing keys keep their default")
	assert.Equal(t, "data", cfg.Database)

	params := cfg.HasherParams()
	assert.Equal(t, uint32(2), params.Time)
	assert.Equal(t, uint32(32768), params.MemoryKiB)
	assert.Equal(t, uint8(2), params.Threads)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("FINANCEFLUX_TEST_DB", "/srv/ledger")
	cfg, err := Load(context.Background(), "inline", `return { database = os_getenv("FINANCEFLUX_TEST_DB") }`)
	require.NoError(t, err)
	assert.Equal(t, "/srv/ledger", cfg.Database)
}

func TestLoadRejects(t *testing.T) {
	ctx := context.Background()
	for name, code := range map[string]string{
		"syntax":    `return {`,
		"not-table": `return 42`,
		"runtime":   `error("nope")`,
		"sandbox":   `return { database = dofile("/etc/passwd") }`,
		"no-string": `return { bind = string.lower("X") }`,
		"no-os":     `return { database = os.getenv("HOME") }`,
	} {
		_, err := Load(ctx, name, code)
		var invalid InvalidConfig
		assert.True(t, errors.As(err, &invalid), "%v: %v", name, err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "financeflux.lua")
	require.NoError(t, os.WriteFile(path, []byte(`return { log = { level = "debug" } }`), 0644))
	cfg, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}
