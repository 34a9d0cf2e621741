// Package config loads the optional Lua configuration file.
//
// A config file is a Lua script returning a table:
//
//	return {
//		bind = "127.0.0.1:8080",
//		database = "/var/lib/financeflux",
//		insecure_cookie = false,
//		log = { level = "info", format = "json" },
//		hasher = { time = 3, memory_kib = 65536, threads = 2 },
//	}
//
// Keys are snake_case and every key is optional. The script can read the
// environment with os_getenv(name).
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/Gren-95/FinanceFlux/auth"
	"github.com/Gren-95/FinanceFlux/internal/lua/luadefaults"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"
)

type (
	Config struct {
		Bind           string
		Database       string
		InsecureCookie bool
		Log            Log
		Hasher         Hasher
	}

	Log struct {
		Level  string
		Format string
	}

	Hasher struct {
		Time      uint32
		MemoryKib uint32
		Threads   uint8
	}

	InvalidConfig struct {
		Path   string
		Reason string
	}
)

func (i InvalidConfig) Error() string {
	return fmt.Sprintf("config %v: %v", i.Path, i.Reason)
}

// Defaults returns the configuration used when nothing else is given.
func Defaults() Config {
	return Config{
		Bind:     "127.0.0.1:8080",
		Database: "data",
		Log: Log{
			Level:  "info",
			Format: "console",
		},
		Hasher: Hasher{
			Time:      auth.DefaultHasherParams.Time,
			MemoryKib: auth.DefaultHasherParams.MemoryKiB,
			Threads:   auth.DefaultHasherParams.Threads,
		},
	}
}

// HasherParams converts the hasher section, zero fields keep their defaults.
func (c Config) HasherParams() auth.HasherParams {
	return auth.HasherParams{
		Time:      c.Hasher.Time,
		MemoryKiB: c.Hasher.MemoryKib,
		Threads:   c.Hasher.Threads,
	}
}

// LoadFile evaluates the script at path and merges the returned table over
// Defaults.
func LoadFile(ctx context.Context, path string) (Config, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config %v, cause %w", path, err)
	}
	return Load(ctx, path, string(code))
}

// Load evaluates code, name is only used in error messages.
func Load(ctx context.Context, name, code string) (Config, error) {
	cfg := Defaults()

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	L.SetContext(ctx)
	if err := luadefaults.InjectConfigLibs(L); err != nil {
		return cfg, err
	}
	L.SetGlobal("os_getenv", L.NewFunction(getenv))

	fn, err := L.LoadString(code)
	if err != nil {
		return cfg, InvalidConfig{Path: name, Reason: err.Error()}
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return cfg, InvalidConfig{Path: name, Reason: err.Error()}
	}
	ret := L.Get(-1)
	L.Pop(1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return cfg, InvalidConfig{Path: name, Reason: fmt.Sprintf("script must return a table, got %v", ret.Type())}
	}
	if err := gluamapper.Map(tbl, &cfg); err != nil {
		return cfg, InvalidConfig{Path: name, Reason: err.Error()}
	}
	return cfg, nil
}

func getenv(L *lua.LState) int {
	L.Push(lua.LString(os.Getenv(L.CheckString(1))))
	return 1
}
