package domain

import (
	"maps"
	"os"
	"slices"
	"strings"
)

// EnvVar declares an environment variable an invocation depends on.
type EnvVar struct {
	Name       string
	Default    string
	HasDefault bool
	Required   bool
}

// RequiredEnv declares a variable that must be present.
func RequiredEnv(name string) EnvVar {
	return EnvVar{Name: name, Required: true}
}

// OptionalEnv declares a variable that falls back to def when absent.
func OptionalEnv(name, def string) EnvVar {
	return EnvVar{Name: name, Default: def, HasDefault: true}
}

// Environment is a snapshot of environment variables taken once per invocation.
// It is passed by value; every method that modifies it returns a copy.
type Environment map[string]string

// Get returns the value of key and whether it is set.
func (e Environment) Get(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// With returns a copy of e with key set to value.
func (e Environment) With(key, value string) Environment {
	out := e.Clone()
	out[key] = value
	return out
}

// Clone returns a copy of e.
func (e Environment) Clone() Environment {
	out := make(Environment, len(e)+1)
	maps.Copy(out, e)
	return out
}

// WithPathPrefix returns a copy of e with dirs prepended to PATH.
// Empty entries are dropped.
func (e Environment) WithPathPrefix(dirs ...string) Environment {
	entries := make([]string, 0, len(dirs)+1)
	for _, d := range dirs {
		if d != "" {
			entries = append(entries, d)
		}
	}
	if len(entries) == 0 {
		return e.Clone()
	}
	if current, ok := e["PATH"]; ok && current != "" {
		entries = append(entries, current)
	}
	return e.With("PATH", strings.Join(entries, string(os.PathListSeparator)))
}

// Expand replaces $VAR and ${VAR} references in s using e.
func (e Environment) Expand(s string) string {
	return os.Expand(s, func(key string) string {
		return e[key]
	})
}

// Environ renders e as sorted KEY=VALUE entries.
func (e Environment) Environ() []string {
	out := make([]string, 0, len(e))
	for _, k := range slices.Sorted(maps.Keys(e)) {
		out = append(out, k+"="+e[k])
	}
	return out
}

// ParseEnviron builds an Environment from KEY=VALUE entries.
// Later entries win; malformed entries are ignored.
func ParseEnviron(entries []string) Environment {
	env := make(Environment, len(entries))
	for _, entry := range entries {
		if k, v, ok := strings.Cut(entry, "="); ok && k != "" {
			env[k] = v
		}
	}
	return env
}
