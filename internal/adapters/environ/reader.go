// Package environ snapshots the host environment for an invocation.
package environ

import (
	"os"

	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
)

// baseVars are copied into every snapshot so task paths can reference them.
var baseVars = []string{"HOME", "USER", "PATH", "TERM", "TMPDIR"}

// LookupFunc reads one variable from the environment.
type LookupFunc func(key string) (string, bool)

// Reader implements ports.EnvironmentReader.
type Reader struct {
	lookup LookupFunc
}

// NewReader creates a Reader over the process environment.
func NewReader() *Reader {
	return NewReaderWithLookup(os.LookupEnv)
}

// NewReaderWithLookup creates a Reader over lookup.
func NewReaderWithLookup(lookup LookupFunc) *Reader {
	return &Reader{lookup: lookup}
}

// Snapshot reads the base variables, passthrough and declared variables once each.
// Declared variables are read last and win over passthrough entries of the same name.
func (r *Reader) Snapshot(vars []domain.EnvVar, passthrough []string) (domain.Environment, error) {
	env := make(domain.Environment, len(baseVars)+len(passthrough)+len(vars))

	for _, names := range [][]string{baseVars, passthrough} {
		for _, name := range names {
			if v, ok := r.lookup(name); ok {
				env[name] = v
			}
		}
	}

	for _, v := range vars {
		value, ok := r.lookup(v.Name)
		switch {
		case ok:
			env[v.Name] = value
		case v.HasDefault:
			env[v.Name] = v.Default
		case v.Required:
			err := zerr.Wrap(domain.ErrMissingEnvironmentVariable, "cannot snapshot environment")
			return nil, zerr.With(err, "name", v.Name)
		}
	}

	return env, nil
}
