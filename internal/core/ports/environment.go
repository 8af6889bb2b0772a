package ports

import "go.trai.ch/rustci/internal/core/domain"

// EnvironmentReader takes environment snapshots for invocations.
//
//go:generate mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentReader interface {
	// Snapshot reads each declared variable once.
	// Absent variables take their default; absent required variables fail
	// with domain.ErrMissingEnvironmentVariable. Passthrough names are
	// copied when present.
	Snapshot(vars []domain.EnvVar, passthrough []string) (domain.Environment, error)
}
