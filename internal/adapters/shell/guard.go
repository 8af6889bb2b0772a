package shell

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
)

// GuardEvaluator implements ports.GuardEvaluator against the host.
type GuardEvaluator struct {
	workDir string
}

// NewGuardEvaluator creates a GuardEvaluator resolving relative paths against workDir.
func NewGuardEvaluator(workDir string) *GuardEvaluator {
	return &GuardEvaluator{workDir: workDir}
}

// Satisfied reports whether guard holds in the step environment env.
func (g *GuardEvaluator) Satisfied(ctx context.Context, guard *domain.SkipGuard, env domain.Environment) (bool, error) {
	if guard == nil {
		return false, nil
	}

	cmdEnv := env.Environ()

	switch guard.Kind {
	case domain.GuardCommand:
		_, err := lookPath(guard.Value, cmdEnv)
		return err == nil, nil

	case domain.GuardFile:
		path := guard.Value
		if !filepath.IsAbs(path) {
			path = filepath.Join(g.workDir, path)
		}
		_, err := os.Stat(path)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, fs.ErrNotExist):
			return false, nil
		default:
			return false, zerr.With(zerr.Wrap(err, "cannot stat guard path"), "path", path)
		}

	case domain.GuardShell:
		c := exec.CommandContext(ctx, "sh", "-c", guard.Value)
		c.Env = cmdEnv
		c.Dir = g.workDir
		err := c.Run()
		var exitErr *exec.ExitError
		switch {
		case err == nil:
			return true, nil
		case errors.As(err, &exitErr) && ctx.Err() == nil:
			return false, nil
		default:
			return false, zerr.With(zerr.Wrap(err, "cannot run guard predicate"), "guard", guard.String())
		}

	default:
		return false, zerr.With(zerr.Wrap(domain.ErrInvalidGuard, "cannot evaluate guard"), "kind", string(guard.Kind))
	}
}
