package domain_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rustci/internal/core/domain"
)

func TestEnvironment_WithPathPrefix(t *testing.T) {
	sep := string(os.PathListSeparator)
	env := domain.Environment{"PATH": "/usr/bin", "HOME": "/home/ci"}

	got := env.WithPathPrefix("/opt/bin", "", env.Expand("$HOME/.cargo/bin"))

	assert.Equal(t, "/opt/bin"+sep+"/home/ci/.cargo/bin"+sep+"/usr/bin", got["PATH"])
	assert.Equal(t, "/usr/bin", env["PATH"], "original snapshot is untouched")

	noPath := domain.Environment{}.WithPathPrefix("/a")
	assert.Equal(t, "/a", noPath["PATH"])
}

func TestEnvironment_Environ(t *testing.T) {
	env := domain.Environment{"B": "2", "A": "1"}
	assert.Equal(t, []string{"A=1", "B=2"}, env.Environ())

	parsed := domain.ParseEnviron([]string{"A=1", "bogus", "A=3", "=x", "C="})
	assert.Equal(t, domain.Environment{"A": "3", "C": ""}, parsed)
}

func TestEnvironment_Expand(t *testing.T) {
	env := domain.Environment{"HOME": "/root"}
	assert.Equal(t, "/root/.cargo/bin", env.Expand("${HOME}/.cargo/bin"))
	assert.Equal(t, "/bin", env.Expand("$MISSING/bin"))
}
