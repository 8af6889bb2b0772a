package shell

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookPath(t *testing.T) {
	_, err := lookPath("sh", nil)
	assert.Error(t, err)

	p, err := lookPath("sh", []string{"PATH=/nonexistent" + string(os.PathListSeparator) + "/bin"})
	if err == nil {
		assert.Equal(t, "/bin/sh", p)
	}
}
