package errmsg

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIOError(t *testing.T) {
	err := NewIOError("open", "/tmp/disk.bin", os.ErrPermission)

	assert.ErrorIs(t, err, IO)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.NotErrorIs(t, err, NotFound)
	assert.Equal(t, "open /tmp/disk.bin: permission denied", err.Error())

	wrapped := fmt.Errorf("initialize: %w", err)
	var ioe *IOError
	assert.True(t, errors.As(wrapped, &ioe))
	assert.Equal(t, "open", ioe.Op)
}
