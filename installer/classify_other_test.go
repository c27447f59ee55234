//go:build !windows

package installer

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Errno(t *testing.T) {
	wrap := func(errno syscall.Errno) error {
		return &os.PathError{Op: "fork/exec", Path: "/tmp/setup", Err: errno}
	}

	assert.Equal(t, NotExecutable, Classify(wrap(syscall.ENOEXEC)))
	assert.Equal(t, AccessDenied, Classify(wrap(syscall.EACCES)))
	assert.Equal(t, AccessDenied, Classify(wrap(syscall.EPERM)))
	assert.Equal(t, Unknown, Classify(wrap(syscall.ENOENT)))
}
