//go:build windows

package installer

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/windows"
)

func TestClassify_Errno(t *testing.T) {
	wrap := func(errno syscall.Errno) error {
		return &os.PathError{Op: "fork/exec", Path: `C:\pkg\setup.exe`, Err: errno}
	}

	assert.Equal(t, RequiresElevation, Classify(wrap(windows.ERROR_ELEVATION_REQUIRED)))
	assert.Equal(t, NotExecutable, Classify(wrap(windows.ERROR_BAD_EXE_FORMAT)))
	assert.Equal(t, NotExecutable, Classify(wrap(windows.ERROR_EXE_MACHINE_TYPE_MISMATCH)))
	assert.Equal(t, NotExecutable, Classify(wrap(windows.ERROR_NO_ASSOCIATION)))
	assert.Equal(t, AccessDenied, Classify(wrap(windows.ERROR_ACCESS_DENIED)))
	assert.Equal(t, Unknown, Classify(wrap(windows.ERROR_FILE_NOT_FOUND)))
}
