package installer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crafted-tech/pkgexec/platform"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, ErrorKind(""), Classify(nil))
	assert.Equal(t, NoProcessCreated, Classify(platform.ErrNoProcess))
	assert.Equal(t, NoProcessCreated, Classify(fmt.Errorf("start: %w", platform.ErrNoProcess)))
	assert.Equal(t, Unknown, Classify(errors.New("something else")))
	assert.Equal(t, Unknown, Classify(platform.ErrNotSupported))
}

func TestErrorKind_Retryable(t *testing.T) {
	retryable := map[ErrorKind]bool{
		FileNotFound:      false,
		NoProcessCreated:  false,
		AccessDenied:      false,
		RequiresElevation: true,
		NotExecutable:     true,
		HarnessDied:       false,
		Unknown:           false,
	}
	for kind, want := range retryable {
		assert.Equal(t, want, kind.Retryable(), "kind %s", kind)
	}
}

func TestClassify_KindError(t *testing.T) {
	err := fmt.Errorf("launch: %w", &KindError{Kind: RequiresElevation, Err: assert.AnError})
	assert.Equal(t, RequiresElevation, Classify(err))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "access_denied", (&KindError{Kind: AccessDenied}).Error())
}
