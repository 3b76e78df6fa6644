package errorutil

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var errTestUser = NewUserError("kubeconfig is broken")

func TestHasUserError(t *testing.T) {
	err := NewUserError("test")
	if !hasUserError(err) {
		t.Errorf("got hasUserError(%q) = false, want true.", err)
	}

	combined := CombinedError(errors.New("rand"), NewUserError("test"))
	if !hasUserError(combined) {
		t.Errorf("got hasUserError(%q) = false, want true.", combined)
	}

	wrapped := errors.Wrap(errTestUser, "context")
	if !hasUserError(wrapped) {
		t.Errorf("got hasUserError(%q) = false, want true.", wrapped)
	}

	notUserError := errors.New("no user error")
	if hasUserError(notUserError) {
		t.Errorf("got hasUserError(%q) = true, want false.", notUserError)
	}
}

func TestDontRewrapUserError(t *testing.T) {
	err1 := NewUserError("test")
	err2 := NewUserError("test")
	userErr := CombinedError(err1, err2)
	// nolint:errorlint
	if userErr != err1 {
		t.Errorf("got CombinedError(%q, %q) = %q, want %q.", err1, err2, userErr, err1)
	}

	userErr = AddUserMessagef(err1, "test")
	// nolint:errorlint
	if userErr != err1 {
		t.Errorf("got AddUserMessagef(%q) = %q, want %q.", err1, userErr, err1)
	}
}

func TestAddUserMessagef(t *testing.T) {
	err := errors.New("test")
	userErr := AddUserMessagef(err, "bad %s", "kubeconfig")
	// nolint:errorlint
	if userErr == err {
		t.Errorf("got AddUserMessagef(%q) = %q, want not %q.", err, userErr, err)
	}
	assert.Equal(t, "bad kubeconfig", GetUserErrorMessage(userErr))
}

func TestCombinedErrorKeepsBothChains(t *testing.T) {
	cause := fmt.Errorf("yaml: line 3: %w", errors.New("mapping values are not allowed"))
	err := CombinedError(errors.Wrap(cause, "parse /tmp/config"), errTestUser)

	assert.True(t, errors.Is(err, errTestUser))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "kubeconfig is broken", GetUserErrorMessage(err))
	assert.Equal(
		t,
		"kubeconfig is broken: parse /tmp/config: yaml: line 3: mapping values are not allowed",
		err.Error(),
	)
}

func TestGetUserErrorMessageEmpty(t *testing.T) {
	assert.Equal(t, "", GetUserErrorMessage(errors.New("internal")))
	assert.Equal(t, "", GetUserErrorMessage(nil))
}
