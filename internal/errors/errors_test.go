package errors

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestExitError(t *testing.T) {
	underlying := errors.New("feed could not be read")
	exitErr := NewSystemError(underlying, "check the path")

	if exitErr.Code != ExitSystem {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitSystem)
	}
	if exitErr.Error() != "feed could not be read" {
		t.Errorf("Error() = %q", exitErr.Error())
	}
	if !errors.Is(exitErr, underlying) {
		t.Error("errors.Is does not see through ExitError")
	}

	var target *ExitError
	if !errors.As(error(exitErr), &target) {
		t.Error("errors.As failed to extract ExitError")
	}
}

func TestExitErrorNilUnderlying(t *testing.T) {
	exitErr := NewExitError(nil, ExitUser)
	if exitErr.Error() != "exit code 1" {
		t.Errorf("Error() = %q, want exit code message", exitErr.Error())
	}
}

func TestNewFindingsError(t *testing.T) {
	exitErr := NewFindingsError(7)
	if exitErr.Code != ExitFindings {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitFindings)
	}
}

func TestSentinelWrapping(t *testing.T) {
	err := Wrapf(ErrUnknownRule, "NoSuchRule")
	if !Is(err, ErrUnknownRule) {
		t.Error("wrapped sentinel not detected by Is")
	}
}
