package hxhoc

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pthm/hxhoc/lib/encoding"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors are distinct
	errs := []error{
		ErrContractViolation,
		ErrLifecycleViolation,
		ErrNotFound,
		ErrDecryptFailed,
		ErrSignatureInvalid,
		ErrInvalidFormat,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestErrorMessages(t *testing.T) {
	errs := []error{
		ErrContractViolation,
		ErrLifecycleViolation,
		ErrNotFound,
		ErrDecryptFailed,
		ErrSignatureInvalid,
		ErrInvalidFormat,
	}

	for _, err := range errs {
		if !strings.HasPrefix(err.Error(), "hxhoc:") {
			t.Errorf("Error %q should start with 'hxhoc:'", err.Error())
		}
	}
}

func TestContractError(t *testing.T) {
	err := error(&ContractError{Value: "int", Reason: "nil component"})

	if !IsContractViolation(err) {
		t.Error("ContractError should unwrap to ErrContractViolation")
	}
	if IsLifecycleViolation(err) {
		t.Error("ContractError should not be a lifecycle violation")
	}
	if !strings.Contains(err.Error(), "int") {
		t.Errorf("message should name the rejected type: %s", err)
	}

	var ce *ContractError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &ce) {
		t.Fatal("errors.As should find *ContractError")
	}
	if ce.Reason != "nil component" {
		t.Errorf("Reason = %q", ce.Reason)
	}
}

func TestLifecycleError(t *testing.T) {
	err := error(&LifecycleError{Component: "hoc(Base)", Op: "render", State: StateUnmounted})

	if !IsLifecycleViolation(err) {
		t.Error("LifecycleError should unwrap to ErrLifecycleViolation")
	}
	if IsContractViolation(err) {
		t.Error("LifecycleError should not be a contract violation")
	}
	want := "hxhoc: lifecycle violation: render on unmounted instance of hoc(Base)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrNotFound", ErrNotFound, true},
		{"wrapped ErrNotFound", fmt.Errorf("wrapped: %w", ErrNotFound), true},
		{"other error", errors.New("other error"), false},
		{"ErrDecryptFailed", ErrDecryptFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsNotFound(tt.err)
			if result != tt.expect {
				t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, result, tt.expect)
			}
		})
	}
}

func TestIsDecryptionError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrDecryptFailed", ErrDecryptFailed, true},
		{"ErrSignatureInvalid", ErrSignatureInvalid, true},
		{"wrapped ErrDecryptFailed", fmt.Errorf("wrapped: %w", ErrDecryptFailed), true},
		{"ErrNotFound", ErrNotFound, false},
		{"ErrInvalidFormat", ErrInvalidFormat, false},
		{"other error", errors.New("other error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsDecryptionError(tt.err)
			if result != tt.expect {
				t.Errorf("IsDecryptionError(%v) = %v, want %v", tt.err, result, tt.expect)
			}
		})
	}
}

func TestWrapDecodeError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectWrapped  error
		isDecryptError bool
	}{
		{"nil error", nil, nil, false},
		{"encoding.ErrInvalidFormat", encoding.ErrInvalidFormat, ErrInvalidFormat, false},
		{"encoding.ErrSignatureInvalid", encoding.ErrSignatureInvalid, ErrSignatureInvalid, true},
		{"encoding.ErrDecryptFailed", encoding.ErrDecryptFailed, ErrDecryptFailed, true},
		{"other error passthrough", errors.New("other"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapDecodeError(tt.err)

			if tt.err == nil && result != nil {
				t.Errorf("WrapDecodeError(nil) = %v, want nil", result)
			}
			if tt.expectWrapped != nil && !errors.Is(result, tt.expectWrapped) {
				t.Errorf("WrapDecodeError(%v) = %v, want %v", tt.err, result, tt.expectWrapped)
			}
			if tt.isDecryptError != IsDecryptionError(result) {
				t.Errorf("IsDecryptionError(WrapDecodeError(%v)) = %v, want %v", tt.err, !tt.isDecryptError, tt.isDecryptError)
			}
		})
	}
}
