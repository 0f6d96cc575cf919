package hxhoc

import (
	"errors"
	"fmt"

	"github.com/pthm/hxhoc/lib/encoding"
)

// Sentinel errors for wrapping and lifecycle operations.
var (
	ErrContractViolation  = errors.New("hxhoc: contract violation")
	ErrLifecycleViolation = errors.New("hxhoc: lifecycle violation")
	ErrNotFound           = errors.New("hxhoc: component not found")
	ErrDecryptFailed      = errors.New("hxhoc: parameter decryption failed")
	ErrSignatureInvalid   = errors.New("hxhoc: signature verification failed")
	ErrInvalidFormat      = errors.New("hxhoc: invalid parameter format")
)

// ContractError is returned by Wrap when the supplied value cannot act as a
// Component. It unwraps to ErrContractViolation.
type ContractError struct {
	Value  string // dynamic type of the rejected value
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrContractViolation, e.Value, e.Reason)
}

func (e *ContractError) Unwrap() error {
	return ErrContractViolation
}

// LifecycleError is returned when a host drives an Instance out of order,
// e.g. rendering after unmount. It unwraps to ErrLifecycleViolation.
type LifecycleError struct {
	Component string
	Op        string
	State     State
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%v: %s on %s instance of %s", ErrLifecycleViolation, e.Op, e.State, e.Component)
}

func (e *LifecycleError) Unwrap() error {
	return ErrLifecycleViolation
}

// IsContractViolation checks if err was caused by an invalid wrap target.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrContractViolation)
}

// IsLifecycleViolation checks if err was caused by out-of-order lifecycle signals.
func IsLifecycleViolation(err error) bool {
	return errors.Is(err, ErrLifecycleViolation)
}

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// IsInvalidFormat checks if err is a malformed parameter error.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// WrapDecodeError maps encoding package errors onto hxhoc sentinel errors.
// Other errors pass through unchanged.
func WrapDecodeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrInvalidFormat):
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	case errors.Is(err, encoding.ErrDecryptFailed):
		return fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}
	return err
}
