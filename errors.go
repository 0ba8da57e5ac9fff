// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package srp6

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	// ErrBadPublicValue indicates that the peer's public value A or B is congruent to 0 mod N.
	ErrBadPublicValue = ErrCodeBadPublicValue.New("")

	// ErrBadCredentials indicates an evidence message mismatch: wrong password, unknown user, mismatched routines,
	// or a tampered exchange.
	ErrBadCredentials = ErrCodeBadCredentials.New("")

	// ErrTimeout indicates that the session's inactivity window has been exceeded.
	ErrTimeout = ErrCodeTimeout.New("session timeout")

	// ErrStateViolation indicates that a step was invoked out of order, or on an aborted session.
	ErrStateViolation = ErrCodeStateViolation.New("")

	// ErrInvalidArgument indicates a missing, empty, or malformed input.
	ErrInvalidArgument = ErrCodeInvalidArgument.New("")

	// ErrConfiguration indicates that the requested configuration is not supported.
	ErrConfiguration = ErrCodeConfiguration.New("")
)

var (
	errNoParams        = errors.New("the SRP-6a crypto parameters must not be nil")
	errNoRandom        = errors.New("a source of randomness must be provided")
	errNoUserID        = errors.New("the user identity 'I' must not be empty")
	errNoSalt          = errors.New("the salt 's' must not be empty")
	errNoVerifier      = errors.New("the password verifier 'v' must not be nil")
	errNoPublicValue   = errors.New("the peer public value must not be nil")
	errNoEvidence      = errors.New("the evidence message must not be nil")
	errNegativeValue   = errors.New("values must not be negative")
	errNoPrime         = errors.New("the prime parameter 'N' must be positive")
	errNoGenerator     = errors.New("the generator parameter 'g' must not be nil")
	errGeneratorZero   = errors.New("the generator parameter 'g' must not be 0")
	errGeneratorOne    = errors.New("the generator parameter 'g' must not be 1")
	errGeneratorNMinus = errors.New("the generator parameter 'g' must not equal N - 1")
	errUnsupportedHash = errors.New("unsupported hash algorithm 'H'")
	errUnknownBitSize  = errors.New("no precomputed prime for this bit size")
	errNegativeTimeout = errors.New("the timeout must not be negative")
	errSessionAborted  = errors.New("the session has been aborted")
	errOutOfOrder      = errors.New("step invoked out of order")
	errNotAuthorized   = errors.New("the session is not authenticated")
	errRoutineResult   = errors.New("a routine returned a nil or negative value")
	errRandomizedKSF   = errors.New("the key stretching function is not deterministic")
)

// ErrorCode represents the type of error in the SRP-6a protocol. It is used to categorize errors and provide
// a consistent way to handle error conditions.
type ErrorCode byte //nolint:errname // This is an error code, not an error type.

const (
	// ErrCodeUnknown represents an unknown error.
	ErrCodeUnknown ErrorCode = iota

	// ErrCodeBadPublicValue represents an invalid public value A or B. The session must be discarded.
	ErrCodeBadPublicValue

	// ErrCodeBadCredentials represents an evidence mismatch. The session must be discarded.
	ErrCodeBadCredentials

	// ErrCodeTimeout represents an expired session. The session must be discarded.
	ErrCodeTimeout

	// ErrCodeStateViolation represents a step invoked out of order. This is a caller bug.
	ErrCodeStateViolation

	// ErrCodeInvalidArgument represents an invalid input. This is a caller bug.
	ErrCodeInvalidArgument

	// ErrCodeConfiguration represents an unsupported configuration.
	ErrCodeConfiguration
)

// New creates a new Error with the given message and errors.
func (c ErrorCode) New(message string, errs ...error) *Error {
	if message == "" {
		message = strings.ReplaceAll(c.String(), "_", " ")
	}

	return &Error{
		Code:    c,
		Message: message,
		Err:     errors.Join(errs...),
	}
}

// String returns the string representation of the ErrorCode. If the code is not recognized, it returns "unknown_error".
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeBadPublicValue:
		return "bad_public_value"
	case ErrCodeBadCredentials:
		return "bad_credentials"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeStateViolation:
		return "state_violation"
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeConfiguration:
		return "configuration_error"
	case ErrCodeUnknown:
		fallthrough
	default:
		return "unknown_error"
	}
}

// Error implements the error interface for the ErrorCode type. It returns a string representation of the error code.
func (c ErrorCode) Error() string {
	return c.String()
}

// Is implements the errors.Is method for the ErrorCode type.
// It allows checking if the error is of a specific ErrorCode.
func (c ErrorCode) Is(target error) bool {
	var errCode ErrorCode
	if errors.As(target, &errCode) {
		return c == errCode
	}

	return false
}

// As implements the errors.As method for the ErrorCode type. It allows type assertion to specific error types.
func (c ErrorCode) As(target any) bool {
	if t, ok := target.(*ErrorCode); ok {
		*t = c
		return true
	}

	return false
}

// IsProtocolFailure reports whether the code denotes a failure of the exchange itself (bad public value, bad
// credentials, timeout), as opposed to a misuse of the API.
func (c ErrorCode) IsProtocolFailure() bool {
	return c == ErrCodeBadPublicValue || c == ErrCodeBadCredentials || c == ErrCodeTimeout
}

// Error represents an error in the SRP-6a protocol.
type Error struct {
	Err     error
	Message string
	Code    ErrorCode
}

// Error returns the message only. Causes are reachable through Unwrap and printed by the %+v verb.
func (e *Error) Error() string { return e.Message }

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Join returns an error matching both e and every cause in errs.
func (e *Error) Join(errs ...error) error {
	return errors.Join(e, errors.Join(errs...))
}

// LogValue groups the code, its name, the message, and the cause when logged with slog.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("code", int(e.Code)),
		slog.String("code_name", e.Code.String()),
		slog.String("message", e.Message),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.Any("error", e.Err))
	}

	return slog.GroupValue(attrs...)
}

// Format prints the message for %s, %v and %q, and the code with the full cause chain for %+v.
func (e *Error) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			e.formatV(f)
			return
		}

		fallthrough
	case 's':
		_, _ = io.WriteString(f, e.Error()) //nolint:errcheck // safe to ignore // human-readable
	case 'q':
		_, _ = fmt.Fprintf(f, "%q", e.Error()) //nolint:errcheck // safe to ignore // quoted string
	default:
		_, _ = io.WriteString(f, e.Error()) //nolint:errcheck // safe to ignore // safe default
	}
}

// Is implements the errors.Is method for the Error type. A bare ErrorCode target matches on the code, an *Error
// target matches on both code and message.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case ErrorCode:
		return e.Code == t
	case *Error:
		return e.Code == t.Code && strings.EqualFold(e.Message, t.Message)
	default:
		return false
	}
}

// As fills an *ErrorCode or an **Error target.
func (e *Error) As(target any) bool {
	switch t := target.(type) {
	case *ErrorCode:
		*t = e.Code
		return true
	case **Error:
		*t = e
		return true
	default:
		return false
	}
}

// CodeOf returns the ErrorCode carried by err, or ErrCodeUnknown.
func CodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrCodeUnknown
}

func printV(f fmt.State, err error, depth int) {
	if err == nil {
		return
	}

	prefix := strings.Repeat("  ", depth)
	_, _ = fmt.Fprintf(f, "\n%s↳ %v", prefix, err) //nolint:errcheck // safe to ignore

	// Check for errors that can unwrap multiple errors
	var multiUnwrapper interface{ Unwrap() []error }
	if errors.As(err, &multiUnwrapper) {
		for _, child := range multiUnwrapper.Unwrap() {
			printV(f, child, depth+1)
		}

		return
	}

	// Check for errors that can unwrap a single error
	var singleUnwrapper interface{ Unwrap() error }
	if errors.As(err, &singleUnwrapper) {
		printV(f, singleUnwrapper.Unwrap(), depth+1)
	}
}

func (e *Error) formatV(f fmt.State) {
	// header with code
	_, _ = fmt.Fprintf(f, "code=%d(%s)", e.Code, e.Code.String()) //nolint:errcheck // safe to ignore
	if e.Message != "" {
		_, _ = fmt.Fprintf(f, " message=%q", e.Message) //nolint:errcheck // safe to ignore
	}

	// unwrap error chain
	if e.Err != nil {
		printV(f, e.Err, 0)
	}
}
