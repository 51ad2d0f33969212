// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package opstream

import "fmt"

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrMalformedCount indicates the header line announcing the number of
	// requests is missing, is not an integer or is negative.
	ErrMalformedCount ErrorCode = iota

	// ErrMalformedRequest indicates a request line does not consist of
	// exactly two integer fields.
	ErrMalformedRequest

	// ErrShortStream indicates the stream ended before the number of
	// requests announced by the header was read.
	ErrShortStream

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrMalformedCount:   "ErrMalformedCount",
	ErrMalformedRequest: "ErrMalformedRequest",
	ErrShortStream:      "ErrShortStream",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error provides a single type for errors that can happen while decoding a
// request stream.  The caller can use type assertions or errors.As to access
// the ErrorCode field to ascertain the specific reason for the failure.
//
// Line is the one-based line number of the input the error refers to.  Err,
// when set, is the underlying error such as a failed integer conversion.
type Error struct {
	ErrorCode   ErrorCode
	Line        int
	Description string
	Err         error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Description,
			e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Description)
}

// Unwrap returns the underlying wrapped error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(c ErrorCode, line int, desc string, err error) Error {
	return Error{ErrorCode: c, Line: line, Description: desc, Err: err}
}
