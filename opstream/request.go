// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package opstream

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Op identifies the kind of a request.
type Op int

// These constants define the supported request kinds.  Their values are the
// opcodes used on the wire except for OpDelete, which any opcode other than
// those of OpSelect and OpInsert decodes to.
const (
	OpSelect Op = 0
	OpInsert Op = 1
	OpDelete Op = 2
)

// Map of Op values back to their names for pretty printing.
var opStrings = map[Op]string{
	OpSelect: "select",
	OpInsert: "insert",
	OpDelete: "delete",
}

// String returns the Op as a human-readable name.
func (o Op) String() string {
	if s, ok := opStrings[o]; ok {
		return s
	}
	return fmt.Sprintf("Unknown Op (%d)", int(o))
}

// decodeOp maps a wire opcode to the request kind it selects.
func decodeOp(code int64) Op {
	switch code {
	case int64(OpSelect):
		return OpSelect
	case int64(OpInsert):
		return OpInsert
	default:
		return OpDelete
	}
}

// Request is a single decoded request.  Value is the key for inserts and
// deletes and the rank for selects.
type Request struct {
	Op    Op
	Value int64
}

// Reader decodes a request stream of the form
//
//	<count>
//	<opcode> <value>
//	...
//
// where count is the number of request lines that follow.  Empty lines are
// skipped and fields may be separated by any amount of whitespace.
type Reader struct {
	scanner   *bufio.Scanner
	line      int
	count     int
	remaining int
	hasHeader bool
}

// NewReader returns a new Reader decoding requests from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// nextLine returns the fields of the next non-empty line.  It returns io.EOF
// once the input is exhausted.
func (r *Reader) nextLine() ([]string, error) {
	for r.scanner.Scan() {
		r.line++
		fields := strings.Fields(r.scanner.Text())
		if len(fields) != 0 {
			return fields, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Count reads the header on first use and returns the number of requests the
// stream announces.
func (r *Reader) Count() (int, error) {
	if r.hasHeader {
		return r.count, nil
	}

	fields, err := r.nextLine()
	if err == io.EOF {
		return 0, makeError(ErrMalformedCount, r.line+1,
			"missing request count", nil)
	}
	if err != nil {
		return 0, err
	}
	if len(fields) != 1 {
		str := fmt.Sprintf("request count line has %d fields, want 1",
			len(fields))
		return 0, makeError(ErrMalformedCount, r.line, str, nil)
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, makeError(ErrMalformedCount, r.line,
			"invalid request count", err)
	}
	if count < 0 {
		str := fmt.Sprintf("negative request count %d", count)
		return 0, makeError(ErrMalformedCount, r.line, str, nil)
	}

	r.hasHeader = true
	r.count = count
	r.remaining = count
	return count, nil
}

// Next returns the next request.  It returns io.EOF once all requests
// announced by the header have been read, even when more input follows.
func (r *Reader) Next() (Request, error) {
	if _, err := r.Count(); err != nil {
		return Request{}, err
	}
	if r.remaining == 0 {
		return Request{}, io.EOF
	}

	fields, err := r.nextLine()
	if err == io.EOF {
		str := fmt.Sprintf("stream ended after %d of %d requests",
			r.count-r.remaining, r.count)
		return Request{}, makeError(ErrShortStream, r.line+1, str, nil)
	}
	if err != nil {
		return Request{}, err
	}
	if len(fields) != 2 {
		str := fmt.Sprintf("request has %d fields, want 2", len(fields))
		return Request{}, makeError(ErrMalformedRequest, r.line, str, nil)
	}

	code, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Request{}, makeError(ErrMalformedRequest, r.line,
			"invalid opcode", err)
	}
	value, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Request{}, makeError(ErrMalformedRequest, r.line,
			"invalid value", err)
	}

	r.remaining--
	return Request{Op: decodeOp(code), Value: value}, nil
}

// Line returns the number of input lines consumed so far.
func (r *Reader) Line() int {
	return r.line
}
