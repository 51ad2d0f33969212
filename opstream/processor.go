// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package opstream decodes a stream of insert, delete and select requests and
applies them, in order, to a single order-statistic treap.

Every select produces one output line holding the selected key, or the
configured missing token when the requested rank does not exist.  Malformed
input stops processing with an Error describing the offending line before any
part of it reaches the treap.
*/
package opstream

import (
	"bufio"
	"context"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/btcsuite/ranktreap/priority"
	"github.com/btcsuite/ranktreap/treap"
	"github.com/davecgh/go-spew/spew"
)

// DefaultMissing is the token written for a select whose rank does not exist.
const DefaultMissing = "none"

// Config holds the settings of a Processor.
type Config struct {
	// Source supplies the priority of every inserted key.  A nil Source
	// selects an LCG started from its default seed.
	Source priority.Source

	// Missing is written instead of a key when a select finds nothing.  An
	// empty value selects DefaultMissing.
	Missing string

	// ProgressInterval is the minimum time between progress messages.
	// Zero disables progress messages.
	ProgressInterval time.Duration
}

// Result describes the outcome of a single request.
type Result struct {
	Request Request

	// Key is the selected key.  It is only meaningful for a select with
	// Found set.
	Key int64

	// Found reports whether a select found a key at the requested rank.
	Found bool

	// Changed reports whether an insert or delete modified the treap.
	Changed bool
}

// Stats holds the totals of the requests handled by a Processor.
type Stats struct {
	Inserted   int64 // inserts that added a key
	Duplicates int64 // inserts of a key that was already present
	Deleted    int64 // deletes that removed a key
	Absent     int64 // deletes of a key that was not present
	Selected   int64 // selects that found a key
	Missed     int64 // selects of a rank that does not exist
}

// Requests returns the total number of requests the stats account for.
func (s *Stats) Requests() int64 {
	return s.Inserted + s.Duplicates + s.Deleted + s.Absent + s.Selected +
		s.Missed
}

// Processor applies requests to the treap it owns.  It is not safe for
// concurrent use.
type Processor struct {
	source  priority.Source
	missing string
	treap   *treap.Mutable
	stats   Stats

	progressInterval time.Duration
}

// NewProcessor returns a new processor with an empty treap.
func NewProcessor(cfg *Config) *Processor {
	source := cfg.Source
	if source == nil {
		source = priority.NewLCG(priority.DefaultLCGSeed)
	}
	missing := cfg.Missing
	if missing == "" {
		missing = DefaultMissing
	}

	return &Processor{
		source:           source,
		missing:          missing,
		treap:            treap.NewMutable(),
		progressInterval: cfg.ProgressInterval,
	}
}

// Treap returns the treap the processor owns.
func (p *Processor) Treap() *treap.Mutable {
	return p.treap
}

// Stats returns the totals of all requests executed so far.
func (p *Processor) Stats() Stats {
	return p.stats
}

// Execute applies a single request to the treap.
func (p *Processor) Execute(req Request) Result {
	result := Result{Request: req}
	switch req.Op {
	case OpInsert:
		result.Changed = p.treap.Put(req.Value, p.source.Priority())
		if result.Changed {
			p.stats.Inserted++
		} else {
			p.stats.Duplicates++
			log.Debugf("Ignoring insert of existing key %d", req.Value)
		}

	case OpDelete:
		result.Changed = p.treap.Delete(req.Value)
		if result.Changed {
			p.stats.Deleted++
		} else {
			p.stats.Absent++
		}

	case OpSelect:
		// Ranks that do not fit in an int can not exist.
		if req.Value <= math.MaxInt {
			result.Key, result.Found = p.treap.Select(int(req.Value))
		}
		if result.Found {
			p.stats.Selected++
		} else {
			p.stats.Missed++
		}
	}

	log.Tracef("%v", newLogClosure(func() string {
		return spew.Sdump(result)
	}))
	return result
}

// Run decodes every request from r, executes it and writes one line per select
// to w.  The context is checked between requests, so a cancelled context stops
// processing at the next request boundary with the context's error.
func (p *Processor) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	reader := NewReader(r)
	count, err := reader.Count()
	if err != nil {
		return p.stats, err
	}
	log.Infof("Processing %d %s", count, pickNoun(int64(count), "request",
		"requests"))

	out := bufio.NewWriter(w)
	progress := newProgressLogger(p.progressInterval, log)
	var buf []byte
	for {
		select {
		case <-ctx.Done():
			if err := out.Flush(); err != nil {
				return p.stats, err
			}
			return p.stats, ctx.Err()
		default:
		}

		req, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Flush()
			return p.stats, err
		}

		result := p.Execute(req)
		if req.Op == OpSelect {
			buf = buf[:0]
			if result.Found {
				buf = strconv.AppendInt(buf, result.Key, 10)
			} else {
				buf = append(buf, p.missing...)
			}
			buf = append(buf, '\n')
			if _, err := out.Write(buf); err != nil {
				return p.stats, err
			}
		}
		progress.logRequest(req, p.treap.Len())
	}

	if err := out.Flush(); err != nil {
		return p.stats, err
	}
	return p.stats, nil
}
