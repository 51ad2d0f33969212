// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package opstream

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/btcsuite/ranktreap/priority"
	"github.com/stretchr/testify/require"
)

func TestProcessorRun(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name      string
		input     string
		missing   string
		want      string
		wantStats Stats
	}{{
		name:  "delete maximum then select",
		input: "7\n1 5\n1 3\n1 8\n1 1\n2 8\n0 1\n0 4\n",
		want:  "5\nnone\n",
		wantStats: Stats{Inserted: 4, Deleted: 1, Selected: 1,
			Missed: 1},
	}, {
		name:  "insert delete select",
		input: "6\n1 10\n1 5\n1 9\n-1 9\n0 1\n0 2\n",
		want:  "10\n5\n",
		wantStats: Stats{Inserted: 3, Deleted: 1, Selected: 2},
	}, {
		name:    "custom missing token",
		input:   "3\n0 1\n1 0\n0 1\n",
		missing: "-",
		want:    "-\n0\n",
		wantStats: Stats{Inserted: 1, Selected: 1, Missed: 1},
	}, {
		name:  "duplicates and absent deletes",
		input: "6\n1 7\n1 7\n2 8\n0 1\n0 2\n0 0\n",
		want:  "7\nnone\nnone\n",
		wantStats: Stats{Inserted: 1, Duplicates: 1, Absent: 1,
			Selected: 1, Missed: 2},
	}, {
		name:  "no requests",
		input: "0\n",
	}} {
		t.Run(test.name, func(t *testing.T) {
			proc := NewProcessor(&Config{
				Source:  priority.NewLCG(priority.DefaultLCGSeed),
				Missing: test.missing,
			})

			var out bytes.Buffer
			stats, err := proc.Run(context.Background(),
				strings.NewReader(test.input), &out)
			require.NoError(t, err)
			require.Equal(t, test.want, out.String())
			require.Equal(t, test.wantStats, stats)
			require.Equal(t, stats, proc.Stats())
		})
	}
}

func TestProcessorExecute(t *testing.T) {
	t.Parallel()

	proc := NewProcessor(&Config{})
	for _, key := range []int64{10, 5, 9} {
		res := proc.Execute(Request{Op: OpInsert, Value: key})
		require.True(t, res.Changed)
	}
	require.Equal(t, 3, proc.Treap().Len())

	res := proc.Execute(Request{Op: OpDelete, Value: 9})
	require.True(t, res.Changed)
	require.Equal(t, 2, proc.Treap().Len())

	res = proc.Execute(Request{Op: OpSelect, Value: 1})
	require.True(t, res.Found)
	require.Equal(t, int64(10), res.Key)

	// Ranks outside of the treap must never produce a key.
	for _, rank := range []int64{0, -3, 3, 1 << 62} {
		res = proc.Execute(Request{Op: OpSelect, Value: rank})
		require.False(t, res.Found, "rank %d", rank)
	}
}

func TestProcessorRunMalformed(t *testing.T) {
	t.Parallel()

	proc := NewProcessor(&Config{})
	var out bytes.Buffer
	stats, err := proc.Run(context.Background(),
		strings.NewReader("3\n1 4\n0 1\n0 x\n"), &out)

	var decodeErr Error
	require.True(t, errors.As(err, &decodeErr))
	require.Equal(t, ErrMalformedRequest, decodeErr.ErrorCode)
	require.Equal(t, 4, decodeErr.Line)

	// Requests before the malformed line were applied and their output
	// flushed.
	require.Equal(t, "4\n", out.String())
	require.Equal(t, int64(2), stats.Requests())
}

func TestProcessorRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := NewProcessor(&Config{})
	var out bytes.Buffer
	stats, err := proc.Run(ctx, strings.NewReader("1\n1 1\n"), &out)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, stats.Requests())
	require.Zero(t, proc.Treap().Len())
}

func TestProgressLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := btclog.NewBackend(&buf).Logger("TEST")
	progress := newProgressLogger(time.Second, logger)

	start := progress.lastLogTime
	now := start
	progress.now = func() time.Time { return now }

	// Nothing is logged before the interval passes.
	require.False(t, progress.logRequest(Request{Op: OpInsert}, 1))
	require.Empty(t, buf.String())

	now = start.Add(1500 * time.Millisecond)
	require.True(t, progress.logRequest(Request{Op: OpSelect}, 1))
	require.Contains(t, buf.String(),
		"Processed 2 requests in the last 1.5s (1 select, 1 key stored)")

	// Counters start over after a message.
	require.Zero(t, progress.receivedLogReqs)
	require.Zero(t, progress.receivedLogSels)

	// A zero interval never logs.
	disabled := newProgressLogger(0, logger)
	require.False(t, disabled.logRequest(Request{Op: OpSelect}, 1))
}
