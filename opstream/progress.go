// Copyright (c) 2015-2017 The btcsuite developers
// Copyright (c) 2015-2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package opstream

import (
	"time"

	"github.com/btcsuite/btclog"
)

// pickNoun returns the singular or plural form of a noun depending on the
// count n.
func pickNoun(n int64, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// progressLogger provides periodic logging of the number of requests handled
// so far.  A zero interval disables it.
type progressLogger struct {
	interval        time.Duration
	receivedLogReqs int64
	receivedLogSels int64
	lastLogTime     time.Time
	subsystemLogger btclog.Logger
	now             func() time.Time
}

// newProgressLogger returns a new progress logger that writes at most one
// message per interval to the passed logger.
func newProgressLogger(interval time.Duration, logger btclog.Logger) *progressLogger {
	return &progressLogger{
		interval:        interval,
		lastLogTime:     time.Now(),
		subsystemLogger: logger,
		now:             time.Now,
	}
}

// logRequest records a handled request and logs the totals since the last
// message once the interval has passed.  It returns whether a message was
// written.
func (p *progressLogger) logRequest(req Request, treapLen int) bool {
	p.receivedLogReqs++
	if req.Op == OpSelect {
		p.receivedLogSels++
	}
	if p.interval <= 0 {
		return false
	}

	now := p.now()
	duration := now.Sub(p.lastLogTime)
	if duration < p.interval {
		return false
	}

	// Truncate the duration to 10s of milliseconds.
	durationMillis := int64(duration / time.Millisecond)
	tDuration := 10 * time.Millisecond * time.Duration(durationMillis/10)

	p.subsystemLogger.Infof("Processed %d %s in the last %s (%d %s, "+
		"%d %s stored)", p.receivedLogReqs,
		pickNoun(p.receivedLogReqs, "request", "requests"), tDuration,
		p.receivedLogSels, pickNoun(p.receivedLogSels, "select", "selects"),
		treapLen, pickNoun(int64(treapLen), "key", "keys"))

	p.receivedLogReqs = 0
	p.receivedLogSels = 0
	p.lastLogTime = now
	return true
}
