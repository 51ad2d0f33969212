// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/btcsuite/ranktreap/internal/version"
	"github.com/btcsuite/ranktreap/opstream"
	"github.com/btcsuite/ranktreap/priority"
	flags "github.com/jessevdk/go-flags"
)

// stdoutCloser leaves standard output open when the result stream is closed.
type stdoutCloser struct {
	io.Writer
}

func (stdoutCloser) Close() error { return nil }

// openInput returns the request stream named by path.
func openInput(path string) (io.ReadCloser, error) {
	if path == stdioPath {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// openOutput returns the result stream named by path, creating or truncating
// the file as needed.
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdioPath {
		return stdoutCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// newSource creates the configured priority source and advances it past the
// configured number of discarded values.
func newSource(cfg *config) (priority.Source, error) {
	src, err := priority.FromName(cfg.Priority, cfg.Seed)
	if err != nil {
		return nil, err
	}
	priority.Skip(src, cfg.Skip)
	return src, nil
}

// process executes the request stream described by cfg until it is exhausted
// or ctx is canceled.
func process(ctx context.Context, cfg *config) (opstream.Stats, error) {
	src, err := newSource(cfg)
	if err != nil {
		return opstream.Stats{}, err
	}

	in, err := openInput(cfg.InFile)
	if err != nil {
		mainLog.Errorf("Failed to open request stream: %v", err)
		return opstream.Stats{}, err
	}
	defer in.Close()

	out, err := openOutput(cfg.OutFile)
	if err != nil {
		mainLog.Errorf("Failed to open result stream: %v", err)
		return opstream.Stats{}, err
	}

	processor := opstream.NewProcessor(&opstream.Config{
		Source:           src,
		Missing:          cfg.Missing,
		ProgressInterval: cfg.Progress,
	})
	stats, err := processor.Run(ctx, bufio.NewReader(in), out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return stats, err
}

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain(args []string) error {
	// Load configuration and parse command line.
	cfg, _, err := loadConfig(args, os.Stderr)
	if err != nil {
		return err
	}

	// Setup file logging unless it was disabled.
	if !cfg.NoFileLogging {
		err := initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename))
		if err != nil {
			mainLog.Errorf("%v", err)
			return err
		}
		defer logRotator.Close()
	}

	mainLog.Infof("Version %s", version.String())
	mainLog.Debugf("Priority source %s (seed %d, skip %d)", cfg.Priority,
		cfg.Seed, cfg.Skip)

	ctx, cancel := shutdownListener()
	defer cancel()

	stats, err := process(ctx, cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			mainLog.Infof("Stopped after %d requests", stats.Requests())
		} else {
			mainLog.Errorf("%v", err)
		}
		return err
	}

	mainLog.Infof("Processed %d requests: %d inserted, %d duplicate, "+
		"%d deleted, %d absent, %d selected, %d missed",
		stats.Requests(), stats.Inserted, stats.Duplicates,
		stats.Deleted, stats.Absent, stats.Selected, stats.Missed)
	return nil
}

func main() {
	if err := realMain(os.Args[1:]); err != nil {
		// Help and informational requests are not failures.
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		if errors.Is(err, errShowVersion) ||
			errors.Is(err, errShowSubsystems) {

			os.Exit(0)
		}
		os.Exit(1)
	}
}
