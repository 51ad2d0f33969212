// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/ranktreap/internal/version"
	"github.com/btcsuite/ranktreap/opstream"
	"github.com/btcsuite/ranktreap/priority"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "ranktreap.conf"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "ranktreap.log"
	defaultLogLevel       = "info"
	defaultPriority       = priority.NameLCG
	defaultSeed           = priority.DefaultLCGSeed
	defaultSkip           = 1
	defaultProgress       = 10 * time.Second

	// stdioPath selects standard input or standard output in place of a
	// file.
	stdioPath = "-"
)

var (
	defaultHomeDir    = btcutil.AppDataDir("ranktreap", false)
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// config defines the configuration options for ranktreap.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion   bool          `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile    string        `short:"C" long:"configfile" description:"Path to configuration file"`
	InFile        string        `short:"i" long:"infile" description:"File containing the request stream -- Use - for standard input"`
	OutFile       string        `short:"o" long:"outfile" description:"File the select results are written to -- Use - for standard output"`
	Priority      string        `long:"priority" description:"Source of treap priorities {lcg, hash, rand}"`
	Seed          int64         `long:"seed" description:"Seed of the priority source"`
	Skip          int           `long:"skip" description:"Number of priorities to discard before the first request"`
	Missing       string        `long:"missing" description:"Output written for a select whose rank does not exist"`
	Progress      time.Duration `long:"progress" description:"Interval between progress messages -- Use 0 to disable progress messages"`
	LogDir        string        `long:"logdir" description:"Directory to log output"`
	NoFileLogging bool          `long:"nofilelogging" description:"Disable file logging"`
	DebugLevel    string        `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.  The stdio placeholder is
// returned unchanged.
func cleanAndExpandPath(path string) string {
	if path == stdioPath || path == "" {
		return path
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(defaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// validPriority returns whether or not name is a supported priority source.
func validPriority(name string) bool {
	for _, known := range priority.SupportedSources() {
		if name == known {
			return true
		}
	}
	return false
}

// errShowVersion and errShowSubsystems are returned by loadConfig when the
// requested information was written and the program should exit without
// processing any requests.
var (
	errShowVersion    = errors.New("version requested")
	errShowSubsystems = errors.New("subsystems requested")
)

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in ranktreap functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options.  Command line options always take
// precedence.  Help, version and error output is written to stderr.
func loadConfig(args []string, stderr io.Writer) (*config, []string, error) {
	// Default config.
	cfg := config{
		ConfigFile: defaultConfigFile,
		InFile:     stdioPath,
		OutFile:    stdioPath,
		Priority:   defaultPriority,
		Seed:       defaultSeed,
		Skip:       defaultSkip,
		Missing:    opstream.DefaultMissing,
		Progress:   defaultProgress,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.  Any errors aside from the
	// help message error can be ignored here since they will be caught by
	// the final parse below.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			fmt.Fprintln(stderr, err)
			return nil, nil, err
		}
	}

	// Show the version and exit if the version flag was specified.
	funcName := "loadConfig"
	if preCfg.ShowVersion {
		fmt.Fprintln(stderr, "ranktreap version", version.String())
		return nil, nil, errShowVersion
	}

	// Load additional config from file.  A missing file is only an error
	// when it was requested explicitly.
	var configFileError error
	parser := flags.NewParser(&cfg, flags.PassDoubleDash|flags.HelpFlag)
	configFile := cleanAndExpandPath(preCfg.ConfigFile)
	err = flags.NewIniParser(parser).ParseFile(configFile)
	if err != nil {
		if _, ok := err.(*os.PathError); !ok ||
			preCfg.ConfigFile != defaultConfigFile {

			fmt.Fprintf(stderr, "Error parsing config file: %v\n", err)
			parser.WriteHelp(stderr)
			return nil, nil, err
		}
		configFileError = err
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(stderr)
		}
		return nil, nil, err
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Fprintln(stderr, "Supported subsystems", supportedSubsystems())
		return nil, nil, errShowSubsystems
	}

	// Validate the priority source.
	if !validPriority(cfg.Priority) {
		str := "%s: the specified priority source [%v] is invalid -- " +
			"supported sources %v"
		err := fmt.Errorf(str, funcName, cfg.Priority,
			priority.SupportedSources())
		fmt.Fprintln(stderr, err)
		parser.WriteHelp(stderr)
		return nil, nil, err
	}

	// The number of discarded priorities can't be negative.
	if cfg.Skip < 0 {
		str := "%s: the skip count may not be negative -- parsed [%d]"
		err := fmt.Errorf(str, funcName, cfg.Skip)
		fmt.Fprintln(stderr, err)
		parser.WriteHelp(stderr)
		return nil, nil, err
	}

	// The progress interval can't be negative.
	if cfg.Progress < 0 {
		str := "%s: the progress interval may not be negative -- " +
			"parsed [%v]"
		err := fmt.Errorf(str, funcName, cfg.Progress)
		fmt.Fprintln(stderr, err)
		parser.WriteHelp(stderr)
		return nil, nil, err
	}

	// The missing token must fit on one output line.
	if cfg.Missing == "" || strings.ContainsAny(cfg.Missing, "\r\n") {
		str := "%s: the missing token must be a non-empty single line " +
			"-- parsed [%q]"
		err := fmt.Errorf(str, funcName, cfg.Missing)
		fmt.Fprintln(stderr, err)
		parser.WriteHelp(stderr)
		return nil, nil, err
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		err := fmt.Errorf("%s: %v", funcName, err.Error())
		fmt.Fprintln(stderr, err)
		parser.WriteHelp(stderr)
		return nil, nil, err
	}

	cfg.InFile = cleanAndExpandPath(cfg.InFile)
	cfg.OutFile = cleanAndExpandPath(cfg.OutFile)
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	// Warn about missing config file only after all other configuration is
	// done.  This prevents the warning on help messages and invalid
	// options.  Note this should go directly before the return.
	if configFileError != nil {
		mainLog.Debugf("%v", configFileError)
	}

	return &cfg, remainingArgs, nil
}
