package main

import (
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ajkula/moni/config"
)

// listFlag collects values separated by commas or spaces
type listFlag struct {
	values []string
	set    bool
}

func (l *listFlag) String() string {
	return strings.Join(l.values, ",")
}

func (l *listFlag) Set(value string) error {
	l.set = true
	l.values = append(l.values, splitList(value)...)
	return nil
}

func splitList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// options holds the command-line values. Unset flags leave the config
// file untouched.
type options struct {
	configPath     string
	generateConfig bool
	showVersion    bool

	workspace        string
	targetExtensions listFlag
	ignoreFilenames  listFlag
	ignoreExtensions listFlag
	ignorePathWords  listFlag
	ignoreGlobs      listFlag
	command          string
	interval         time.Duration
	logLevel         string
	monitor          bool

	visited map[string]bool
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	opts := &options{visited: map[string]bool{}}

	fs := flag.NewFlagSet("moni", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (default moni.json when present)")
	fs.BoolVar(&opts.generateConfig, "generate-config", false, "Generate default configuration file")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")

	fs.StringVar(&opts.workspace, "workspace", "", "Root directory to watch")
	fs.StringVar(&opts.workspace, "w", "", "Shorthand for -workspace")
	fs.Var(&opts.targetExtensions, "target-extensions", "Extensions to watch, split by comma or space")
	fs.Var(&opts.targetExtensions, "t", "Shorthand for -target-extensions")
	fs.Var(&opts.ignoreFilenames, "ignore-filenames", "File or directory names to skip, split by comma or space")
	fs.Var(&opts.ignoreFilenames, "i", "Shorthand for -ignore-filenames")
	fs.Var(&opts.ignoreExtensions, "ignore-extensions", "Extensions to skip, split by comma or space")
	fs.Var(&opts.ignoreExtensions, "e", "Shorthand for -ignore-extensions")
	fs.Var(&opts.ignorePathWords, "ignore-path-words", "Regular expressions skipping matching names, split by comma or space")
	fs.Var(&opts.ignorePathWords, "p", "Shorthand for -ignore-path-words")
	fs.Var(&opts.ignoreGlobs, "ignore-globs", "Glob patterns skipping matching names, split by comma or space")
	fs.Var(&opts.ignoreGlobs, "g", "Shorthand for -ignore-globs")
	fs.StringVar(&opts.command, "cmd", "", "Command to execute, MONI_FILE_PATH is replaced by the changed file")
	fs.StringVar(&opts.command, "c", "", "Shorthand for -cmd")
	fs.DurationVar(&opts.interval, "interval", 0, "Pause between two scans")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.monitor, "monitor", false, "Start the monitor HTTP server")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		opts.visited[f.Name] = true
	})

	return opts, nil
}

func (o *options) isSet(names ...string) bool {
	for _, n := range names {
		if o.visited[n] {
			return true
		}
	}
	return false
}

// resolveConfigPath returns the explicit -config value, or DefaultFile
// when it exists in the working directory, or "" for none.
func (o *options) resolveConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	if _, err := os.Stat(config.DefaultFile); err == nil {
		return config.DefaultFile
	}
	return ""
}

// apply overrides cfg with every flag given on the command line
func (o *options) apply(cfg *config.Config) {
	if o.isSet("workspace", "w") {
		cfg.Workspace = o.workspace
	}
	if o.targetExtensions.set {
		cfg.TargetExtensions = o.targetExtensions.values
	}
	if o.ignoreFilenames.set {
		cfg.IgnoreFilenames = o.ignoreFilenames.values
	}
	if o.ignoreExtensions.set {
		cfg.IgnoreExtensions = o.ignoreExtensions.values
	}
	if o.ignorePathWords.set {
		cfg.IgnorePathWords = o.ignorePathWords.values
	}
	if o.ignoreGlobs.set {
		cfg.IgnoreGlobs = o.ignoreGlobs.values
	}
	if o.isSet("cmd", "c") {
		cfg.ExecuteCommand = o.command
	}
	if o.isSet("interval") {
		cfg.Watch.Interval = o.interval
	}
	if o.isSet("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if o.isSet("monitor") {
		cfg.Monitor.Enabled = o.monitor
	}
}
