package utils

import (
	"flag"
	"fmt"
	"strings"
)

type options struct {
	noColorize bool
	verbose    bool
	logVSA     bool
	metrics    bool
}

// CanColorize wraps a color printer so that it degrades to plain
// formatting when colorization is disabled.
func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

var opts = &options{}

type optInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func (optInterface) NoColorize() bool {
	return opts.noColorize
}

func (optInterface) Verbose() bool {
	return opts.verbose
}

// LogVSA reports whether value-set domain events (collapses, demotions,
// element-wise fan-out) should be logged.
func (optInterface) LogVSA() bool {
	return opts.logVSA
}

func (optInterface) Metrics() bool {
	return opts.metrics
}

func (optInterface) OnVerbose(do func()) {
	if Opts().Verbose() {
		do()
	}
}

func init() {
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")
	flag.BoolVar(&(opts.logVSA), "vsa-logging", false, "Enable logging of value-set domain events (collapse, demotion, lifting)")
	flag.BoolVar(&(opts.metrics), "vsa-metrics", false, "Enable collection of value-set domain metrics")
}
