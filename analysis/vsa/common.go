package vsa

import (
	"errors"
	"fmt"

	"github.com/cs-au-dk/vsa/utils"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var opts = utils.Opts()

var colorize = struct {
	Element func(...interface{}) string
	Name    func(...interface{}) string
	Const   func(...interface{}) string
	Bool    func(...interface{}) string
}{
	Element: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
	Name: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
	Const: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiWhite).SprintFunc())(is...)
	},
	Bool: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgYellow).SprintFunc())(is...)
	},
}

var (
	// ErrUnsupportedOperand is returned when an operation receives an operand
	// that is neither a strided interval nor a discrete set.
	ErrUnsupportedOperand = errors.New("unsupported operand type")
	// ErrWidthMismatch is returned by binary interval operations on operands
	// of different bit-widths.
	ErrWidthMismatch = errors.New("bit-width mismatch")
	// ErrWidthOverflow is returned when a result would be wider than 64 bits.
	ErrWidthOverflow = errors.New("bit-width exceeds 64 bits")
	// ErrInvalidExtract is returned for extraction bounds outside the operand.
	ErrInvalidExtract = errors.New("invalid extraction bounds")

	errInternal = errors.New("internal error")
)

func errUnsupported(op interface{}, v interface{}) error {
	return fmt.Errorf("%w %T for operation %v", ErrUnsupportedOperand, v, op)
}

func errMismatch(op interface{}, a, b uint) error {
	return fmt.Errorf("%w: %d and %d bits for operation %v", ErrWidthMismatch, a, b, op)
}

// logger reports domain events. Events are only emitted with -vsa-logging.
var logger = logrus.New()

func init() {
	logger.SetLevel(logrus.DebugLevel)
}

func logEvent(event string, fields logrus.Fields) {
	if !opts.LogVSA() {
		return
	}
	logger.WithFields(fields).Debug(event)
}
