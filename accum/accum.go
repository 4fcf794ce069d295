// Package accum implements the calculator's arithmetic accumulator.
//
// An Accumulator holds the running value, the digits typed for the next
// operand, a one-shot sign flag and a queued binary operator. It is not safe for
// concurrent use; a single owner applies commands to it in order.
package accum

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformedInput reports a pending buffer that does not parse as a number.
	ErrMalformedInput = errors.New("accum: malformed input buffer")
	// ErrInvalidDigit reports a Digit call with a rune outside '0'..'9'.
	ErrInvalidDigit = errors.New("accum: invalid digit")
)

// Op is a binary operator queued against the current value.
type Op uint8

const (
	OpNone Op = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// Valid reports whether o is one of the four binary operators.
func (o Op) Valid() bool { return o >= OpAdd && o <= OpDivide }

func (o Op) apply(a, b float64) float64 {
	switch o {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		return a / b
	default:
		return b
	}
}

// Policy selects how evaluate treats a typed value when a result exists but no
// operator is queued.
type Policy uint8

const (
	// PolicySeed commits the typed value as the new current value.
	PolicySeed Policy = iota
	// PolicyStrict discards the typed value and keeps the current value.
	PolicyStrict
)

// Accumulator is the calculator state machine. The zero value is ready to use
// with PolicySeed.
type Accumulator struct {
	policy Policy

	current    float64
	hasCurrent bool

	input  string
	negate bool

	op Op
}

// New returns an empty Accumulator using policy p.
func New(p Policy) *Accumulator {
	return &Accumulator{policy: p}
}

// Policy returns the Case A policy in effect.
func (a *Accumulator) Policy() Policy { return a.policy }

// Current returns the committed value and whether one exists.
func (a *Accumulator) Current() (float64, bool) { return a.current, a.hasCurrent }

// Input returns the pending input buffer without the sign.
func (a *Accumulator) Input() string { return a.input }

// NegatePending reports whether the next committed operand will be negated.
func (a *Accumulator) NegatePending() bool { return a.negate }

// Pending returns the queued operator, or OpNone.
func (a *Accumulator) Pending() Op { return a.op }

// Digit appends d to the pending input.
func (a *Accumulator) Digit(d rune) error {
	if d < '0' || d > '9' {
		return fmt.Errorf("%w: %q", ErrInvalidDigit, d)
	}
	a.input += string(d)
	return nil
}

// DecimalPoint appends '.' unless the pending input already has one.
func (a *Accumulator) DecimalPoint() {
	if strings.Contains(a.input, ".") {
		return
	}
	a.input += "."
}

// Operator commits pending input and queues op.
func (a *Accumulator) Operator(op Op) error {
	if err := a.evaluate(); err != nil {
		return err
	}
	a.op = op
	return nil
}

// Equals commits pending input against the queued operator.
func (a *Accumulator) Equals() error {
	return a.evaluate()
}

// Percent commits pending input, then divides the result by 100.
func (a *Accumulator) Percent() error {
	if err := a.evaluate(); err != nil {
		return err
	}
	if a.hasCurrent {
		a.current /= 100
	}
	return nil
}

// ToggleSign flips the one-shot negation flag.
func (a *Accumulator) ToggleSign() {
	a.negate = !a.negate
}

// Clear resets everything except the policy.
func (a *Accumulator) Clear() {
	p := a.policy
	*a = Accumulator{policy: p}
}

// Render returns the string to display for the current state.
func (a *Accumulator) Render() string {
	if a.input != "" {
		if a.negate {
			return "-" + a.input
		}
		return a.input
	}
	if a.hasCurrent {
		return FormatNumber(a.current)
	}
	return ""
}

// evaluate consumes the pending input and folds it into current. On error the
// state is left untouched.
func (a *Accumulator) evaluate() error {
	typed := a.input != ""
	var operand float64
	if typed {
		// Out-of-range entries parse to ±Inf or zero and are kept as values.
		v, err := strconv.ParseFloat(a.input, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("%w %q: %v", ErrMalformedInput, a.input, err)
		}
		if a.negate {
			v = -v
		}
		operand = v
		a.negate = false
		a.input = ""
	}

	op := a.op
	a.op = OpNone

	switch {
	case a.hasCurrent && op.Valid():
		a.current = op.apply(a.current, operand)
	case !typed:
	case !a.hasCurrent || a.policy == PolicySeed:
		a.current = operand
		a.hasCurrent = true
	}
	return nil
}
