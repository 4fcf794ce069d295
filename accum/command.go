package accum

import "fmt"

// Kind identifies a logical calculator command.
type Kind uint8

const (
	KindNone Kind = iota
	KindDigit
	KindDecimalPoint
	KindOperator
	KindEquals
	KindClear
	KindToggleSign
	KindPercent
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindDecimalPoint:
		return "decimal_point"
	case KindOperator:
		return "operator"
	case KindEquals:
		return "equals"
	case KindClear:
		return "clear"
	case KindToggleSign:
		return "toggle_sign"
	case KindPercent:
		return "percent"
	default:
		return "none"
	}
}

// Command is one inbound event for an Accumulator.
//
// Digit is set only for KindDigit and Op only for KindOperator.
type Command struct {
	Kind  Kind
	Digit rune
	Op    Op
}

// DigitCommand returns the command for pressing digit d.
func DigitCommand(d rune) Command { return Command{Kind: KindDigit, Digit: d} }

// OperatorCommand returns the command for pressing operator op.
func OperatorCommand(op Op) Command { return Command{Kind: KindOperator, Op: op} }

// Valid reports whether c is well formed.
func (c Command) Valid() bool {
	switch c.Kind {
	case KindDigit:
		return c.Digit >= '0' && c.Digit <= '9'
	case KindOperator:
		return c.Op.Valid()
	case KindDecimalPoint, KindEquals, KindClear, KindToggleSign, KindPercent:
		return true
	default:
		return false
	}
}

// String returns the button label for c.
func (c Command) String() string {
	switch c.Kind {
	case KindDigit:
		return string(c.Digit)
	case KindDecimalPoint:
		return "."
	case KindOperator:
		return c.Op.String()
	case KindEquals:
		return "="
	case KindClear:
		return "AC"
	case KindToggleSign:
		return "±"
	case KindPercent:
		return "%"
	default:
		return "?"
	}
}

// Apply runs c against the accumulator.
func (a *Accumulator) Apply(c Command) error {
	switch c.Kind {
	case KindDigit:
		return a.Digit(c.Digit)
	case KindDecimalPoint:
		a.DecimalPoint()
	case KindOperator:
		if !c.Op.Valid() {
			return fmt.Errorf("accum: invalid operator %d", c.Op)
		}
		return a.Operator(c.Op)
	case KindEquals:
		return a.Equals()
	case KindClear:
		a.Clear()
	case KindToggleSign:
		a.ToggleSign()
	case KindPercent:
		return a.Percent()
	default:
		return fmt.Errorf("accum: unknown command kind %d", c.Kind)
	}
	return nil
}
