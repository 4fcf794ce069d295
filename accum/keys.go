package accum

// QuitRune closes the calculator. It is handled by the front end and never
// reaches an Accumulator.
const QuitRune = 'Q'

// IsQuitRune reports whether r is the quit key.
func IsQuitRune(r rune) bool { return r == QuitRune }

// CommandForRune maps a typed character to its command.
func CommandForRune(r rune) (Command, bool) {
	if r >= '0' && r <= '9' {
		return DigitCommand(r), true
	}

	switch r {
	case '.':
		return Command{Kind: KindDecimalPoint}, true
	case '+':
		return OperatorCommand(OpAdd), true
	case '-':
		return OperatorCommand(OpSubtract), true
	case '*', 'x', '×':
		return OperatorCommand(OpMultiply), true
	case '/', '÷':
		return OperatorCommand(OpDivide), true
	case '=', '\n':
		return Command{Kind: KindEquals}, true
	case ' ', '\t':
		return Command{Kind: KindClear}, true
	case 'i':
		return Command{Kind: KindToggleSign}, true
	case 'p', '%':
		return Command{Kind: KindPercent}, true
	default:
		return Command{}, false
	}
}
