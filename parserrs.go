package calculation

import "strconv"

// SyntaxError is an error indicating a token sequence that does not form an
// expression: unbalanced parentheses, an operator missing operands, or a token
// that is neither a number, an identifier, nor an operator.
type SyntaxError struct {
	// Token is the token at which the error was detected. It is empty if the
	// error was detected at the end of the input.
	Token string
	// Index is the position of Token in the preprocessed token sequence, or
	// -1 if the error was detected at the end.
	Index int
	// Msg describes the problem.
	Msg string
}

func (err *SyntaxError) Error() string {
	if err.Index < 0 {
		return "syntax error at end of expression: " + err.Msg
	}
	return "syntax error at token " + strconv.Itoa(err.Index) + " " + strconv.Quote(err.Token) + ": " + err.Msg
}

// OperatorError is an error indicating an operator that has no arithmetic
// meaning, e.g. "=".
type OperatorError struct {
	// Operator is the operator that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return "unknown operator " + strconv.Quote(err.Operator)
}

// DivisionByZeroError is an error indicating a division whose divisor
// evaluated to exactly zero.
type DivisionByZeroError struct {
	// Dividend is the value that was to be divided.
	Dividend float64
}

func (err *DivisionByZeroError) Error() string {
	return "division by zero: " + strconv.FormatFloat(err.Dividend, 'g', -1, 64) + " / 0"
}
