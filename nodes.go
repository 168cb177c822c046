package calculation

import (
	"strconv"
	"strings"
)

// Expr is a node in a parsed expression tree. The implementations are
// Constant, Variable, and *Binary.
type Expr interface {
	// Calculate evaluates the expression, looking up variables in vars.
	Calculate(vars *VariableTable) (float64, error)
	// String formats the expression with alternating round and square
	// brackets grouping each term.
	String() string

	fmt(b *strings.Builder, square bool)
}

// Constant is a literal number.
type Constant struct {
	Value float64
}

// Variable is a reference to a named value in a VariableTable.
type Variable struct {
	Name string
}

// Binary applies an operator to two operands. A Binary produced by Parse
// always has non-nil Left and Right.
type Binary struct {
	// Op is the operator. Only "+", "-", "*", and "/" can be evaluated.
	Op    string
	Left  Expr
	Right Expr
}

func (c Constant) String() string { return format(c) }
func (v Variable) String() string { return format(v) }
func (n *Binary) String() string { return format(n) }

func format(e Expr) string {
	var b strings.Builder
	e.fmt(&b, false)
	return b.String()
}

func brackets(square bool) (byte, byte) {
	if square {
		return '[', ']'
	}
	return '(', ')'
}

func (c Constant) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(strconv.FormatFloat(c.Value, 'g', -1, 64))
	b.WriteByte(r)
}

func (v Variable) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(v.Name)
	b.WriteByte(r)
}

func (n *Binary) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	defer b.WriteByte(r)
	if n.Left == nil || n.Right == nil {
		// Invalid nodes use invalid characters.
		b.WriteString("$" + n.Op + "$")
		return
	}
	n.Left.fmt(b, !square)
	b.WriteString(" " + n.Op + " ")
	n.Right.fmt(b, !square)
}
