package calculation

// Expr = number | identifier | Sum | Neg | Mul | Div | '(' Expr ')'
// Sum = Expr '+' Expr
// Neg = '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
//
// Binary subtraction does not appear here because Preprocess rewrites it as
// a Sum with a Neg on the right.

// Compile scans, preprocesses, and parses src. An expression containing no
// tokens at all compiles to the constant zero.
func Compile(src string) (Expr, error) {
	toks, err := Scan(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return Constant{}, nil
	}
	toks, err = Preprocess(toks)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// Parse builds an expression tree from a token sequence produced by
// Preprocess. Parse assumes that every - is a unary negation and that
// parentheses are balanced; unmatched parentheses are tolerated rather than
// diagnosed.
func Parse(tokens []string) (Expr, error) {
	var p parser
	for i, tok := range tokens {
		switch {
		case IsNumber(tok):
			p.operands = append(p.operands, Constant{Value: number(tok)})
		case IsIdentifier(tok):
			p.operands = append(p.operands, Variable{Name: tok})
		case tok == "(":
			p.ops = append(p.ops, tok)
		case tok == ")":
			for len(p.ops) > 0 {
				if p.top() == "(" {
					p.pop()
					break
				}
				if err := p.reduce(tok, i); err != nil {
					return nil, err
				}
			}
		case IsOperator(tok):
			prec := precedence(tok)
			for len(p.ops) > 0 && p.top() != "(" && !prec.moreBinding(precedence(p.top())) {
				if err := p.reduce(tok, i); err != nil {
					return nil, err
				}
			}
			p.ops = append(p.ops, tok)
		default:
			return nil, p.fail(&SyntaxError{Token: tok, Index: i, Msg: "unexpected token"})
		}
	}
	for len(p.ops) > 0 && p.top() != "(" {
		if err := p.reduce("", -1); err != nil {
			return nil, err
		}
	}
	switch len(p.operands) {
	case 0:
		return nil, p.fail(&SyntaxError{Index: -1, Msg: "no expression"})
	case 1:
		return p.operands[0], nil
	default:
		return nil, p.fail(&SyntaxError{Index: -1, Msg: "operands without operators"})
	}
}

// parser holds the operand and operator stacks of a parse.
type parser struct {
	operands []Expr
	ops      []string
}

func (p *parser) top() string {
	return p.ops[len(p.ops)-1]
}

func (p *parser) pop() string {
	op := p.top()
	p.ops = p.ops[:len(p.ops)-1]
	return op
}

func (p *parser) popOperand() (Expr, bool) {
	if len(p.operands) == 0 {
		return nil, false
	}
	n := p.operands[len(p.operands)-1]
	p.operands[len(p.operands)-1] = nil
	p.operands = p.operands[:len(p.operands)-1]
	return n, true
}

// reduce pops the top operator and its operands and pushes the combined
// Binary. A - takes one operand, with zero as its implied left side. tok and
// idx identify the token that caused the reduction, for errors.
func (p *parser) reduce(tok string, idx int) error {
	if len(p.ops) == 0 {
		return p.fail(&SyntaxError{Token: tok, Index: idx, Msg: "insufficient operators"})
	}
	op := p.pop()
	rhs, ok := p.popOperand()
	if !ok {
		return p.fail(&SyntaxError{Token: tok, Index: idx, Msg: "insufficient operands for " + op})
	}
	var lhs Expr = Constant{}
	if op != "-" {
		lhs, ok = p.popOperand()
		if !ok {
			return p.fail(&SyntaxError{Token: tok, Index: idx, Msg: "insufficient operands for " + op})
		}
	}
	p.operands = append(p.operands, &Binary{Op: op, Left: lhs, Right: rhs})
	return nil
}

// fail discards all partially built nodes and returns err.
func (p *parser) fail(err error) error {
	p.operands = nil
	p.ops = nil
	return err
}

// operator is a binding precedence. Higher is more binding.
type operator int8

func (p operator) moreBinding(than operator) bool {
	return p > than
}

// precedence gets the precedence of an operator token. Every - is a unary
// negation by the time the parser sees it, so it binds more tightly than
// multiplication. Operators with no arithmetic meaning have precedence 0.
func precedence(op string) operator {
	switch op {
	case "+":
		return 10
	case "*", "/":
		return 20
	case "-":
		return 30
	default:
		return 0
	}
}
