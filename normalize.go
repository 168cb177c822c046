package calculation

// Preprocess rewrites a token sequence from Scan into the form Parse expects.
//
// Runs of + and - are simplified so that every - that survives is a unary
// negation: "a - b" becomes "a + - b", "- - a" becomes "a", and redundant +
// signs are dropped. Parentheses are then checked; a ) with no matching ( is
// an error, while any ( left open at the end is closed implicitly.
func Preprocess(tokens []string) ([]string, error) {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch tok {
		case "+", "-":
			out = simplify(out, tok)
		default:
			out = append(out, tok)
		}
	}
	depth := 0
	for i, tok := range out {
		switch tok {
		case "(":
			depth++
		case ")":
			depth--
			if depth < 0 {
				return nil, &SyntaxError{Token: tok, Index: i, Msg: "unbalanced parentheses"}
			}
		}
	}
	for ; depth > 0; depth-- {
		out = append(out, ")")
	}
	return out, nil
}

// simplify appends a + or - to out, folding it into the preceding tokens.
//
//	- -            => +
//	<operator> +   => <operator>
//	<start> +      => <start>
//	<operand> -    => <operand> + -
func simplify(out []string, op string) []string {
	if len(out) == 0 {
		if op == "-" {
			out = append(out, op)
		}
		return out
	}
	last := out[len(out)-1]
	switch op {
	case "+":
		if endsOperand(last) {
			out = append(out, "+")
		}
	case "-":
		switch {
		case last == "-":
			out = simplify(out[:len(out)-1], "+")
		case endsOperand(last):
			out = simplify(out, "+")
			out = append(out, "-")
		default:
			out = append(out, "-")
		}
	}
	return out
}

// endsOperand reports whether tok can be the last token of an operand, so
// that a following sign is binary.
func endsOperand(tok string) bool {
	return tok == ")" || !IsOperator(tok)
}
