package calculation

// Calculate returns the constant's value.
func (c Constant) Calculate(vars *VariableTable) (float64, error) {
	return c.Value, nil
}

// Calculate returns the variable's value in vars, or zero if it is not set.
func (v Variable) Calculate(vars *VariableTable) (float64, error) {
	return vars.Get(v.Name), nil
}

// Calculate evaluates the left then the right operand and applies the
// operator.
func (n *Binary) Calculate(vars *VariableTable) (float64, error) {
	l, err := n.Left.Calculate(vars)
	if err != nil {
		return 0, err
	}
	r, err := n.Right.Calculate(vars)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, &DivisionByZeroError{Dividend: l}
		}
		return l / r, nil
	default:
		return 0, &OperatorError{Operator: n.Op}
	}
}

// Eval is a shortcut to compile and evaluate an expression with a fresh
// variable table. Use a Session to keep variables between calls.
func Eval(src string, vars map[string]float64) (float64, error) {
	e, err := Compile(src)
	if err != nil {
		return 0, err
	}
	t := NewVariableTable()
	for k, v := range vars {
		t.Set(k, v)
	}
	return e.Calculate(t)
}
