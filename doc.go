// Package calculation implements a small calculator for arithmetic expressions
// over float64.
//
// Expressions use the operators + - * / and parentheses, numbers, and
// variable names. Evaluation runs in four stages: Scan splits the text into
// tokens, Preprocess rewrites runs of signs so that every - is a unary
// negation, Parse builds an expression tree, and the tree is calculated
// against a VariableTable. A variable that has never been set is zero.
//
// Unary negation binds more tightly than multiplication, and subtraction is
// rewritten as addition of a negation, so "2 * 3 - 1" is 2*3 + (0-1).
//
// A Session ties the stages together behind Calculate, which always returns
// a string: the formatted result, or "Error" if any stage failed.
package calculation
