package calculation

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// OperatorRunes contains the runes which the lexer scans as operators. Note
// that IsOperator also accepts "=", which the lexer never produces.
const OperatorRunes = "+-*/()"

// Blanks contains the runes which separate tokens.
const Blanks = " \t\n\r"

type scanState int8

const (
	// scanBlank is the state between tokens.
	scanBlank scanState = iota
	scanIdent
	scanNum
	scanOp
	// scanUnexpected holds a rune that matched no rule. The next rune scanned
	// in this state is an error.
	scanUnexpected
)

var stateNames = [...]string{
	scanBlank:      "",
	scanIdent:      "identifier",
	scanNum:        "number",
	scanOp:         "operator",
	scanUnexpected: "",
}

func isIdentPrefix(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumPrefix(r rune) bool {
	return r == '.' || '0' <= r && r <= '9'
}

// isNumRune reports whether r may continue a number token. This admits
// letters so that e.g. 1e5 and 1a2 each scan as one token; IsNumber decides
// which of those is actually a number.
func isNumRune(r rune) bool {
	return r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isOpRune(r rune) bool {
	return strings.ContainsRune(OperatorRunes, r)
}

func isBlank(r rune) bool {
	return strings.ContainsRune(Blanks, r)
}

// Scan splits src into tokens. Each token is a maximal run of identifier,
// number, or operator runes. Blanks separate tokens and are discarded.
//
// A rune that cannot start or continue any token is kept in the pending token,
// and the error is reported when the rune after it is scanned. Consequently an
// invalid rune at the very end of src produces an invalid token rather than a
// LexError; the parser rejects such tokens.
func Scan(src string) ([]string, error) {
	var (
		toks  []string
		buf   strings.Builder
		state = scanBlank
		prev  = scanBlank
		col   int
	)
	flush := func() {
		if buf.Len() > 0 {
			toks = append(toks, buf.String())
			buf.Reset()
		}
	}
	for _, r := range src {
		col++
		if state == scanUnexpected {
			return nil, &LexError{Text: buf.String(), Kind: stateNames[prev], Col: col}
		}
		switch {
		case state == scanIdent && isIdentRune(r), state == scanNum && isNumRune(r):
			buf.WriteRune(r)
		case isOpRune(r):
			// There are no multi-rune operators, but check anyway so that
			// adding one only means changing IsOperator.
			if state != scanOp || !IsOperator(buf.String()+string(r)) {
				flush()
			}
			buf.WriteRune(r)
			state = scanOp
		case isBlank(r):
			flush()
			state = scanBlank
		case (state == scanBlank || state == scanOp) && isIdentPrefix(r):
			flush()
			buf.WriteRune(r)
			state = scanIdent
		case (state == scanBlank || state == scanOp) && isNumPrefix(r):
			flush()
			buf.WriteRune(r)
			state = scanNum
		default:
			prev = state
			buf.WriteRune(r)
			state = scanUnexpected
		}
	}
	flush()
	return toks, nil
}

// IsIdentifier reports whether tok is a variable name: a letter or underscore
// followed by any number of letters, digits, and underscores.
func IsIdentifier(tok string) bool {
	for i, r := range tok {
		if i == 0 && !isIdentPrefix(r) || !isIdentRune(r) {
			return false
		}
	}
	return tok != ""
}

// IsNumber reports whether tok is a numeric literal. The token must begin with
// a digit or a dot, and the whole token must parse as a float64. Literals too
// large to represent are still numbers; they evaluate to an infinity.
func IsNumber(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	if !isNumPrefix(r) {
		return false
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// IsOperator reports whether tok is an operator or a parenthesis.
func IsOperator(tok string) bool {
	switch tok {
	case "+", "-", "*", "/", "=", "(", ")":
		return true
	default:
		return false
	}
}

// number gets the value of a token for which IsNumber is true.
func number(tok string) float64 {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic("calculation: invalid number: " + tok + " (" + err.Error() + ")")
	}
	return v
}

// LexError indicates a rune that cannot appear in an expression.
type LexError struct {
	// Text is the token the lexer was scanning, including the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning when the invalid rune
	// was encountered: "identifier", "number", "operator", or the empty
	// string if the rune began a new token.
	Kind string
	// Col is the number of runes scanned up to and including the rune that
	// triggered the error. Because errors are reported one rune late, this is
	// one past the invalid rune.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "unexpected character at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "unexpected character in " + err.Kind + " token at " + pos + ": " + strconv.Quote(err.Text)
}
