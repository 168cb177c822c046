package calculation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ErrorResult is the result of Calculate when an expression cannot be
// evaluated.
const ErrorResult = "Error"

// instrumentationName names the tracer and meter used by sessions.
const instrumentationName = "github.com/zephyrtronium/calculation"

// Session evaluates expressions against a variable table that persists
// between calls. It is not safe to use a Session concurrently.
type Session struct {
	id      string
	vars    *VariableTable
	result  string
	seq     int
	symbols *strings.Replacer
	logger  *slog.Logger
	metrics MetricsRecorder
	tracer  trace.Tracer
	history History
}

// NewSession creates a session with an empty variable table, then applies
// opts in order.
func NewSession(opts ...Option) *Session {
	s := Session{
		id:      uuid.NewString(),
		vars:    NewVariableTable(),
		result:  "0",
		logger:  slog.Default(),
		metrics: NoopMetrics{},
		tracer:  noop.NewTracerProvider().Tracer(instrumentationName),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.sessionOption(&s)
	}
	return &s
}

// ID returns the session's unique identifier, which appears in its logs,
// spans, and history entries.
func (s *Session) ID() string {
	return s.id
}

// Vars returns the session's variable table. Changes to the table affect
// subsequent calculations.
func (s *Session) Vars() *VariableTable {
	return s.vars
}

// Result returns the result of the most recent call to Calculate, or "0" if
// there has been none.
func (s *Session) Result() string {
	return s.result
}

// Calculate evaluates an expression and formats the result. If the expression
// cannot be evaluated, the error is logged and the result is "Error".
func (s *Session) Calculate(expr string) string {
	return s.CalculateContext(context.Background(), expr)
}

// CalculateContext is like Calculate, but creates its span as a child of any
// span in ctx. The context is not used for cancellation.
func (s *Session) CalculateContext(ctx context.Context, expr string) string {
	ctx, span := s.tracer.Start(ctx, "calculation.calculate",
		trace.WithAttributes(
			attribute.String("session.id", s.id),
			attribute.Int("expression.length", len(expr)),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	start := time.Now()
	v, err := s.Evaluate(expr)
	elapsed := time.Since(start)
	if err != nil {
		s.result = ErrorResult
		logFailure(s.logger, s.id, expr, err, elapsed)
	} else {
		s.result = Format(v)
		logCalculation(s.logger, s.id, expr, s.result, elapsed)
	}
	s.metrics.RecordCalculation(ctx, elapsed, err)
	endSpan(span, s.result, err)
	s.record(expr)
	return s.result
}

// Evaluate evaluates an expression without formatting it. The error, if any,
// is a *LexError, *SyntaxError, *DivisionByZeroError, or *OperatorError.
func (s *Session) Evaluate(expr string) (r float64, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = 0, fmt.Errorf("calculation: internal error: %v", p)
		}
	}()
	if s.symbols != nil {
		expr = s.symbols.Replace(expr)
	}
	e, err := Compile(expr)
	if err != nil {
		return 0, err
	}
	return e.Calculate(s.vars)
}

// record appends the latest calculation to the session history, if there is
// one. Failures are logged and otherwise ignored.
func (s *Session) record(expr string) {
	if s.history == nil {
		return
	}
	s.seq++
	ent := Entry{
		SessionID:  s.id,
		Sequence:   s.seq,
		Expression: expr,
		Result:     s.result,
		Time:       time.Now().UTC(),
	}
	if err := s.history.Record(ent); err != nil {
		logHistoryError(s.logger, s.id, err)
	}
}

// History returns the calculations recorded in this session's history, or
// nil if the session has no history.
func (s *Session) History() ([]Entry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(s.id)
}

// Close releases the session's history store, if any.
func (s *Session) Close() error {
	if s.history == nil {
		return nil
	}
	return s.history.Close()
}

// Format formats v with six digits after the decimal point, then removes
// trailing zeros and any trailing decimal point. Negative zero formats as "0".
func Format(v float64) string {
	r := strconv.FormatFloat(v, 'f', 6, 64)
	if strings.Contains(r, ".") {
		r = strings.TrimRight(r, "0")
		r = strings.TrimSuffix(r, ".")
	}
	switch r {
	case "", "-0":
		return "0"
	}
	return r
}
