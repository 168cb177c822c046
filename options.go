package calculation

import (
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Option is an option used when creating a session. Options are applied in
// order, so a later SetVar overrides an earlier one for the same name.
type Option interface {
	sessionOption(*Session)
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt   map[string]float64
	constopt  uint
	symbolopt struct{}
	loggeropt struct{ l *slog.Logger }
	metricopt struct{ m MetricsRecorder }
	traceopt  struct{ t trace.Tracer }
	histopt   struct{ h History }
)

// SetVar sets the value of a variable in the session.
func SetVar(name string, val float64) Option {
	return varopt{name, val}
}

func (o varopt) sessionOption(s *Session) {
	s.vars.Set(o.name, o.val)
}

// SetVars sets the values of any number of variables in the session.
func SetVars(vars map[string]float64) Option {
	return varsopt(vars)
}

func (o varsopt) sessionOption(s *Session) {
	for k, v := range o {
		s.vars.Set(k, v)
	}
}

// Constants sets the variables pi, e, ln2, and ln10, computed to prec bits.
// Without this option those names are ordinary variables, i.e. zero.
func Constants(prec uint) Option {
	return constopt(prec)
}

func (o constopt) sessionOption(s *Session) {
	for k, v := range ConstantValues(uint(o)) {
		s.vars.Set(k, v)
	}
}

// displaySymbols maps the symbols shown on calculator keys to the operators
// the lexer understands.
var displaySymbols = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
)

// Symbols allows the display symbols ×, ÷, and − (U+2212) in expressions, as
// synonyms for *, /, and -.
func Symbols() Option {
	return symbolopt{}
}

func (symbolopt) sessionOption(s *Session) {
	s.symbols = displaySymbols
}

// WithLogger sets the logger that receives calculation results and failures.
// A nil logger disables logging. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return loggeropt{l}
}

func (o loggeropt) sessionOption(s *Session) {
	s.logger = o.l
}

// WithMetrics sets the metrics recorder. The default records nothing.
func WithMetrics(m MetricsRecorder) Option {
	return metricopt{m}
}

func (o metricopt) sessionOption(s *Session) {
	if o.m == nil {
		o.m = NoopMetrics{}
	}
	s.metrics = o.m
}

// WithTracer sets the tracer used to create a span for each calculation. The
// default creates no spans.
func WithTracer(t trace.Tracer) Option {
	return traceopt{t}
}

// Tracing creates spans using the global OpenTelemetry tracer provider.
func Tracing() Option {
	return traceopt{otel.Tracer(instrumentationName)}
}

func (o traceopt) sessionOption(s *Session) {
	if o.t != nil {
		s.tracer = o.t
	}
}

// WithHistory records every calculation in h. The session takes ownership of
// h and closes it in Close.
func WithHistory(h History) Option {
	return histopt{h}
}

func (o histopt) sessionOption(s *Session) {
	s.history = o.h
}
