package calculation

import (
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// errorKind gives a short name for the stage that produced err, for use as a
// log field and metric attribute.
func errorKind(err error) string {
	var (
		lex *LexError
		syn *SyntaxError
		div *DivisionByZeroError
		op  *OperatorError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &lex):
		return "lex"
	case errors.As(err, &syn):
		return "syntax"
	case errors.As(err, &div):
		return "division_by_zero"
	case errors.As(err, &op):
		return "operator"
	default:
		return "internal"
	}
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// logCalculation logs a successful calculation.
func logCalculation(logger *slog.Logger, sessionID, expr, result string, d time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("calculation completed",
		slog.String("session_id", sessionID),
		slog.String("expression", expr),
		slog.String("result", result),
		slog.Float64("duration_ms", millis(d)),
	)
}

// logFailure logs an expression that could not be evaluated.
func logFailure(logger *slog.Logger, sessionID, expr string, err error, d time.Duration) {
	if logger == nil {
		return
	}
	logger.Warn("calculation failed",
		slog.String("session_id", sessionID),
		slog.String("expression", expr),
		slog.String("kind", errorKind(err)),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", millis(d)),
	)
}

// logHistoryError logs a failure to record history (non-fatal).
func logHistoryError(logger *slog.Logger, sessionID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("history record failed",
		slog.String("session_id", sessionID),
		slog.String("error", err.Error()),
	)
}

// endSpan completes a calculation span, recording the result or error.
func endSpan(span trace.Span, result string, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.kind", errorKind(err)))
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("result", result))
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
