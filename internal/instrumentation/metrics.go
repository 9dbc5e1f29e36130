package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrCommand = "command"
	attrResult  = "result"
)

// Result values for the command result attribute.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// CommandMetrics records per-command counters and durations. The zero
// value is a no-op recorder.
type CommandMetrics struct {
	commandsTotal   metric.Int64Counter
	commandDuration metric.Float64Histogram
}

// NewCommandMetrics creates a CommandMetrics instance with all metrics
// initialized on the given meter.
func NewCommandMetrics(meter metric.Meter) (*CommandMetrics, error) {
	m := &CommandMetrics{}

	var err error
	m.commandsTotal, err = meter.Int64Counter(
		"shell_commands_total",
		metric.WithDescription("Total number of shell commands dispatched"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shell_commands_total counter: %w", err)
	}

	m.commandDuration, err = meter.Float64Histogram(
		"shell_command_duration_seconds",
		metric.WithDescription("Shell command duration in seconds, network calls included"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shell_command_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordCommand records one dispatched command with its outcome and duration.
func (m *CommandMetrics) RecordCommand(ctx context.Context, command, result string, duration time.Duration) {
	if m == nil || m.commandsTotal == nil {
		return // no-op recorder
	}

	attrs := metric.WithAttributes(
		attribute.String(attrCommand, command),
		attribute.String(attrResult, result),
	)
	m.commandsTotal.Add(ctx, 1, attrs)
	m.commandDuration.Record(ctx, duration.Seconds(), attrs)
}
