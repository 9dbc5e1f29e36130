// Package instrumentation provides OpenTelemetry metrics for the shell.
//
// The shell is a short-lived foreground process, so there is no scrape
// endpoint; when enabled (the --debug-metrics flag), per-command counters
// and duration histograms are collected by the OTel SDK and dumped to
// stdout on shutdown. When disabled the recorder is a no-op.
package instrumentation
