// Package logging provides slog attribute helpers shared across the
// application so that log output stays consistently keyed.
package logging
