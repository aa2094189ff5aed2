// Package tracing wraps OpenTelemetry so supervisor code can open spans
// around dispatch and reload without importing the SDK directly. Spans are
// no-ops until Init or InitWithExporter installs a provider.
package tracing
