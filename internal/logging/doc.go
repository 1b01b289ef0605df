// Package logging provides concrete implementations of the sql2json.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed lines to stderr, or to any io.Writer
//   - NullLogger: Discards all messages
//   - RecordingLogger: Keeps messages in memory (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
