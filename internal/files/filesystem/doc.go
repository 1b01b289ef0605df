// Package filesystem provides line source implementations for the dump scanner.
//
// A line source resolves input paths into dump files and streams their
// lines lazily, closing the underlying file once iteration ends.
//
// Implementations:
//   - OSLineSource: Production implementation using the OS filesystem
//   - FSLineSource: Any fs.FS, such as a zip archive or embed.FS
//   - MemoryFileSystem: In-memory implementation for testing
//
// All implementations decompress .gz and .zst files transparently and
// honour the same Options for directory listing.
package filesystem
