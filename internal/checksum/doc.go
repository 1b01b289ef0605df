// Package checksum provides content hashing for dump files as they are read.
//
// Files are hashed line by line while the scanner streams them, so the
// checksum of a file never requires a second read. Each line is hashed
// followed by a single "\n", which makes the checksum independent of the
// original line endings (LF or CRLF) and of a trailing newline at end of
// file.
//
// # Example Usage
//
//	h := checksum.New()
//	for line, err := range checksum.Tee(lines, h) {
//		...
//	}
//	sum := h.Sum()
//
// # Thread Safety
//
// A LineHasher must not be used by more than one goroutine at a time.
package checksum
