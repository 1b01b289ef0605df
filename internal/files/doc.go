// Package files provides file-related functionality organized into sub-packages.
//
//   - filesystem: sql2json.LineSource implementations (OS, fs.FS and in-memory)
//     with decompression and charset decoding
//   - scanner: the dump scanner driving reassembly, parsing and aggregation
//
// # Usage
//
//	import (
//	    "github.com/jbdb/sql2json/internal/files/filesystem"
//	    "github.com/jbdb/sql2json/internal/files/scanner"
//	)
//
//	source, err := filesystem.NewOSLineSource(filesystem.Options{Recursive: true})
//	if err != nil {
//	    return err
//	}
//	s, err := scanner.NewScanner(source)
//	if err != nil {
//	    return err
//	}
//	result, err := s.ScanDirectories([]string{"./dumps"})
package files
