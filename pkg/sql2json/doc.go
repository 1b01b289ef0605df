// Package sql2json defines the public data model and contracts of the SQL dump scanner.
//
// A scan turns a set of dump files into one InsertStatement per table:
//
//	source, err := filesystem.NewOSLineSource(filesystem.Options{})
//	if err != nil {
//	    return err
//	}
//	s, err := scanner.NewScanner(source)
//	if err != nil {
//	    return err
//	}
//	result, err := s.ScanDirectories([]string{"./dumps"})
//
// Only precondition violations are returned as errors. Everything that goes
// wrong with the data itself is recorded in ScanResult.Errors and reflected
// in ScanResult.Status.
package sql2json
