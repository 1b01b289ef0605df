// Package statement rebuilds logical SQL statements from physical dump
// lines and extracts insert data from them.
//
// Reassemble groups lines into chunks, one per statement, by tracking
// parentheses, quoted literals and comments. A Parser classifies each
// chunk as Skip, Malformed or Parsed:
//
//	p := statement.NewParser(sql2json.MaxErrorPreviewLength)
//	for chunk, err := range statement.Reassemble(lines) {
//	    if err != nil {
//	        return err
//	    }
//	    switch out := p.Parse(chunk).(type) {
//	    case statement.Parsed:
//	        // out.Statement, out.RowErrors
//	    case statement.Malformed:
//	        // out.Reason
//	    case statement.Skip:
//	    }
//	}
package statement
