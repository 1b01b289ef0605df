// Package export renders a sql2json.ScanResult as JSON or YAML.
//
// Both formats are produced from the same ordered document, so tables keep
// their encounter order and row objects keep their column order. Values are
// typed from their SQL literal: quoted literals become strings, bare NULL
// becomes null, TRUE and FALSE become booleans and bare numeric literals
// become numbers, written verbatim. Any other bare expression is exported
// as a string.
package export
