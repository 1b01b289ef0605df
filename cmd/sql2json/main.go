package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/jbdb/sql2json/internal/cli"
	"github.com/jbdb/sql2json/pkg/sql2json"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(sql2json.ExitPanic)
		}
	}()

	if os.Getenv("SQL2JSON_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(sql2json.ExitCodeForError(err))
	}
}
