package cli

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jbdb/sql2json/internal/export"
	"github.com/jbdb/sql2json/internal/files/filesystem"
	"github.com/jbdb/sql2json/internal/files/scanner"
	"github.com/jbdb/sql2json/internal/logging"
	"github.com/jbdb/sql2json/internal/tui"
	"github.com/jbdb/sql2json/pkg/sql2json"
)

// scanFlags holds the flag values of one scan command.
type scanFlags struct {
	output     string
	format     string
	pretty     bool
	recursive  bool
	extensions []string
	encoding   string
	archive    string
	configPath string
	strict     bool
}

// newScanCmd builds the scan command with its own flag storage.
func newScanCmd() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan <path>...",
		Short: "Scan SQL dump files and export their INSERT data",
		Long: `Scan reads every given file, and every dump file in every given directory,
and exports the INSERT data it finds grouped by table.

Directories are listed without descending into subdirectories unless
--recursive is set. Files ending in .gz or .zst are decompressed on the fly.
With --archive the paths name entries inside a zip archive; without paths
the whole archive is scanned.

A scan summary is written to stderr. The exit code reflects the scan
status: 0 for SUCCESS, 13 for FAILURE, and 15 for PARTIAL with --strict.`,
		Example: `  sql2json scan ./dumps -o result.json --pretty
  sql2json scan backup.sql.gz --format yaml
  sql2json scan --archive dumps.zip --recursive
  sql2json scan legacy.sql --encoding windows-1251`,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.archive != "" {
				return nil
			}
			return RequireInputPaths(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "Write the result to this file instead of stdout (\"-\" for stdout)")
	f.StringVarP(&flags.format, "format", "f", "", "Output format: json or yaml (default json)")
	f.BoolVar(&flags.pretty, "pretty", false, "Indent JSON output")
	f.BoolVarP(&flags.recursive, "recursive", "r", false, "Descend into subdirectories")
	f.StringSliceVar(&flags.extensions, "ext", nil, "File suffixes picked up from directories (default .sql,.sql.gz,.sql.zst)")
	f.StringVar(&flags.encoding, "encoding", "", "Input character encoding, e.g. latin1 or windows-1251 (default utf-8)")
	f.StringVar(&flags.archive, "archive", "", "Read the paths from this zip archive")
	f.StringVar(&flags.configPath, "config", "", "Config file (default ./"+sql2json.ConfigFileName+" if present)")
	f.BoolVar(&flags.strict, "strict", false, "Fail when the scan is only partially successful")

	return cmd
}

func init() {
	rootCmd.AddCommand(newScanCmd())
}

func runScan(cmd *cobra.Command, args []string, flags *scanFlags) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewWriterLogger(cmd.ErrOrStderr(), verbose)

	cfg, err := loadProjectConfig(flags.configPath)
	if err != nil {
		return err
	}
	settings, err := resolveScanSettings(cmd, cfg, flags)
	if err != nil {
		return err
	}
	if verbose {
		logSettingsVerbose(logger, settings, flags.archive)
	}

	source, closeSource, err := openSource(flags.archive, settings.Source)
	if err != nil {
		return err
	}
	defer closeSource()

	if len(args) == 0 {
		args = []string{"."}
	}

	s, err := scanner.NewScanner(source, scanner.WithLogger(logger))
	if err != nil {
		return err
	}
	result, err := s.ScanDirectories(args)
	if err != nil {
		return err
	}

	if err := writeResult(cmd.OutOrStdout(), result, settings); err != nil {
		return err
	}

	fmt.Fprint(cmd.ErrOrStderr(), tui.RenderSummary(result, summaryMode(cmd.ErrOrStderr())))

	switch {
	case result.Status == sql2json.StatusFailure:
		return fmt.Errorf("scan %s finished with status %s: %w", result.ID, result.Status, sql2json.ErrScanFailed)
	case result.Status == sql2json.StatusPartial && flags.strict:
		return fmt.Errorf("scan %s finished with status %s: %w", result.ID, result.Status, sql2json.ErrScanIncomplete)
	}
	return nil
}

// openSource returns the line source for the OS filesystem, or for a zip
// archive when archive is set. The returned function releases the source.
func openSource(archive string, opts filesystem.Options) (sql2json.LineSource, func() error, error) {
	if archive == "" {
		source, err := filesystem.NewOSLineSource(opts)
		if err != nil {
			return nil, nil, err
		}
		return source, func() error { return nil }, nil
	}

	rc, err := zip.OpenReader(archive)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive %s: %w", archive, err)
	}
	source, err := filesystem.NewFSLineSource(&rc.Reader, opts)
	if err != nil {
		rc.Close()
		return nil, nil, err
	}
	return source, rc.Close, nil
}

// writeResult exports result to the configured output file, or to stdout.
func writeResult(stdout io.Writer, result sql2json.ScanResult, s scanSettings) error {
	opts := export.Options{Format: s.Format, Pretty: s.Pretty}
	if s.Output == "" || s.Output == "-" {
		return export.Write(stdout, result, opts)
	}

	if dir := filepath.Dir(s.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(s.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := export.Write(f, result, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// summaryMode styles the summary only when it goes to a terminal.
func summaryMode(w io.Writer) tui.Mode {
	if f, ok := w.(*os.File); ok {
		return tui.DetectMode(f)
	}
	return tui.ModePlain
}
