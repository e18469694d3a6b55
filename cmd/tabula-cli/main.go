package main

import (
	"errors"
	"flag"
	"fmt"
	stdio "io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/config"
	"github.com/paveg/tabula/internal/dataframe"
	"github.com/paveg/tabula/internal/io"
	"github.com/paveg/tabula/internal/monitoring"
	"github.com/paveg/tabula/internal/version"
)

const defaultPreviewRows = 10

func customUsage(w stdio.Writer) func() {
	return func() {
		fmt.Fprintf(w, "tabula CLI (version %s)\n\n", version.Version)
		fmt.Fprintf(w, "Usage: tabula-cli [options]\n\n")
		fmt.Fprintf(w, "Options:\n")
		fmt.Fprintf(w, "  --inspect FILE\n\t\tRead a CSV, TSV, JSON, JSON Lines or Parquet file and show its columns\n")
		fmt.Fprintf(w, "  --convert COL:KIND\n\t\tConvert a column to a kind (repeatable)\n")
		fmt.Fprintf(w, "  --out FILE\n\t\tWrite the result, format chosen by extension\n")
		fmt.Fprintf(w, "  --rows N\n\t\tNumber of preview rows (default: %d)\n", defaultPreviewRows)
		fmt.Fprintf(w, "  --policy text|infer|error\n\t\tHow to resolve columns with mixed kinds\n")
		fmt.Fprintf(w, "  --config FILE\n\t\tLoad configuration from a JSON or YAML file (default: TABULA_* environment)\n")
		fmt.Fprintf(w, "  --demo\n\t\tWalk through the coercion rules\n")
		fmt.Fprintf(w, "  --stats\n\t\tLog the duration and row count of each step\n")
		fmt.Fprintf(w, "  --verbose\n\t\tEnable debug logging\n")
		fmt.Fprintf(w, "  -v, --version\n\t\tPrint version information and exit\n")
		fmt.Fprintf(w, "  -h, --help\n\t\tShow this help message and exit\n")
	}
}

// conversions collects repeated --convert flags
type conversions map[string]cell.Kind

func (c conversions) String() string {
	parts := make([]string, 0, len(c))
	for col, kind := range c {
		parts = append(parts, col+":"+kind.String())
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}

// Set parses COL:KIND. The last colon separates the kind, so column names
// may contain colons.
func (c conversions) Set(value string) error {
	idx := strings.LastIndex(value, ":")
	if idx <= 0 {
		return fmt.Errorf("expected COL:KIND, got %q", value)
	}
	kind, err := cell.ParseKind(value[idx+1:])
	if err != nil {
		return err
	}
	if !kind.IsConcrete() {
		return fmt.Errorf("cannot convert a column to %s", kind)
	}
	c[value[:idx]] = kind
	return nil
}

// options holds the parsed command line
type options struct {
	version  bool
	demo     bool
	verbose  bool
	stats    bool
	inspect  string
	out      string
	cfgPath  string
	policy   string
	rows     int
	converts conversions
}

func main() {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, tty))
}

// run executes the CLI and returns the process exit code. tty selects a
// padded table over CSV for the preview.
func run(args []string, stdout, stderr stdio.Writer, tty bool) int {
	fs := flag.NewFlagSet("tabula-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = customUsage(stderr)

	opts := options{converts: conversions{}}
	fs.BoolVar(&opts.version, "v", false, "Print version and exit")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit") // alias
	fs.BoolVar(&opts.demo, "demo", false, "Walk through the coercion rules")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&opts.stats, "stats", false, "Log step metrics")
	fs.StringVar(&opts.inspect, "inspect", "", "File to read")
	fs.StringVar(&opts.out, "out", "", "File to write")
	fs.StringVar(&opts.cfgPath, "config", "", "Configuration file")
	fs.StringVar(&opts.policy, "policy", "", "Mixed column policy")
	fs.IntVar(&opts.rows, "rows", defaultPreviewRows, "Number of preview rows")
	fs.Var(opts.converts, "convert", "Convert a column, COL:KIND")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Handle version flag
	if opts.version {
		fmt.Fprint(stdout, version.Info().String())
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "tabula-cli: %v\n", err)
		return 1
	}

	level := slog.LevelInfo
	if opts.verbose || cfg.VerboseLogging {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch {
	case opts.demo:
		runDemo(stdout)
		return 0
	case opts.inspect != "":
		collector := monitoring.NewMetricsCollector(opts.stats)
		err := inspect(opts, cfg, logger, collector, stdout, tty)
		if opts.stats {
			collector.Log(logger)
		}
		if err != nil {
			logger.Error("inspect failed", "file", opts.inspect, "error", err)
			return 1
		}
		return 0
	default:
		// If no flags are provided, print usage and exit.
		fs.Usage()
		return 1
	}
}

// loadConfig reads the configuration file, or the environment when none is
// given, and applies command line overrides.
func loadConfig(opts options) (config.Config, error) {
	cfg := config.LoadFromEnv()
	if opts.cfgPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(opts.cfgPath); err != nil {
			return config.Config{}, err
		}
	}
	if opts.policy != "" {
		cfg.MixedPolicy = config.MixedPolicy(opts.policy)
	}
	if opts.rows < 0 {
		return config.Config{}, fmt.Errorf("--rows must be non-negative, got %d", opts.rows)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func inspect(opts options, cfg config.Config, logger *slog.Logger, collector *monitoring.MetricsCollector, stdout stdio.Writer, tty bool) error {
	var df *dataframe.DataFrame
	err := collector.RecordOperation("read", func() (int, error) {
		var err error
		if df, err = readFile(opts.inspect, cfg, opts.converts, logger); err != nil {
			return 0, err
		}
		return df.Len(), nil
	})
	if err != nil {
		return err
	}
	logger.Debug("read file", "file", opts.inspect, "rows", df.Len(), "columns", df.Width())

	if opts.out != "" {
		err := collector.RecordOperation("write", func() (int, error) {
			return df.Len(), writeFile(opts.out, df, cfg)
		})
		if err != nil {
			return err
		}
		logger.Info("wrote file", "file", opts.out, "rows", df.Len())
	}

	preview := df.Slice(0, opts.rows)
	return collector.RecordOperation("preview", func() (int, error) {
		if !tty {
			return preview.Len(), io.NewCSVWriter(stdout, io.CSVOptionsFromConfig(cfg)).Write(preview)
		}
		return preview.Len(), printTable(stdout, df, preview, cfg.NAToken)
	})
}

// format is a file format picked from the file extension
type format int

const (
	formatCSV format = iota
	formatTSV
	formatJSON
	formatJSONLines
	formatParquet
)

func formatOf(path string) (format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return formatCSV, nil
	case ".tsv", ".tab":
		return formatTSV, nil
	case ".json":
		return formatJSON, nil
	case ".jsonl", ".ndjson":
		return formatJSONLines, nil
	case ".parquet", ".pq":
		return formatParquet, nil
	default:
		return 0, fmt.Errorf("unsupported file format %q", ext)
	}
}

func readFile(path string, cfg config.Config, kinds conversions, logger *slog.Logger) (*dataframe.DataFrame, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reader io.DataReader
	switch f {
	case formatCSV, formatTSV:
		options := io.CSVOptionsFromConfig(cfg)
		if f == formatTSV {
			options.Delimiter = '\t'
		}
		options.Kinds = kinds
		options.Logger = logger
		reader = io.NewCSVReader(file, options)
	case formatJSON, formatJSONLines:
		options := io.JSONOptionsFromConfig(cfg)
		if f == formatJSONLines {
			options.Format = io.JSONLines
		}
		options.Kinds = kinds
		options.Logger = logger
		reader = io.NewJSONReader(file, options)
	case formatParquet:
		reader = io.NewParquetReader(file, io.ParquetOptionsFromConfig(cfg), nil)
	}

	df, err := reader.Read()
	if err != nil {
		return nil, err
	}

	// Parquet keeps its kinds, so conversions are applied afterwards
	if f == formatParquet {
		for col, kind := range kinds {
			if err := df.ConvertColumn(col, kind); err != nil {
				return nil, err
			}
		}
	}
	return df, nil
}

func writeFile(path string, df *dataframe.DataFrame, cfg config.Config) (err error) {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			err = closeErr
		}
	}()

	var writer io.DataWriter
	switch f {
	case formatCSV, formatTSV:
		options := io.CSVOptionsFromConfig(cfg)
		if f == formatTSV {
			options.Delimiter = '\t'
		}
		writer = io.NewCSVWriter(file, options)
	case formatJSON, formatJSONLines:
		options := io.JSONOptionsFromConfig(cfg)
		if f == formatJSONLines {
			options.Format = io.JSONLines
		}
		writer = io.NewJSONWriter(file, options)
	case formatParquet:
		writer = io.NewParquetWriter(file, io.ParquetOptionsFromConfig(cfg), nil)
	}
	return writer.Write(df)
}

// printTable writes the schema of df followed by the preview rows.
func printTable(w stdio.Writer, df, preview *dataframe.DataFrame, naToken string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%d rows x %d columns\n\n", df.Len(), df.Width())
	fmt.Fprintln(tw, "COLUMN\tKIND\tMISSING\tUNIQUE\t")
	for _, name := range df.Columns() {
		s, _ := df.Column(name)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t\n", name, s.Kind(), s.NullCount(), len(s.Unique()))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, strings.Join(df.Columns(), "\t")+"\t")
	for i := range preview.Len() {
		row, err := preview.Row(i)
		if err != nil {
			return err
		}
		fields := make([]string, len(row))
		for j, c := range row {
			fields[j] = c.String()
			if c.IsNA() {
				fields[j] = naToken
			}
		}
		fmt.Fprintln(tw, strings.Join(fields, "\t")+"\t")
	}
	if preview.Len() < df.Len() {
		fmt.Fprintf(tw, "... %d more rows\n", df.Len()-preview.Len())
	}

	return tw.Flush()
}
