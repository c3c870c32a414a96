// Command iotdash is a terminal analytics dashboard over synthetic IoT
// sensor readings.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"

	"github.com/luki/iotdash/internal/config"
	"github.com/luki/iotdash/internal/dashboard"
	"github.com/luki/iotdash/internal/export"
	"github.com/luki/iotdash/internal/generator"
	"github.com/luki/iotdash/internal/logging"
	"github.com/luki/iotdash/internal/view"
)

var version = "dev"

// commands lists the subcommands and what they do.
var commands = []struct {
	name string
	desc string
}{
	{"run", "Interactive dashboard (default)"},
	{"summary", "Print summary cards and analytics to stdout"},
	{"export", "Write the filtered readings to csv, xlsx or pdf"},
	{"version", "Print the version"},
}

func main() {
	args := os.Args[1:]
	cmd := "run"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "run":
		err = runDashboard(args)
	case "summary":
		err = runSummary(args)
	case "export":
		err = runExport(args)
	case "version":
		fmt.Println("iotdash", version)
	case "help", "-h", "--help":
		printHelp(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printHelp(os.Stderr)
		os.Exit(1)
	}

	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: iotdash [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s  %s\n", c.name, c.desc)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'iotdash <command> -h' for command flags.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  iotdash -count 500")
	fmt.Fprintln(w, "  iotdash summary")
	fmt.Fprintln(w, "  iotdash export -format xlsx -type Temperature -o temps.xlsx")
}

// common binds the flags shared by every command and loads the config
// once they are parsed.
type common struct {
	configPath string
	count      int
}

func (c *common) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	fs.IntVar(&c.count, "count", 0, "number of readings to generate (overrides config)")
}

func (c *common) load() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.count > 0 {
		cfg.Count = c.count
	}
	return cfg, nil
}

func runDashboard(args []string) error {
	var c common
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	c.bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}
	level, _ := cfg.Level()

	log, closer, err := logging.OpenFile(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info("starting dashboard",
		slog.Int("count", cfg.Count),
		slog.Int("page_size", cfg.PageSize),
		slog.String("export_dir", cfg.ExportDir),
	)

	err = dashboard.Run(dashboard.Options{
		Count:     cfg.Count,
		PageSize:  cfg.PageSize,
		ExportDir: cfg.ExportDir,
		Logger:    log,
	})
	if err != nil {
		log.Error("dashboard exited", slog.Any("err", err))
		return err
	}
	log.Info("dashboard closed")
	return nil
}

func runSummary(args []string) error {
	var c common
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	c.bind(fs)
	width := fs.Int("width", 0, "render width (default: terminal width)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}

	w := *width
	if w <= 0 {
		if tw, _, err := term.GetSize(os.Stdout.Fd()); err == nil {
			w = tw
		} else {
			w = 100
		}
	}

	ds := dashboard.NewDataset(generator.Generate(cfg.Count), time.Now())
	fmt.Println(dashboard.Report(ds, w))
	return nil
}

func runExport(args []string) error {
	var c common
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	c.bind(fs)
	format := fs.String("format", "csv", "output format: csv, xlsx or pdf")
	out := fs.String("o", "", "output file (default: timestamped name in export_dir)")
	typ := fs.String("type", "All", "sensor type filter")
	loc := fs.String("location", "All", "location filter")
	search := fs.String("search", "", "free-text search over device id, type and location")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	log := logging.New(os.Stderr, level)

	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	tf, ok := view.ParseTypeFilter(*typ)
	if !ok {
		return fmt.Errorf("unknown sensor type %q", *typ)
	}
	lf, ok := view.ParseLocationFilter(*loc)
	if !ok {
		return fmt.Errorf("unknown location %q", *loc)
	}

	now := time.Now()
	ds := dashboard.NewDataset(generator.Generate(cfg.Count), now)
	q := view.Query{Search: *search, Type: tf, Location: lf}
	rows := view.Filter(ds.Readings, q)
	snap := ds.Snapshot(q, rows)

	path := *out
	if path == "" {
		path, err = export.Write(cfg.ExportDir, snap, f, now)
	} else {
		err = export.WriteFile(path, snap, f)
	}
	if err != nil {
		return err
	}

	log.Info("export written",
		slog.String("path", path),
		slog.String("format", f.String()),
		slog.Int("rows", len(rows)),
		slog.String("filter", dashboard.DescribeQuery(q)),
	)
	return nil
}
