package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	imgcat "github.com/martinlindhe/imgcat/lib"

	"dungeon-generator/internal/archive"
	"dungeon-generator/internal/config"
	"dungeon-generator/internal/dungeon"
	"dungeon-generator/internal/export"
	"dungeon-generator/internal/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the parsed command line flags.
type options struct {
	configPath  string
	seed        int64
	out         string
	format      string
	view        int
	archivePath string
	color       bool
	preview     bool
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("dungeongen", flag.ContinueOnError)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "dungeon.yaml", "Path to the YAML config file")
	fs.Int64Var(&opts.seed, "seed", 42, "Base seed for generation")
	fs.StringVar(&opts.out, "out", "", "Output file (default: stdout; dungeon.png for png)")
	fs.StringVar(&opts.format, "format", "ascii", "Output format: yaml, geojson, png or ascii")
	fs.IntVar(&opts.view, "view", -1, "PNG view 0-4 (default: render.view from config)")
	fs.StringVar(&opts.archivePath, "archive", "", "SQLite file to archive the layout in")
	fs.BoolVar(&opts.color, "color", false, "Colorize ascii output")
	fs.BoolVar(&opts.preview, "imgcat", false, "Print png output to the terminal")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch opts.format {
	case "yaml", "geojson", "png", "ascii":
	default:
		return nil, fmt.Errorf("unknown format %q, expected yaml, geojson, png or ascii", opts.format)
	}
	if opts.format == "png" && opts.out == "" {
		opts.out = "dungeon.png"
	}

	return opts, nil
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.view >= 0 {
		cfg.Render.View = opts.view
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.Logging.ApplyEnv()
	if err := logger.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	layout, err := dungeon.NewGenerator(cfg.Generation, opts.seed).Generate()
	if err != nil {
		return err
	}

	if err := writeLayout(layout, cfg, opts, stdout); err != nil {
		return err
	}

	if opts.archivePath != "" {
		if err := archiveLayout(opts.archivePath, layout); err != nil {
			return err
		}
	}
	return nil
}

func writeLayout(layout *dungeon.Layout, cfg *config.Config, opts *options, stdout io.Writer) error {
	if opts.format == "png" {
		if dir := filepath.Dir(opts.out); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := export.SavePNG(layout, cfg.Render.TileSize, export.View(cfg.Render.View), opts.out); err != nil {
			return err
		}
		logger.Info("layout written", "format", opts.format, "path", opts.out)
		if opts.preview {
			imgcat.CatFile(opts.out, stdout)
		}
		return nil
	}

	w := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		defer f.Close()
		w = f
	}

	var err error
	switch opts.format {
	case "yaml":
		err = export.EncodeLayoutYAML(w, layout)
	case "geojson":
		err = export.EncodeGeoJSON(w, layout)
	default:
		err = export.WriteASCII(w, layout, opts.color)
	}
	if err != nil {
		return err
	}

	if opts.out != "" {
		logger.Info("layout written", "format", opts.format, "path", opts.out)
	}
	return nil
}

func archiveLayout(path string, layout *dungeon.Layout) error {
	a, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()

	record, err := a.Save(context.Background(), layout)
	if err != nil {
		return err
	}
	logger.Info("layout archived", "seed", record.Seed, "name", record.Name, "path", path)
	return nil
}
