package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"findroi/pkg/config"
	"findroi/pkg/report"
	"findroi/pkg/roi"
	"findroi/pkg/volume"
)

const usageText = `Usage: findroi [flags] <volume> [machine]

Expect one arg with the volume to scan: a directory of numbered slices,
a .png/.jpg image, a .yaml raw volume header or, in gocv builds, a .tif stack.
Expect optional anything second arg for machine reports
("minX minY minZ sizeX sizeY sizeZ" on one line).
Flags go before <volume>; everything after it is taken as an argument.
`

// errUsage marks a bad invocation: wrong argument count or an unknown flag.
var errUsage = errors.New("usage")

type options struct {
	configPath     string
	margin         uint
	threshold      uint16
	workers        int
	symmetricClamp bool
	stats          bool
	verbose        bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "findroi: ", 0)

	// cobra reads os.Args when handed a nil slice
	if args == nil {
		args = []string{}
	}

	cmd := newRootCmd(stdout, logger)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// -h/--help before the volume is a bad invocation, not a report
	helpRequested := false
	cmd.SetHelpFunc(func(*cobra.Command, []string) { helpRequested = true })

	err := cmd.Execute()
	if err == nil && helpRequested {
		err = errUsage
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprint(stdout, usageText)
		fmt.Fprintf(stdout, "\nFlags:\n%s", cmd.Flags().FlagUsages())
		return 1
	default:
		logger.Printf("%v", err)
		return 1
	}
}

func newRootCmd(stdout io.Writer, logger *log.Logger) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "findroi [flags] <volume> [machine]",
		Short:         "Report the bounding box of the non-background voxels of a 16-bit volume",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return fmt.Errorf("%w: expected 1 or 2 arguments, got %d", errUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			mode := report.Human
			if len(args) == 2 {
				mode = report.Machine
			}
			return findROI(stdout, logger, args[0], cfg, mode)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	f := cmd.Flags()
	// Flags must come first; anything after the volume path, "-m" or
	// "--help" included, is a positional argument.
	f.SetInterspersed(false)
	f.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	f.UintVar(&opts.margin, "margin", roi.DefaultMargin, "Padding in voxels added around the discovered ROI")
	f.Uint16Var(&opts.threshold, "threshold", roi.BackgroundThreshold, "Background level; voxels above it are foreground")
	f.IntVar(&opts.workers, "workers", 0, "Goroutines scanning the volume (default: all CPUs)")
	f.BoolVar(&opts.symmetricClamp, "symmetric-clamp", false, "Clamp every axis by its own extent")
	f.BoolVar(&opts.stats, "stats", false, "Add foreground intensity statistics to the human report")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	return cmd
}

// resolveConfig loads the config file, if any, and applies the flags the
// user actually set on top of it.
func resolveConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(opts.configPath); err != nil {
			return nil, err
		}
	}

	f := cmd.Flags()
	if f.Changed("margin") {
		cfg.Processing.Margin = opts.margin
	}
	if f.Changed("threshold") {
		cfg.Processing.Threshold = opts.threshold
	}
	if f.Changed("workers") {
		cfg.Processing.Workers = opts.workers
	}
	if f.Changed("symmetric-clamp") {
		cfg.Processing.SymmetricClamp = opts.symmetricClamp
	}
	if f.Changed("stats") {
		cfg.Output.Stats = opts.stats
	}
	if f.Changed("verbose") {
		cfg.Output.Verbose = opts.verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findROI loads the volume, scans it, expands the box and prints exactly one
// report to w.
func findROI(w io.Writer, logger *log.Logger, path string, cfg *config.Config, mode report.Mode) error {
	verbose := cfg.Output.Verbose

	order, err := volume.ParseByteOrder(cfg.Volume.ByteOrder)
	if err != nil {
		return err
	}

	startTime := time.Now()
	vol, err := volume.Load(path, volume.Options{ByteOrder: order, Spacing: cfg.VoxelSize()})
	if err != nil {
		return fmt.Errorf("failed to load volume: %w", err)
	}
	if verbose {
		logger.Printf("Loaded volume %dx%dx%d from %s in %v",
			vol.SizeX, vol.SizeY, vol.SizeZ, path, time.Since(startTime).Round(time.Millisecond))
	}

	startTime = time.Now()
	raw := roi.ScanParallel(vol, cfg.Processing.Threshold, cfg.Processing.Workers)
	if verbose {
		logger.Printf("Scanned %d voxels with %d workers in %v",
			vol.VoxelCount(), roi.Workers(vol, cfg.Processing.Workers), time.Since(startTime).Round(time.Millisecond))
	}
	if !raw.Valid() {
		logger.Printf("Warning: no voxel above %d in %s, the ROI is degenerate", cfg.Processing.Threshold, path)
	}

	final := roi.Expand(raw, vol.Size(), cfg.Processing.Margin, cfg.ClampMode())
	if verbose {
		logger.Printf("Expanded by %d with %v clamp: %v -> %v", cfg.Processing.Margin, cfg.ClampMode(), final.Min, final.Max)
	}

	res := report.Result{
		Raw:        raw,
		Final:      final,
		Margin:     cfg.Processing.Margin,
		VolumeSize: vol.Size(),
		Spacing:    vol.Spacing,
	}
	if cfg.Output.Stats && mode == report.Human {
		stats := roi.ForegroundStats(vol, final, cfg.Processing.Threshold)
		res.Stats = &stats
	}

	return report.Write(w, res, mode)
}

