package main

import (
	"fmt"
	"os"

	"github.com/lambert-ike-1232/pidlab/config"
	"github.com/lambert-ike-1232/pidlab/tf"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose  bool
	plantNum []float64
	plantDen []float64
	outDir   string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pidlab",
	Short: "pidlab - a PID control teaching lab",
	Long: `pidlab builds transfer functions, closes PID loops around them and
simulates how the loop tracks a reference.

The default plant is 1/(s^2 + s), an integrator behind a first order
lag. Run without arguments for the interactive tuner; the subcommands
render charts, sweep one gain across candidates, open a live scope
window and print the lessons.

Settings come from PIDLAB_ environment variables (PIDLAB_KP, PIDLAB_KI,
PIDLAB_KD, PIDLAB_DURATION, PIDLAB_SAMPLES, PIDLAB_OUT_DIR,
PIDLAB_THEME); flags override them per run.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive tuner draws its own interface.
		if cmd.CalledAs() == "pidlab" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// loadSetup resolves the environment settings and the plant flags shared
// by every command.
func loadSetup() (config.Config, tf.TransferFunction, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, tf.TransferFunction{}, err
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
	plant, err := tf.New(plantNum, plantDen)
	if err != nil {
		return config.Config{}, tf.TransferFunction{}, fmt.Errorf("plant: %w", err)
	}
	return cfg, plant, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Float64SliceVar(&plantNum, "plant-num", []float64{1}, "Plant numerator coefficients, descending powers of s")
	rootCmd.PersistentFlags().Float64SliceVar(&plantDen, "plant-den", []float64{1, 1, 0}, "Plant denominator coefficients, descending powers of s")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "Directory for charts and CSV files (default from PIDLAB_OUT_DIR)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(scopeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
