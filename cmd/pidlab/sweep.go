package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lambert-ike-1232/pidlab/chart"
	"github.com/lambert-ike-1232/pidlab/control"
	"github.com/lambert-ike-1232/pidlab/simulate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	gainName   string
	gainValues []float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare step responses across candidate values of one gain",
	Long: `Simulates the closed loop step response once per candidate value of
the swept gain, the other gains held at their configured values, and
overlays all candidates in one chart.

Example:
  pidlab sweep --gain kp --values 1,5,20`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVarP(&gainName, "gain", "g", "kp", "Gain to sweep: kp, ki or kd")
	sweepCmd.Flags().Float64SliceVar(&gainValues, "values", []float64{1, 5, 20}, "Candidate values")
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, plant, err := loadSetup()
	if err != nil {
		return err
	}
	gain, err := control.ParseGain(gainName)
	if err != nil {
		return err
	}

	results, err := control.Sweep(cfg.PID(), gain, gainValues, plant, cfg.Grid())
	if err != nil {
		return err
	}

	lines := make([]chart.Line, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			logger.Warn("candidate failed",
				zap.String("candidate", res.Name),
				zap.Error(res.Err))
			continue
		}
		info := simulate.Analyze(res.Response, 1)
		logger.Info("candidate",
			zap.String("candidate", res.Name),
			zap.Float64("overshoot_pct", info.Overshoot),
			zap.Float64("rise_s", info.RiseTime),
			zap.Float64("settling_s", info.SettlingTime),
			zap.Float64("final", info.Final))
		lines = append(lines, chart.Line{
			Name: res.Name,
			T:    res.Response.T,
			Y:    res.Response.Y,
		})
	}
	if len(lines) == 0 {
		return errors.New("every sweep candidate failed")
	}

	png := filepath.Join(cfg.OutDir, fmt.Sprintf("sweep-%s.png", gain))
	title := fmt.Sprintf("Step response while sweeping %s", gain)
	if err := chart.SavePNG(png, title, "time (s)", "response", lines...); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", png)
	return nil
}
