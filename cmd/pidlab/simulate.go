package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lambert-ike-1232/pidlab/chart"
	"github.com/lambert-ike-1232/pidlab/control"
	"github.com/lambert-ike-1232/pidlab/signal"
	"github.com/lambert-ike-1232/pidlab/simulate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	refName      string
	kpFlag       float64
	kiFlag       float64
	kdFlag       float64
	durationFlag float64
	samplesFlag  int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate the closed loop and render the response",
	Long: `Closes the PID loop around the plant, drives it with the chosen
reference and writes the trajectory as a PNG chart and a CSV file.

Example:
  pidlab simulate --reference ramp --kp 8 --ki 0 -o plots`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&refName, "reference", "r", "step", "Reference shape: step, ramp or sine")
	simulateCmd.Flags().Float64Var(&kpFlag, "kp", control.DefaultKp, "Proportional gain")
	simulateCmd.Flags().Float64Var(&kiFlag, "ki", control.DefaultKi, "Integral gain")
	simulateCmd.Flags().Float64Var(&kdFlag, "kd", control.DefaultKd, "Derivative gain")
	simulateCmd.Flags().Float64Var(&durationFlag, "duration", 30, "Simulation length in seconds")
	simulateCmd.Flags().IntVar(&samplesFlag, "samples", 3000, "Samples across the window")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, plant, err := loadSetup()
	if err != nil {
		return err
	}

	pid := cfg.PID()
	if cmd.Flags().Changed("kp") {
		pid.Kp = kpFlag
	}
	if cmd.Flags().Changed("ki") {
		pid.Ki = kiFlag
	}
	if cmd.Flags().Changed("kd") {
		pid.Kd = kdFlag
	}
	if pid, err = control.NewPID(pid.Kp, pid.Ki, pid.Kd); err != nil {
		return err
	}

	kind, err := signal.ParseKind(refName)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("duration") {
		cfg.Duration = durationFlag
	}
	if cmd.Flags().Changed("samples") {
		cfg.Samples = samplesFlag
	}
	grid, err := simulate.NewGrid(0, cfg.Duration, cfg.Samples)
	if err != nil {
		return err
	}

	loop, err := pid.ClosedLoop(plant)
	if err != nil {
		return err
	}
	sys, err := loop.Realize()
	if err != nil {
		return err
	}
	logger.Debug("closed the loop",
		zap.String("pid", pid.String()),
		zap.String("poles", fmt.Sprint(sys.Poles())))

	t := grid.Times()
	ref := signal.Samples(kind.Source(), t)
	resp, err := simulate.ForcedResponse(sys, t, ref)
	if err != nil {
		return err
	}

	maxErr := 0.0
	for i := range ref {
		if e := ref[i] - resp.Y[i]; e > maxErr {
			maxErr = e
		} else if -e > maxErr {
			maxErr = -e
		}
	}
	logger.Info("simulation finished",
		zap.String("pid", pid.String()),
		zap.String("reference", kind.String()),
		zap.Float64("final", resp.Final()),
		zap.Float64("max_tracking_error", maxErr))

	base := filepath.Join(cfg.OutDir, "response-"+strings.ToLower(kind.String()))
	title := fmt.Sprintf("%s tracking a %s reference", pid, kind)
	if err := chart.SavePNG(base+".png", title, "time (s)", "response",
		chart.Line{Name: "reference", T: t, Y: ref},
		chart.Line{Name: "output", T: t, Y: resp.Y},
	); err != nil {
		return err
	}
	if err := chart.WriteCSV(base+".csv",
		[]string{"t", "reference", "output"},
		[][]float64{t, ref, resp.Y},
	); err != nil {
		return err
	}

	info := simulate.Analyze(resp, ref[len(ref)-1])
	fmt.Printf("rise time      %8.3g s\n", info.RiseTime)
	fmt.Printf("settling time  %8.3g s\n", info.SettlingTime)
	fmt.Printf("overshoot      %8.3g %%\n", info.Overshoot)
	fmt.Printf("peak           %8.3g at %.3g s\n", info.Peak, info.PeakTime)
	fmt.Printf("final          %8.3g (steady state error %.3g)\n",
		info.Final, info.SteadyStateError)
	fmt.Printf("wrote %s.png and %s.csv\n", base, base)
	return nil
}
