package main

import (
	"fmt"

	"github.com/lambert-ike-1232/pidlab/scope"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scopeCmd = &cobra.Command{
	Use:   "scope",
	Short: "Open a live window on the closed loop",
	Long: `Opens a desktop window showing the reference and the simulated
output. The arrow keys retune the focused gain while the loop runs, tab
picks the gain, left and right switch the reference, s saves a snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, plant, err := loadSetup()
		if err != nil {
			return err
		}
		logger.Info("opening scope window",
			zap.String("plant", fmt.Sprintf("%v / %v", plantNum, plantDen)),
			zap.String("pid", cfg.PID().String()))
		return scope.New(plant, cfg.PID(), cfg.Grid(), cfg.OutDir).Run()
	},
}
