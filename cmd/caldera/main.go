// Command caldera is a rigid body sandbox: a windowed demo scene over the
// physics facade, a headless stepper for soak runs, and shader layout
// tooling.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caldera3d/caldera/internal/config"
	"github.com/caldera3d/caldera/internal/logging"
)

var (
	configPath string
	logLevel   string
	preset     string
	seed       int64
	steps      int
	stepDt     float64
	ensemble   int
	dumpWGSL   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "caldera",
		Short: "rigid body physics sandbox",
		RunE:  runWindowed,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "caldera.yaml", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override configured log level")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the windowed sandbox",
		RunE:  runWindowed,
	}

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "step the simulation headless and print a summary",
		RunE:  runHeadless,
	}
	simCmd.Flags().IntVar(&steps, "steps", 600, "fixed steps to run")
	simCmd.Flags().Float64Var(&stepDt, "dt", 0, "step size override (seconds)")
	simCmd.Flags().IntVar(&ensemble, "ensemble", 1, "independent worlds to step in parallel")

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "print the GPU constant layout and its fingerprint",
		RunE:  printLayout,
	}
	layoutCmd.Flags().BoolVar(&dumpWGSL, "wgsl", false, "dump the WGSL shader source instead")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(configPath, config.Default()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", configPath)
			return nil
		},
	}

	for _, c := range []*cobra.Command{rootCmd, runCmd, simCmd} {
		c.Flags().StringVar(&preset, "preset", "", "scene preset (arena, terrain, stack, rain)")
		c.Flags().Int64Var(&seed, "seed", 0, "scene seed override")
	}

	rootCmd.AddCommand(runCmd, simCmd, layoutCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configured file and applies CLI overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("preset") {
		cfg.Scene.Preset = preset
		cfg.Scene.Bodies = nil
	}
	if cmd.Flags().Changed("seed") {
		cfg.Scene.Seed = seed
	}
	if cmd.Flags().Changed("dt") && stepDt > 0 {
		cfg.Physics.FixedDt = float32(stepDt)
	}
	return cfg, nil
}

// newLogger builds the process logger from config. The caller owns Sync.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
