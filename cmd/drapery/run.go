package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/drapery"
)

type runOptions struct {
	scene         string
	mask          string
	catalog       string
	script        string
	screenshotDir string
	debug         bool
}

func (o *runOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.scene, "scene", "", "Room photograph to composite over")
	f.StringVar(&o.mask, "mask", "", "Curtain fabric mask image")
	f.StringVar(&o.catalog, "catalog", "", "Catalog YAML replacing the embedded one")
	f.StringVar(&o.script, "script", "", "YAML or JSON script to drive the window, then exit")
	f.StringVar(&o.screenshotDir, "screenshot-dir", "", "Directory for script screenshots")
	f.BoolVar(&o.debug, "debug", false, "Enable scene debug checks and frame stats")
}

// apply copies the flags the user actually set onto cfg.
func (o *runOptions) apply(cmd *cobra.Command, cfg *drapery.Config) {
	f := cmd.Flags()
	if f.Changed("scene") {
		cfg.Assets.Scene = o.scene
	}
	if f.Changed("mask") {
		cfg.Assets.Mask = o.mask
	}
	if f.Changed("catalog") {
		cfg.Catalog = o.catalog
	}
	if f.Changed("script") {
		cfg.Script = o.script
	}
	if f.Changed("screenshot-dir") {
		cfg.ScreenshotDir = o.screenshotDir
	}
	if f.Changed("debug") {
		cfg.Debug = o.debug
	}
}

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the visualizer window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisualizer(cmd, root, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

// resolveConfig layers the config file, DRAPERY_* variables and flags over
// the defaults, in that order, and installs the logger it selects.
func resolveConfig(cmd *cobra.Command, root *rootFlags, opts *runOptions) (drapery.Config, error) {
	cfg := drapery.DefaultConfig()
	if root.configPath != "" {
		loaded, err := drapery.LoadConfig(root.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if root.logLevel != "" {
		cfg.Log.Level = root.logLevel
	}
	if opts != nil {
		opts.apply(cmd, &cfg)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logOpts := cfg.LogOptions()
	logOpts.Writer = cmd.ErrOrStderr()
	log, err := drapery.NewLogger(logOpts)
	if err != nil {
		return cfg, fmt.Errorf("create logger: %w", err)
	}
	drapery.SetLogger(log)
	return cfg, nil
}

func loadCatalog(cfg drapery.Config) (*drapery.Catalog, error) {
	if cfg.Catalog == "" {
		return drapery.DefaultCatalog(), nil
	}
	return drapery.LoadCatalog(cfg.Catalog)
}

func loadScript(path string) (*drapery.TestRunner, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return drapery.LoadTestScript(data)
}

func runVisualizer(cmd *cobra.Command, root *rootFlags, opts *runOptions) error {
	cfg, err := resolveConfig(cmd, root, opts)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	script, err := loadScript(cfg.Script)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	v, err := drapery.NewVisualizer(drapery.VisualizerOptions{
		Config:  cfg,
		Catalog: cat,
		Assets:  drapery.LoadAssets(cfg.Assets.Scene, cfg.Assets.Mask),
		Script:  script,
		OnOrder: func(summary string) {
			fmt.Fprintf(out, "order: %s\n", summary)
		},
		OnSampleRequest: func(summary string) {
			fmt.Fprintf(out, "sample: %s\n", summary)
		},
	})
	if err != nil {
		return err
	}
	defer v.Close()

	return drapery.Run(v, drapery.RunConfig{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: true,
	})
}
