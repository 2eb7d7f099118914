package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mapedit/internal/config"
	"mapedit/internal/tui"
)

var root = &cobra.Command{
	Use:   "mapedit [WKT...]",
	Short: "Draw and edit points, polylines and sectors on a terminal map.",
	Long: `mapedit is a terminal map editor. Each argument is a WKT POINT, LINESTRING or
POLYGON added to the map at startup.

Configuration can be changed with command-line flags, with a configuration file
given by --config, or with environment variables named MAPEDIT_<key>, for
example MAPEDIT_RENDER_TYPE=xy.`,
	SilenceUsage: true,
}

func init() {
	v := config.New(root.Flags())
	root.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		return run(cfg, args)
	}
}

// setupLog points the standard logger at the log file. Packages that log through
// logrus directly end up there too, never on the terminal the UI owns.
func setupLog(cfg *config.Config) (*logrus.Logger, *os.File, error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("mapedit: opening log file: %w", err)
	}
	log := logrus.StandardLogger()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(f)
	return log, f, nil
}

func run(cfg *config.Config, args []string) error {
	log, f, err := setupLog(cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	m := tui.New(cfg, log)
	for _, s := range args {
		if err := m.AddWKT(s); err != nil {
			return fmt.Errorf("mapedit: %q: %w", s, err)
		}
	}
	log.WithFields(logrus.Fields{
		"render_type": cfg.RenderType.String(),
		"projection":  cfg.Projection,
		"graphics":    m.Layer().Len(),
	}).Info("mapedit: starting")
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
