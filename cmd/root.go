package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"littlepomo/internal/core/session"
)

const (
	appName = "LittlePomo"
	appID   = "com.littlepomo.app"
	envName = "LITTLEPOMO"
)

// options is the resolved command line and environment configuration.
type options struct {
	ConfigDir string
	DataDir   string
	LogLevel  string
	Mode      session.Mode
}

func newRootCmd(version string) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "littlepomo",
		Short:        "A pomodoro timer with a drift-free session clock",
		Long:         `Little Pomo runs pomodoro work sessions and breaks on a wall-clock anchored timer, with a task list, themes and desktop notifications.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(v)
			if err != nil {
				return err
			}
			return run(opts)
		},
	}

	cmd.Flags().String("config-dir", "", "directory holding settings.yaml (default: user config dir)")
	cmd.Flags().String("data-dir", "", "directory holding the task database (default: user data dir)")
	cmd.Flags().String("log-level", "info", "log level: trace, debug, info, warn, error")
	cmd.Flags().String("mode", string(session.ModeWork), "initial mode: pomo, short, long")

	_ = v.BindPFlag("config_dir", cmd.Flags().Lookup("config-dir"))
	_ = v.BindPFlag("data_dir", cmd.Flags().Lookup("data-dir"))
	_ = v.BindPFlag("log_level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("mode", cmd.Flags().Lookup("mode"))

	v.SetEnvPrefix(envName)
	v.AutomaticEnv()

	return cmd
}

func resolveOptions(v *viper.Viper) (options, error) {
	mode, err := session.ParseMode(v.GetString("mode"))
	if err != nil {
		return options{}, fmt.Errorf("invalid --mode: %w", err)
	}
	return options{
		ConfigDir: v.GetString("config_dir"),
		DataDir:   v.GetString("data_dir"),
		LogLevel:  v.GetString("log_level"),
		Mode:      mode,
	}, nil
}
