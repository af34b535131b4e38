package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/dendrascience/skillpack/version"
	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	cfgFile string
	cfg     *Config
	logger  *log.Logger
}

// setup resolves configuration and the logger. Commands call it after their
// own argument checks so a bad path is reported before config problems.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded",
		"file", cfg.File,
		"output_dir", cfg.OutputDir,
		"exclude", cfg.Exclude,
		"version", version.GetVersion(),
	)
	return nil
}

// NewRootCmd creates and returns the root cobra command for the skillpack CLI.
// Run without a subcommand it validates and packages a skill directory.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := NewPackageCmd(a)
	rootCmd.Use = "skillpack SKILL_DIR [OUTPUT_DIR]"
	rootCmd.Version = version.GetFullVersion()
	rootCmd.Long += `

A SKILL_DIR named like a subcommand (validate, inspect, help, completion)
must be given as a path, for example: skillpack ./validate`

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./.skillpack.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	groupSkill := "skill"
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupSkill,
		Title: "Skill Commands",
	})

	validateCmd := NewValidateCmd(a)
	inspectCmd := NewInspectCmd(a)

	validateCmd.GroupID = groupSkill
	inspectCmd.GroupID = groupSkill

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(inspectCmd)

	return rootCmd
}
