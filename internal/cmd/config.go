package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "SKILLPACK"
	configFileName = ".skillpack"

	keyOutputDir = "output_dir"
	keyExclude   = "exclude"
	keyLogLevel  = "log_level"
)

// Config holds settings resolved from flags, SKILLPACK_* environment
// variables and an optional .skillpack.yaml file, in that order of precedence.
type Config struct {
	OutputDir string
	Exclude   []string
	LogLevel  string
	File      string // config file actually read, if any
}

func loadConfig(cmd *cobra.Command, cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault(keyOutputDir, "")
	v.SetDefault(keyExclude, []string{})
	v.SetDefault(keyLogLevel, "warn")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", cfgFile)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "failed to read config file")
			}
		}
	}

	if f := cmd.Flags().Lookup("log-level"); f != nil {
		if err := v.BindPFlag(keyLogLevel, f); err != nil {
			return nil, err
		}
	}
	if f := cmd.Flags().Lookup("exclude"); f != nil {
		if err := v.BindPFlag(keyExclude, f); err != nil {
			return nil, err
		}
	}

	return &Config{
		OutputDir: v.GetString(keyOutputDir),
		Exclude:   v.GetStringSlice(keyExclude),
		LogLevel:  v.GetString(keyLogLevel),
		File:      v.ConfigFileUsed(),
	}, nil
}

// resolveOutputDir picks the positional argument, then the configured
// directory, then the working directory.
func resolveOutputDir(args []string, cfg *Config) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}
	if cfg.OutputDir != "" {
		return cfg.OutputDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get working directory")
	}
	return wd, nil
}
