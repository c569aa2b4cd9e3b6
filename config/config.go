package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys.
const (
	ConfigDebug               = "debug"
	ConfigThreads             = "threads"
	ConfigSearchMinDepth      = "search-min-depth"
	ConfigSearchMaxDepth      = "search-max-depth"
	ConfigTimeBudgetMs        = "time-budget-ms"
	ConfigBenchFile           = "bench-file"
	ConfigAutoplayRandomPlies = "autoplay-random-plies"
	ConfigCPUProfile          = "cpu-profile"
	ConfigMemProfile          = "mem-profile"
)

const envPrefix = "othello"

type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigThreads, 1)
	v.SetDefault(ConfigSearchMinDepth, 5)
	v.SetDefault(ConfigSearchMaxDepth, 20)
	v.SetDefault(ConfigTimeBudgetMs, 1000)
	v.SetDefault(ConfigBenchFile, "")
	v.SetDefault(ConfigAutoplayRandomPlies, 4)
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
}

// DefaultConfig returns a config holding only the defaults. Environment
// variables are still honored.
func DefaultConfig() Config {
	c := Config{Viper: viper.New()}
	setDefaults(c.Viper)
	c.bindEnv()
	return c
}

func (c *Config) bindEnv() {
	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
}

// Load parses command-line flags on top of the environment and defaults.
// Flags win over OTHELLO_* environment variables, which win over defaults.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)
	c.bindEnv()

	fs := pflag.NewFlagSet("othello", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.Int(ConfigThreads, 1, "number of threads for the parallel search; 1 searches sequentially")
	fs.Int(ConfigSearchMinDepth, 5, "first depth of the iterative deepening loop")
	fs.Int(ConfigSearchMaxDepth, 20, "last depth of the iterative deepening loop")
	fs.Int(ConfigTimeBudgetMs, 1000, "time budget per move in milliseconds")
	fs.String(ConfigBenchFile, "", "YAML file of benchmark positions; the embedded set is used if empty")
	fs.Int(ConfigAutoplayRandomPlies, 4, "random opening plies played before the engines take over in autoplay")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	c.args = fs.Args()
	// Only flags that were actually given should shadow the environment.
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if err := c.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	return bindErr
}

// Args returns the arguments left over after the flags.
func (c *Config) Args() []string {
	return c.args
}

// TimeBudget is the configured per-move budget.
func (c *Config) TimeBudget() time.Duration {
	return time.Duration(c.GetInt(ConfigTimeBudgetMs)) * time.Millisecond
}

// SanitizedSettings returns the settings in a form fit for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
