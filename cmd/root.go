package cmd

import (
	"log"
	"strings"

	"github.com/spigell/resume-screener/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "resume-screener"
	envPrefix = "RESUME_SCREENER"
)

type Config struct {
	Inputs      []string          `mapstructure:"inputs"`
	Concurrency int               `mapstructure:"concurrency"`
	Extraction  *ExtractionConfig `mapstructure:"extraction"`
	Output      *OutputConfig     `mapstructure:"output"`
}

type ExtractionConfig struct {
	DisabledFields    []string `mapstructure:"disabled-fields"`
	YearRangeFallback bool     `mapstructure:"year-range-fallback"`
}

type OutputConfig struct {
	CSV  string `mapstructure:"csv"`
	JSON string `mapstructure:"json"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-screener is a simple cli for scoring resumes against a job and ranking the candidates",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	// A missing .env file is fine, the environment may be set already.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := jobs.BindEnv(viper.GetViper(), envPrefix); err != nil {
		log.Fatal(err)
	}

	viper.SetDefault("concurrency", 1)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// The job can be fully described by flags, so only an explicit config file is mandatory.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Extraction == nil {
		config.Extraction = &ExtractionConfig{}
	}
	if config.Output == nil {
		config.Output = &OutputConfig{}
	}

	return config, nil
}
