package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var logger *zap.SugaredLogger
var resultsDir string

var rootCmd = &cobra.Command{
	Use:   "scope-intel",
	Short: "Domain security-intelligence collection and vendor risk scoring",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env first so SHODAN_API_KEY and friends are visible to viper
		_ = godotenv.Load()

		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".scope-intel")
			viper.SetConfigType("yaml")
		}
		viper.SetEnvPrefix("SCOPE")
		viper.AutomaticEnv()

		_ = viper.ReadInConfig()
		resultsDir = viper.GetString("results_dir")
		if resultsDir == "" {
			resultsDir = "./results"
		}

		// create results dir if not exists
		if err := os.MkdirAll(resultsDir, 0o755); err != nil {
			return fmt.Errorf("failed to create results directory: %s", err.Error())
		}

		// init logger
		l, _ := zap.NewProduction()
		logger = l.Sugar()

		// Make final resultsDir absolute (for clarity in logs)
		if abs, err := filepath.Abs(resultsDir); err == nil {
			resultsDir = abs
		}

		logger.Infof("results_dir=%s", resultsDir)

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scope-intel.yaml)")

	// add subcommands
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(versionCmd)
}
