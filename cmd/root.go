package cmd

import (
	"fmt"
	"os"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/utils"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "foodinsights",
	Short: "Predictive nutrition insights from daily food logs",
	Long: `foodinsights turns a history of daily nutrition and activity records into a
goal-aware health score, weight and what-if projections, a weekly wrap and a
next-meal recommendation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("loglevel")
		return utils.SetLogLevel(level)
	},
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.foodinsights.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return
	}
	home, err := homedir.Dir()
	cobra.CheckErr(err)

	viper.AddConfigPath(home)
	viper.SetConfigType("yaml")
	viper.SetConfigName(".foodinsights")
}

// loadConfig binds the running command's flags to their config keys and
// decodes the merged configuration. Binding happens per invocation because
// several commands expose flags for the same key.
func loadConfig(cmd *cobra.Command, keys map[string]string) (*models.Config, error) {
	for flag, key := range keys {
		if err := bindFlag(cmd.Flags(), flag, key); err != nil {
			return nil, err
		}
	}
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		utils.Log.Debugf("Using config file: %s", used)
	}
	return cfg, nil
}

func bindFlag(flags *pflag.FlagSet, name, key string) error {
	f := flags.Lookup(name)
	if f == nil {
		return fmt.Errorf("unknown flag %q", name)
	}
	return viper.BindPFlag(key, f)
}
