package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/freegames-hub/freegames/internal/config"
	"github.com/freegames-hub/freegames/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	 __
	/ _|_ __ ___  ___  __ _  __ _ _ __ ___   ___  ___
	| |_| '__/ _ \/ _ \/ _' |/ _' | '_ ' _ \ / _ \/ __|
	|  _| | |  __/  __/ (_| | (_| | | | | | |  __/\__ \
	|_| |_|  \___|\___|\__, |\__,_|_| |_| |_|\___||___/
	                   |___/

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "freegames",
	Short: "Collects free and discounted game offers from several storefronts.",
	Long: LOGO + `freegames pulls promotions from the Epic Games Store, Steam and GamerPower,
normalizes them into one offer shape and tells you what is free right now,
what is coming up and what already expired.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.freegames.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("dbpath", "", "Path to the snapshot database (default is ~/.config/freegames/freegames.sqlite)")

	viper.BindPFlag("proxy", rootCmd.PersistentFlags().Lookup("proxy"))
	viper.BindPFlag("db.path", rootCmd.PersistentFlags().Lookup("dbpath"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Defaults go first so a freshly written config file lists every key.
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".freegames")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("freegames")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.freegames.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// loadConfig is what every subcommand reads after initConfig ran.
func loadConfig() config.Config {
	return config.FromViper(viper.GetViper())
}
