/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dnum-mi/grist-sync-plugin/logging"
	"github.com/dnum-mi/grist-sync-plugin/types"
)

var (
	cfgFile string
	log     = logrus.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "grist-sync",
	Short: "Copy records from a JSON API into a Grist table",
	Long: `grist-sync reads records from a JSON API, maps their fields onto the
columns of a Grist table and inserts them, creating missing columns on the way.

Examples:
  # Generate an editable mapping file from the source
  grist-sync mappings generate --config ./config.yaml

  # Preview the records that would be sent
  grist-sync sync --config ./config.yaml --dryRun

  # Check the destination token and connectivity
  grist-sync validate --config ./config.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.NewLogger(viper.GetString("verbosity"), viper.GetBool("structuredLogs"))
		if err != nil {
			return err
		}
		log = logger

		for key, value := range viper.GetViper().AllSettings() {
			if key == "destination" || key == "source" {
				continue
			}
			log.Debugf("Command Flag: %s = %v", key, value)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is ./grist-sync.yaml)")
	rootCmd.PersistentFlags().StringP("verbosity", "v", "info", "Log level (debug, info, warn, error, fatal, panic)")
	viper.BindPFlag("verbosity", rootCmd.PersistentFlags().Lookup("verbosity"))
	rootCmd.PersistentFlags().Bool("structuredLogs", false, "Output logs as JSON")
	viper.BindPFlag("structuredLogs", rootCmd.PersistentFlags().Lookup("structuredLogs"))
	rootCmd.PersistentFlags().StringP("workingFolderPath", "w", ".", "Working folder path to use")
	viper.BindPFlag("workingFolderPath", rootCmd.PersistentFlags().Lookup("workingFolderPath"))
	rootCmd.PersistentFlags().StringP("mappingsFile", "m", "", "HCL mapping file, relative to the working folder")
	viper.BindPFlag("mappingsFile", rootCmd.PersistentFlags().Lookup("mappingsFile"))

	rootCmd.PersistentFlags().String("destinationUrl", "", "Grist document URL (https://host/doc/<id>)")
	viper.BindPFlag("destination.url", rootCmd.PersistentFlags().Lookup("destinationUrl"))
	rootCmd.PersistentFlags().String("documentId", "", "Grist document ID")
	viper.BindPFlag("destination.documentId", rootCmd.PersistentFlags().Lookup("documentId"))
	rootCmd.PersistentFlags().StringP("tableId", "t", "", "Grist table ID")
	viper.BindPFlag("destination.tableId", rootCmd.PersistentFlags().Lookup("tableId"))
	rootCmd.PersistentFlags().String("sourceUrl", "", "Source API URL")
	viper.BindPFlag("source.url", rootCmd.PersistentFlags().Lookup("sourceUrl"))
}

func initConfig() {
	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("grist-sync")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("Error reading config file: %v", err)
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetEnvPrefix("GRIST_SYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("destination.autoCreateColumns", true)
	v.SetDefault("source.authHeader", types.DefaultAuthHeader)
	v.SetDefault("workingFolderPath", ".")
}
