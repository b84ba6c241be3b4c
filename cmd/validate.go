/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dnum-mi/grist-sync-plugin/grist"
	"github.com/dnum-mi/grist-sync-plugin/logging"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the destination URL, API token and table access",
	Run: func(cmd *cobra.Command, args []string) {
		v := viper.GetViper()

		if rawURL := v.GetString("destination.url"); rawURL != "" && !grist.IsValidURL(rawURL) {
			log.Fatalf("Invalid destination URL: %s", rawURL)
		}

		destination, err := destinationConfig(v)
		if err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		gristClient := grist.NewGristClient(destination, logging.NewLogrusSink(log))

		validation := gristClient.ValidateAPIToken(cmd.Context())
		if !validation.Valid {
			log.Fatalf("Token check failed: %s", validation.Message)
		}
		log.WithField("needsAuth", validation.NeedsAuth).Info(validation.Message)

		if !gristClient.TestConnection(cmd.Context()) {
			log.Fatalf("Cannot read table %s in document %s", destination.TableID, destination.DocumentID)
		}

		columns, err := gristClient.ListColumns(cmd.Context())
		if err != nil {
			log.Fatalf("Error listing columns: %v", err)
		}
		log.Infof("Table %s is reachable with %d column(s)", destination.TableID, len(columns))
		for _, column := range columns {
			log.Debugf("Column %s (%s): %s", column.ID, column.Type, column.Label)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
