/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dnum-mi/grist-sync-plugin/diagnosis"
	"github.com/dnum-mi/grist-sync-plugin/grist"
	"github.com/dnum-mi/grist-sync-plugin/json"
	"github.com/dnum-mi/grist-sync-plugin/logging"
	"github.com/dnum-mi/grist-sync-plugin/source"
	"github.com/dnum-mi/grist-sync-plugin/syncer"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch source records, map them and insert them into the Grist table",
	Long: `The sync command performs the main workflow:

1. Fetches records from the source API (unwrapping data/results/items envelopes)
2. Applies the mappings from --mappingsFile, or generates them from the first record
3. Creates missing destination columns when destination.autoCreateColumns is set
4. Inserts the mapped records and reports the new record IDs

With --dryRun the mapped records are written to preview.json in the working
folder and nothing is sent to Grist. With --fromPreview that file, possibly
edited by hand, is sent instead of fetching the source.`,
	Run: func(cmd *cobra.Command, args []string) {
		v := viper.GetViper()

		workingFolderPath, err := parsePath(v.GetString("workingFolderPath"))
		if err != nil {
			log.Fatalf("Error getting working folder path: %v", err)
		}

		destination, err := destinationConfig(v)
		if err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
		gristClient := grist.NewGristClient(destination, logging.NewLogrusSink(log))
		jsonClient := json.NewJsonClient(workingFolderPath, log)

		var result *syncer.Result
		fromPreview, _ := cmd.Flags().GetBool("fromPreview")
		if fromPreview {
			syncClient := syncer.NewSyncClient(nil, gristClient, jsonClient, false, log)
			result, err = syncClient.SyncFromPreview(cmd.Context())
		} else {
			sourceSettings, configErr := sourceConfig(v)
			if configErr != nil {
				log.Fatalf("Invalid configuration: %v", configErr)
			}

			mappings, loadErr := loadMappings(v, workingFolderPath, log)
			if loadErr != nil {
				log.Fatalf("Error loading mappings: %v", loadErr)
			}

			syncClient := syncer.NewSyncClient(
				source.NewSourceClient(sourceSettings, log),
				gristClient,
				jsonClient,
				v.GetBool("dryRun"),
				log,
			)
			result, err = syncClient.Sync(cmd.Context(), mappings)
		}
		if err != nil {
			var classified *diagnosis.Error
			if errors.As(err, &classified) {
				log.Error(diagnosis.FormatLong(classified.Diagnosis))
				log.Debugf("Technical detail: %s", classified.Diagnosis.TechnicalDetail)
			}
			log.Fatalf("Sync failed: %v", err)
		}

		log.Infof("Fetched %d record(s), mapped %d, inserted %d", result.Fetched, len(result.Transformed), len(result.InsertedIDs))
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolP("dryRun", "d", false, "Write mapped records to preview.json instead of inserting them")
	viper.BindPFlag("dryRun", syncCmd.Flags().Lookup("dryRun"))
	syncCmd.Flags().Bool("fromPreview", false, "Insert the records of preview.json instead of fetching the source")
	syncCmd.MarkFlagsMutuallyExclusive("dryRun", "fromPreview")
}
