/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dnum-mi/grist-sync-plugin/csv"
	"github.com/dnum-mi/grist-sync-plugin/hcl"
	"github.com/dnum-mi/grist-sync-plugin/mapper"
	"github.com/dnum-mi/grist-sync-plugin/source"
)

const defaultMappingsFile = "mappings.hcl"

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Inspect and generate field mappings",
}

var mappingsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a mapping file from the first source record",
	Long: `Fetches the source records and writes one mapping per field of the first
record to the mapping file (mappings.hcl by default) together with a
mappings.csv review sheet showing sample values.

Keys named id and manualSort are mapped to api_id and api_manualSort.`,
	Run: func(cmd *cobra.Command, args []string) {
		v := viper.GetViper()

		workingFolderPath, err := parsePath(v.GetString("workingFolderPath"))
		if err != nil {
			log.Fatalf("Error getting working folder path: %v", err)
		}
		sourceSettings, err := sourceConfig(v)
		if err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		records, err := source.NewSourceClient(sourceSettings, log).FetchRecords(cmd.Context())
		if err != nil {
			log.Fatalf("Error fetching source records: %v", err)
		}
		if len(records) == 0 {
			log.Fatal("Source returned no records, cannot generate mappings")
		}

		disabled, _ := cmd.Flags().GetBool("disabled")
		mappings := mapper.GenerateMappingsFromAPIData(records[0], !disabled)
		if len(mappings) == 0 {
			log.Fatal("First source record is not an object, cannot generate mappings")
		}

		mappingsFile := v.GetString("mappingsFile")
		if mappingsFile == "" {
			mappingsFile = defaultMappingsFile
		}

		if err := hcl.NewMappingFileClient(workingFolderPath, log).WriteMappings(mappings, mappingsFile); err != nil {
			log.Fatalf("Error writing mappings: %v", err)
		}
		if err := csv.NewMappingCsvClient(workingFolderPath, log).Export(mappings, records[0]); err != nil {
			log.Fatalf("Error writing mapping review sheet: %v", err)
		}
	},
}

var mappingsSuggestCmd = &cobra.Command{
	Use:   "suggest [query]",
	Short: "List source field paths matching a query",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sourceSettings, err := sourceConfig(viper.GetViper())
		if err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		records, err := source.NewSourceClient(sourceSettings, log).FetchRecords(cmd.Context())
		if err != nil {
			log.Fatalf("Error fetching source records: %v", err)
		}
		if len(records) == 0 {
			log.Fatal("Source returned no records")
		}

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		for _, path := range mapper.SuggestSourceFields(records[0], query) {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
	},
}

var mappingsTransformsCmd = &cobra.Command{
	Use:   "transforms",
	Short: "List the transform names usable in a mapping file",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(mapper.TransformNames(), "\n"))
	},
}

func init() {
	rootCmd.AddCommand(mappingsCmd)
	mappingsCmd.AddCommand(mappingsGenerateCmd, mappingsSuggestCmd, mappingsTransformsCmd)

	mappingsGenerateCmd.Flags().Bool("disabled", false, "Write generated mappings as disabled")
}
