package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/healthrisk/internal/export"
	"github.com/gyeh/healthrisk/internal/features"
)

var inputsJSON bool

var inputsCmd = &cobra.Command{
	Use:   "inputs",
	Short: "List the health inputs an assessment understands",
	RunE: func(cmd *cobra.Command, args []string) error {
		cats := features.RequiredInputs()
		if inputsJSON {
			return export.WriteJSON(os.Stdout, cats)
		}
		for _, c := range cats {
			fmt.Printf("%s:\n", c.Name)
			for _, f := range c.Fields {
				fmt.Printf("  %-32s %s\n", f.Key, f.Description)
			}
		}
		fmt.Println("\nEvery input is optional; missing values fall back to population defaults.")
		return nil
	},
}

func init() {
	inputsCmd.Flags().BoolVar(&inputsJSON, "json", false, "Print as JSON")
	rootCmd.AddCommand(inputsCmd)
}
