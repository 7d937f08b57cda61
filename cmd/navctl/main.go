// cmd/navctl/main.go

// navctl is an operator CLI for moving location sets between
// deployments through the HTTP API: export the full list to a JSON
// file, or import such a file into another instance.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"campusnav/cmd/navctl/locations"
)

var rootCmd = &cobra.Command{
	Use:   "navctl",
	Short: "Operator CLI for the campus navigator API",
	Long: `navctl talks to a running campus navigator instance over its HTTP API.

Examples:
  navctl export --api-url http://localhost:8080 --out kiit-locations.json
  navctl import --api-url http://localhost:8080 --token $TOKEN --file kiit-locations.json`,
}

func main() {
	rootCmd.AddCommand(locations.NewExportCommand())
	rootCmd.AddCommand(locations.NewImportCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
