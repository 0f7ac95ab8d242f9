// Command server runs the collection API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "collection-api",
	Short: "Collection API - card collection and economy service",
	Long:  `A backend service for collectible creature cards: pack purchases, evolutions, sales, and coin balances.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
