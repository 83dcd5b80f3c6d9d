package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "edustore",
	Short: "EduStore API - document sharing backend for students",
	Long: `EduStore API serves the document feed, likes, bookmarks, follows,
comments and profiles over HTTP.

Configuration is read from the environment (and .env in development).`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
