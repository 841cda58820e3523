// Package cli wires the preptrack commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "preptrack",
	Short: "Backend for the PrepTrack preparation tracker",
	Long: `preptrack serves the PrepTrack API: activity logging, streaks,
summary aggregation, contest data and streak reminder emails.

Configuration comes from PREPTRACK_* environment variables.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
