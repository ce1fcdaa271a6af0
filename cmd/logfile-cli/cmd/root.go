package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var directory string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "logfile-cli",
	Short: "A tool for interacting with segmented event logs.",
	Long:  `A tool for interacting with segmented event logs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&directory,
		"directory",
		"d",
		".",
		"The directory the event log segments are located in.",
	)
}
