package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riverlog/eventlog/pkg/logfile"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:          "init",
	Short:        "Initializes a new event log segment 0 in the target directory.",
	Long:         `Initializes a new event log segment 0 in the target directory.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		segments, err := logfile.GetSegments(directory)
		if err != nil {
			return err
		}
		if len(segments) != 0 {
			return fmt.Errorf("event log already initialized at %q", directory)
		}

		writer, err := logfile.CreateSegment(directory, 0, logfile.DefaultMaxFileSize)
		if err != nil {
			return err
		}
		if err := writer.Close(); err != nil {
			return err
		}

		codec, err := logfile.GetCodec(logfile.DefaultVersion)
		if err != nil {
			return err
		}

		metadataWriter, err := logfile.CreateMetadataWriter(directory, 0, codec)
		if err != nil {
			return err
		}
		if err := metadataWriter.MarkCheckpoint(0, 0); err != nil {
			return err
		}
		if err := metadataWriter.Close(); err != nil {
			return err
		}

		fmt.Printf("event log initialized at %q\n", directory)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
