package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/riverlog/eventlog/pkg/logfile"
)

// describeCmd represents the describe command.
var describeCmd = &cobra.Command{
	Use:          "describe",
	Short:        "Provides detailed information about every segment in the event log.",
	Long:         `Provides detailed information about every segment in the event log.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		segments, err := logfile.GetSegments(directory)
		if err != nil {
			return err
		}
		if len(segments) == 0 {
			return fmt.Errorf("no segment found in %q", directory)
		}

		for _, logFileID := range segments {
			path := filepath.Join(directory, fmt.Sprintf("%010d.seg", logFileID))
			reader, err := logfile.OpenSegmentSequentialReader(path)
			if err != nil {
				return err
			}

			codec, err := logfile.DetectCodec(directory, logFileID)
			if err != nil {
				_ = reader.Close()
				return err
			}

			position, writeOrderID, err := logfile.ReadMetadata(directory, logFileID, codec)
			if err != nil {
				_ = reader.Close()
				return err
			}

			fmt.Printf("Segment:                    %s\n", path)
			fmt.Printf("Version:                    %d\n", codec.Version())
			fmt.Printf("LogFileID:                  %d\n", reader.LogFileID())
			fmt.Printf("Last checkpoint offset:     %d\n", position)
			fmt.Printf("Last checkpoint write-order: %d\n", writeOrderID)
			fmt.Println()

			if err := reader.Close(); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
