package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riverlog/eventlog/pkg/logfile"
)

// replayCmd represents the replay command.
var replayCmd = &cobra.Command{
	Use:          "replay <segment-file>",
	Short:        "Replays a single segment file and prints every record it contains.",
	Long:         `Replays a single segment file and prints every record it contains.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		reader, err := logfile.OpenSegmentSequentialReader(path)
		if err != nil {
			return err
		}
		defer func() {
			_ = reader.Close()
		}()

		fileID := reader.LogFileID()

		var readCount, putCount, takeCount, rollbackCount, commitCount int
		for {
			record, ok, err := reader.Next()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			readCount++

			var pointer *logfile.EventPointer
			switch record.Record.Type {
			case logfile.RecordTypePut:
				putCount++
				p := logfile.EventPointer{LogFileID: fileID, Offset: int32(record.Offset)} //nolint:gosec // offset was validated when it was written.
				pointer = &p
			case logfile.RecordTypeTake:
				takeCount++
				p := record.Record.TakePointer
				pointer = &p
			case logfile.RecordTypeRollback:
				rollbackCount++
			case logfile.RecordTypeCommit:
				commitCount++
			}

			if pointer != nil {
				fmt.Printf("%d, %d, %d, %d, %s, (%d, %d)\n",
					record.Record.TransactionID, record.Record.LogWriteOrderID, fileID, record.Offset,
					record.Record.Type, pointer.LogFileID, pointer.Offset)
			} else {
				fmt.Printf("%d, %d, %d, %d, %s\n",
					record.Record.TransactionID, record.Record.LogWriteOrderID, fileID, record.Offset,
					record.Record.Type)
			}
		}

		fmt.Printf("replayed %d from %s (read: %d, put: %d, take: %d, rollback: %d, commit: %d)\n",
			readCount, path, readCount, putCount, takeCount, rollbackCount, commitCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
