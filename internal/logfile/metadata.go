package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/riverlog/eventlog/internal/utils"
)

// MetadataWriter maintains the sidecar file which records the position and write-order-id the higher layer has
// most recently checkpointed for one segment. It uses a double-buffered, generation-numbered layout instead of a
// temp-file-plus-rename, since checkpoints can be frequent and this avoids a rename() per call: the reader always
// picks whichever of the two slots has the higher generation and a checksum that still validates, so a crash
// mid-write leaves the other slot intact.
type MetadataWriter struct {
	noCopy utils.NoCopy
	mutex  sync.Mutex

	file  *os.File
	codec Codec

	generation                 uint64
	lastCheckpointOffset       int64
	lastCheckpointWriteOrderID int64
}

// metadataSlotOffset returns the file offset of a checkpoint slot, past the version-invariant MetadataHeader
// every sidecar file starts with.
func metadataSlotOffset(codec Codec, slot int) int64 {
	return int64(MetadataHeaderSize) + int64(slot*codec.MetadataRecordSize())
}

// CreateMetadataWriter creates (or truncates) the sidecar file for logFileID in directory, tagging it with
// codec's version.
func CreateMetadataWriter(directory string, logFileID int32, codec Codec) (*MetadataWriter, error) {
	path := metadataFilePath(directory, logFileID)
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644) //nolint:gosec // library caller owns path validation.
	if err != nil {
		return nil, fmt.Errorf("creating metadata file %q: %w", path, err)
	}

	var buffer [MetadataHeaderSize]byte
	header := MetadataHeader{Magic: Magic, Version: codec.Version()}
	if err := WriteMetadataHeader(file, buffer[:], header); err != nil {
		_ = file.Close()
		return nil, err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("flushing metadata header %q: %w", path, ioError(err))
	}
	return &MetadataWriter{file: file, codec: codec}, nil
}

// OpenMetadataWriter opens an existing sidecar file, resuming its generation counter from whatever it currently
// holds so a subsequent MarkCheckpoint never regresses the generation. If the sidecar is empty (freshly created
// alongside a segment that has never been checkpointed), it is tagged with codec's version first.
func OpenMetadataWriter(directory string, logFileID int32, codec Codec) (*MetadataWriter, error) {
	path := metadataFilePath(directory, logFileID)
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644) //nolint:gosec // library caller owns path validation.
	if err != nil {
		return nil, fmt.Errorf("opening metadata file %q: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("statting metadata file %q: %w", path, err)
	}
	if stat.Size() == 0 {
		var buffer [MetadataHeaderSize]byte
		header := MetadataHeader{Magic: Magic, Version: codec.Version()}
		if err := WriteMetadataHeader(file, buffer[:], header); err != nil {
			_ = file.Close()
			return nil, err
		}
	}

	generation, position, writeOrderID, _ := readMetadataFile(file, codec)
	return &MetadataWriter{
		file:                       file,
		codec:                      codec,
		generation:                 generation,
		lastCheckpointOffset:       position,
		lastCheckpointWriteOrderID: writeOrderID,
	}, nil
}

// MarkCheckpoint atomically persists (position, writeOrderID) to the sidecar file. After it returns, the
// sidecar durably reflects exactly this pair; a crash before the fsync completes leaves the previous pair
// readable, never a torn mix of the two.
func (w *MetadataWriter) MarkCheckpoint(position int64, writeOrderID int64) error {
	start := time.Now()
	defer func() {
		CheckpointDuration.Observe(time.Since(start).Seconds())
	}()

	w.mutex.Lock()
	defer w.mutex.Unlock()

	nextGeneration := w.generation + 1
	slot := int(nextGeneration % 2) //nolint:gosec // slot is always 0 or 1.
	record := w.codec.EncodeMetadata(nextGeneration, position, writeOrderID)

	if _, err := w.file.WriteAt(record, metadataSlotOffset(w.codec, slot)); err != nil {
		return fmt.Errorf("writing checkpoint: %w", ioError(err))
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("flushing checkpoint: %w", ioError(err))
	}

	w.generation = nextGeneration
	w.lastCheckpointOffset = position
	w.lastCheckpointWriteOrderID = writeOrderID
	CheckpointTotal.Inc()
	return nil
}

// MarkCheckpointAdvance reuses the previously stored offset and only advances writeOrderID. This supports
// "nothing new has been appended since the last checkpoint but time has advanced" updates.
func (w *MetadataWriter) MarkCheckpointAdvance(writeOrderID int64) error {
	w.mutex.Lock()
	position := w.lastCheckpointOffset
	w.mutex.Unlock()
	return w.MarkCheckpoint(position, writeOrderID)
}

// LastCheckpoint returns the most recently persisted (position, writeOrderID) pair.
func (w *MetadataWriter) LastCheckpoint() (int64, int64) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.lastCheckpointOffset, w.lastCheckpointWriteOrderID
}

// Close closes the sidecar file without a further flush; every checkpoint has already been flushed by
// MarkCheckpoint. Unlike the segment writer, which logs close errors, it returns the error from closing the file.
func (w *MetadataWriter) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.file.Close()
}

// ReadMetadata reads the checkpoint currently persisted in the sidecar file for logFileID without needing a
// writer. It returns (0, 0, nil) if no sidecar file exists yet, meaning no checkpoint has ever been recorded.
func ReadMetadata(directory string, logFileID int32, codec Codec) (int64, int64, error) {
	path := metadataFilePath(directory, logFileID)
	file, err := os.OpenFile(path, os.O_RDONLY, 0) //nolint:gosec // library caller owns path validation.
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("opening metadata file %q: %w", path, err)
	}
	defer file.Close()

	_, position, writeOrderID, _ := readMetadataFile(file, codec)
	return position, writeOrderID, nil
}

func readMetadataFile(file *os.File, codec Codec) (uint64, int64, int64, bool) {
	size := codec.MetadataRecordSize()
	slots := [2][]byte{make([]byte, size), make([]byte, size)}

	var bestGeneration uint64
	var bestPosition, bestWriteOrderID int64
	found := false

	for slot := range slots {
		n, err := file.ReadAt(slots[slot], metadataSlotOffset(codec, slot))
		if err != nil && n < size {
			continue
		}
		generation, position, writeOrderID, ok := codec.DecodeMetadata(slots[slot])
		if !ok {
			continue
		}
		if !found || generation > bestGeneration {
			bestGeneration, bestPosition, bestWriteOrderID = generation, position, writeOrderID
			found = true
		}
	}
	return bestGeneration, bestPosition, bestWriteOrderID, found
}

func metadataFilePath(directory string, logFileID int32) string {
	return filepath.Join(directory, metadataFileName(logFileID))
}
