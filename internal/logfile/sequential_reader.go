package logfile

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// LogRecord pairs a decoded transaction record with the offset its frame started at.
type LogRecord struct {
	Offset int64
	Record TransactionRecord
}

// SegmentReaderFile is the subset of *os.File the sequential reader needs. It exists so tests can
// substitute an in-memory stand-in instead of a real segment file on disk, matching how SegmentWriterFile
// decouples SegmentWriter from *os.File.
type SegmentReaderFile interface {
	io.Closer
	io.ReaderAt
}

// SegmentSequentialReader is a single-threaded, single-use cursor over a segment. It is created for replay and
// is not safe for concurrent use; it carries no internal locking because callers never share one across
// goroutines.
type SegmentSequentialReader struct {
	file      SegmentReaderFile
	filePath  string
	logFileID int32
	codec     Codec

	offset int64

	lastCheckpointPosition     int64
	lastCheckpointWriteOrderID int64
}

// OpenSegmentSequentialReader opens filePath for sequential replay, starting at offset 0. The codec is
// determined by inspecting the segment's metadata sidecar, since the segment file itself carries no version tag.
func OpenSegmentSequentialReader(filePath string) (*SegmentSequentialReader, error) {
	file, err := os.OpenFile(filePath, os.O_RDONLY, 0) //nolint:gosec // filePath is derived from segment naming, not user input.
	if err != nil {
		return nil, fmt.Errorf("opening segment file %q: %w", filePath, err)
	}

	directory := filepath.Dir(filePath)
	logFileID, err := parseSegmentFileName(filepath.Base(filePath))
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	codec, err := DetectCodec(directory, logFileID)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return NewSegmentSequentialReader(file, filePath, logFileID, codec, 0), nil
}

// NewSegmentSequentialReader binds a SegmentSequentialReader to an already-open file, positioned at offset. It
// is exported so tests can supply in-memory stand-ins for SegmentReaderFile.
func NewSegmentSequentialReader(file SegmentReaderFile, filePath string, logFileID int32, codec Codec, offset int64) *SegmentSequentialReader {
	return &SegmentSequentialReader{
		file:      file,
		filePath:  filePath,
		logFileID: logFileID,
		codec:     codec,
		offset:    offset,
	}
}

// LogFileID returns the logFileID this reader's segment is identified by.
func (r *SegmentSequentialReader) LogFileID() int32 {
	return r.logFileID
}

// Offset returns the current cursor position.
func (r *SegmentSequentialReader) Offset() int64 {
	return r.offset
}

// SetCheckpoint records the checkpoint the metadata sidecar reported, for a later call to
// SkipToLastCheckpointPosition. It must be called before the first call to Next to have any effect.
func (r *SegmentSequentialReader) SetCheckpoint(position int64, writeOrderID int64) {
	r.lastCheckpointPosition = position
	r.lastCheckpointWriteOrderID = writeOrderID
}

// SkipToLastCheckpointPosition fast-forwards the cursor to the last known checkpoint if that checkpoint is not
// newer than requestedWoid. Otherwise the cursor is left unchanged and the caller must replay from the start.
func (r *SegmentSequentialReader) SkipToLastCheckpointPosition(requestedWoid int64) {
	if r.lastCheckpointPosition > 0 && r.lastCheckpointWriteOrderID <= requestedWoid {
		r.offset = r.lastCheckpointPosition
		return
	}
	log.Printf(
		"WARNING: segment %q checkpoint write-order-id %d is ahead of requested %d at position %d, replaying from current position\n",
		r.filePath, r.lastCheckpointWriteOrderID, requestedWoid, r.lastCheckpointPosition,
	)
}

// Next reads the next frame. ok is false both on a clean logical end of stream (OP_EOF, a genuine io.EOF, or an
// unexpected op byte, all logged and treated as a signal to stop replay) and on a hard decode error, which is
// returned in err. Callers should stop replaying either way; err distinguishes "clean stop" (nil) from
// "something needs attention" (non-nil).
func (r *SegmentSequentialReader) Next() (LogRecord, bool, error) {
	if r.offset > DefaultMaxFileSize {
		log.Printf("WARNING: segment %q position %d exceeds DefaultMaxFileSize\n", r.filePath, r.offset)
	}

	offset := r.offset
	var opBuf [1]byte
	if _, err := r.file.ReadAt(opBuf[:], offset); err != nil {
		if errors.Is(err, io.EOF) {
			return LogRecord{}, false, nil
		}
		return LogRecord{}, false, fmt.Errorf("reading op byte at offset %d in %q: %w", offset, r.filePath, ioError(err))
	}

	op := int8(opBuf[0])
	if op == OpEOF {
		log.Printf("segment %q: reached preallocated tail at offset %d\n", r.filePath, offset)
		return LogRecord{}, false, nil
	}
	if op != OpRecord {
		CorruptionTotal.Inc()
		log.Printf("ERROR: segment %q: unexpected op byte 0x%02x at offset %d, stopping replay\n", r.filePath, opBuf[0], offset)
		return LogRecord{}, false, nil
	}

	section := newOffsetReader(r.file, offset+1)
	rec, consumed, err := r.codec.DecodeRecord(section)
	if err != nil {
		return LogRecord{}, false, fmt.Errorf("decoding record at offset %d in %q: %w", offset, r.filePath, ioError(err))
	}

	r.offset = offset + 1 + int64(consumed)
	return LogRecord{Offset: offset, Record: rec}, true, nil
}

// Close closes the underlying file handle.
func (r *SegmentSequentialReader) Close() error {
	return r.file.Close()
}
