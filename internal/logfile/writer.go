package logfile

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/riverlog/eventlog/internal/utils"
)

// SegmentWriterFile is the subset of *os.File the segment writer needs. Positional writes are used throughout so
// that preallocation never has to touch, and never races with, the writer's logical position.
type SegmentWriterFile interface {
	io.Closer
	WriteAt(p []byte, off int64) (int, error)
	Sync() error
}

// SegmentWriter owns the write handle of one active segment. It serializes appends under its own lock, enforces
// the 32-bit offset ceiling, and flushes to stable storage on Commit. The configured maximum segment size is only
// reported through IsRollRequired; appends past it are not refused.
//
// A SegmentWriter is safe to use from multiple goroutines; every operation is serialized under an internal lock.
// Exactly one SegmentWriter must exist per segment file at a time; this type does not enforce that itself, the
// caller must.
type SegmentWriter struct {
	noCopy utils.NoCopy
	mutex  sync.Mutex

	file        SegmentWriterFile
	filePath    string
	logFileID   int32
	codec       Codec
	maxFileSize int64

	position int64 // logical write position, monotonically non-decreasing
	fileSize int64 // bytes actually allocated on disk, always >= position

	open bool
}

// CreateSegment creates a new segment file in directory. Segment files carry no header of their own: a fresh,
// empty file is already a fully valid segment, its frame stream starting at offset 0, so there is no partially
// written state a reader could ever observe and no temp-file-plus-rename dance is needed.
func CreateSegment(directory string, logFileID int32, maxFileSize int64) (*SegmentWriter, error) {
	if logFileID < 0 {
		return nil, ErrInvalidLogFileID
	}

	finalPath := filepath.Join(directory, segmentFileName(logFileID))

	file, err := os.OpenFile(finalPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644) //nolint:gosec // library caller owns path validation.
	if err != nil {
		return nil, fmt.Errorf("creating segment file %q: %w", finalPath, err)
	}

	codec, err := GetCodec(DefaultVersion)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return NewSegmentWriter(file, finalPath, logFileID, codec, 0, maxFileSize)
}

// NewSegmentWriter binds a SegmentWriter to an already-open file, positioned at offset. It is exported so tests
// can supply in-memory stand-ins for SegmentWriterFile.
func NewSegmentWriter(file SegmentWriterFile, filePath string, logFileID int32, codec Codec, offset int64, maxFileSize int64) (*SegmentWriter, error) {
	return &SegmentWriter{
		file:        file,
		filePath:    filePath,
		logFileID:   logFileID,
		codec:       codec,
		maxFileSize: min(maxFileSize, DefaultMaxFileSize),
		position:    offset,
		fileSize:    offset,
		open:        true,
	}, nil
}

// OpenSegmentWriter reopens an existing segment file for further appends, resuming at offset (typically the
// position a sequential reader reached during replay). codec is determined by the caller ahead of time, usually
// via DetectCodec against the segment's metadata sidecar, since the segment file itself carries no version tag.
// Unlike CreateSegment/NewSegmentWriter, the on-disk file size is taken from the file itself rather than assumed
// to equal offset, since a previously written segment may already carry a preallocated OP_EOF tail past offset.
func OpenSegmentWriter(directory string, logFileID int32, codec Codec, offset int64, maxFileSize int64) (*SegmentWriter, error) {
	finalPath := filepath.Join(directory, segmentFileName(logFileID))

	file, err := os.OpenFile(finalPath, os.O_RDWR, 0o644) //nolint:gosec // library caller owns path validation.
	if err != nil {
		return nil, fmt.Errorf("opening segment file %q: %w", finalPath, err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("statting segment file %q: %w", finalPath, err)
	}

	return &SegmentWriter{
		file:        file,
		filePath:    finalPath,
		logFileID:   logFileID,
		codec:       codec,
		maxFileSize: min(maxFileSize, DefaultMaxFileSize),
		position:    offset,
		fileSize:    stat.Size(),
		open:        true,
	}, nil
}

// FilePath returns the file path of the file this writer is writing to.
func (w *SegmentWriter) FilePath() string {
	return w.filePath
}

// LogFileID returns the logFileID this writer's segment is identified by.
func (w *SegmentWriter) LogFileID() int32 {
	return w.logFileID
}

// Position returns the current logical write position.
func (w *SegmentWriter) Position() int64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.position
}

// Put appends a PUT record and returns the event pointer to its first byte.
func (w *SegmentWriter) Put(rec TransactionRecord) (EventPointer, error) {
	rec.Type = RecordTypePut
	offset, err := w.appendRecord(rec)
	if err != nil {
		return EventPointer{}, err
	}
	return EventPointer{LogFileID: w.logFileID, Offset: int32(offset)}, nil //nolint:gosec // offset was validated against MaxOffset in appendRecord.
}

// Take appends a TAKE record referencing an earlier PUT. TAKE frames carry their own back-pointer, so unlike
// Put there is nothing useful to return.
func (w *SegmentWriter) Take(rec TransactionRecord) error {
	rec.Type = RecordTypeTake
	_, err := w.appendRecord(rec)
	return err
}

// Rollback appends a ROLLBACK record.
func (w *SegmentWriter) Rollback(rec TransactionRecord) error {
	rec.Type = RecordTypeRollback
	_, err := w.appendRecord(rec)
	return err
}

// Commit appends a COMMIT record and then flushes every byte written so far, not just the commit frame itself,
// to stable storage. put/take/rollback stay in the page cache so a batch of operations amortizes one fsync.
func (w *SegmentWriter) Commit(rec TransactionRecord) error {
	rec.Type = RecordTypeCommit
	if _, err := w.appendRecord(rec); err != nil {
		return err
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("flushing segment file %q: %w", w.filePath, ioError(err))
	}
	return nil
}

// IsRollRequired reports whether appending rec would push the segment past its configured maximum size. The
// writer never rolls over on its own; the caller must check this before every append and create a new segment
// when it returns true.
func (w *SegmentWriter) IsRollRequired(rec TransactionRecord) (bool, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.open {
		return false, nil
	}
	payload, err := w.codec.EncodeRecord(rec)
	if err != nil {
		return false, err
	}
	return w.position+int64(1+len(payload)) > w.maxFileSize, nil
}

func (w *SegmentWriter) appendRecord(rec TransactionRecord) (int64, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.open {
		return 0, ErrStateClosed
	}

	payload, err := w.codec.EncodeRecord(rec)
	if err != nil {
		return 0, err
	}

	frameLen := int64(1 + len(payload))
	if w.position+frameLen > MaxOffset {
		return 0, ErrOffsetOverflow
	}

	newFileSize, err := preallocate(w.file, w.fileSize, w.position+frameLen)
	if err != nil {
		return 0, err
	}
	w.fileSize = newFileSize

	frame := make([]byte, frameLen)
	frame[0] = byte(OpRecord)
	copy(frame[1:], payload)

	n, err := w.file.WriteAt(frame, w.position)
	if err != nil {
		return 0, fmt.Errorf("writing frame to segment file %q: %w", w.filePath, ioError(err))
	}
	if int64(n) != frameLen {
		return 0, fmt.Errorf("writing frame to segment file %q: %w", w.filePath, ioError(io.ErrShortWrite))
	}

	offset := w.position
	w.position += frameLen
	return offset, nil
}

// Close flushes data and metadata and releases the file handle. It is idempotent and best-effort: I/O errors
// during close are logged, not surfaced, so closing always makes progress.
func (w *SegmentWriter) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.open {
		return nil
	}
	w.open = false

	if err := w.file.Sync(); err != nil {
		log.Printf("WARNING: flushing segment file %q on close: %s\n", w.filePath, err)
	}
	if err := w.file.Close(); err != nil {
		log.Printf("WARNING: closing segment file %q: %s\n", w.filePath, err)
	}
	return nil
}

func segmentFileName(logFileID int32) string {
	return fmt.Sprintf("%010d.seg", logFileID)
}

func metadataFileName(logFileID int32) string {
	return fmt.Sprintf("%010d.meta", logFileID)
}
