package logfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/riverlog/eventlog/internal/pool"
)

// RandomReaderPoolCapacity bounds the number of concurrently open read handles per segment.
const RandomReaderPoolCapacity = 50

// SegmentRandomReader retrieves a single PUT event by its byte offset within a segment. It maintains a bounded,
// fair pool of read-only handles so that many concurrent readers of the same segment do not race on a shared
// file position; every operation on a checked-out handle is serialized by construction because a handle is
// owned by exactly one goroutine at a time.
type SegmentRandomReader struct {
	filePath  string
	logFileID int32
	codec     Codec
	handles   *pool.FilePool

	open atomic.Bool
}

// OpenSegmentRandomReader opens filePath for random reads. The codec is determined by inspecting the segment's
// metadata sidecar, since the segment file itself carries no version tag.
func OpenSegmentRandomReader(filePath string) (*SegmentRandomReader, error) {
	directory := filepath.Dir(filePath)
	logFileID, err := parseSegmentFileName(filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	codec, err := DetectCodec(directory, logFileID)
	if err != nil {
		return nil, err
	}

	reader := &SegmentRandomReader{
		filePath:  filePath,
		logFileID: logFileID,
		codec:     codec,
	}
	reader.handles = pool.New(RandomReaderPoolCapacity, func() (*os.File, error) {
		return os.OpenFile(filePath, os.O_RDONLY, 0) //nolint:gosec // filePath is derived from segment naming, not user input.
	})
	reader.open.Store(true)
	return reader, nil
}

// LogFileID returns the logFileID this reader's segment is identified by.
func (r *SegmentRandomReader) LogFileID() int32 {
	return r.logFileID
}

// Get retrieves the event embedded in the PUT frame starting at offset. On any error the checked-out handle is
// discarded instead of returned to the pool, since the underlying descriptor may be in an unknown state.
func (r *SegmentRandomReader) Get(offset int32) ([]byte, error) {
	if !r.open.Load() {
		return nil, ErrStateClosed
	}

	waitStart := time.Now()
	handle, err := r.handles.Checkout()
	PoolWaitDuration.Observe(time.Since(waitStart).Seconds())
	if err != nil {
		if errors.Is(err, pool.ErrClosed) {
			return nil, ErrStateClosed
		}
		return nil, ioError(err)
	}

	event, err := r.get(handle, offset)
	if err != nil {
		r.handles.Discard(handle)
		return nil, err
	}
	r.handles.Return(handle)
	return event, nil
}

func (r *SegmentRandomReader) get(handle *os.File, offset int32) ([]byte, error) {
	var opBuf [1]byte
	if _, err := handle.ReadAt(opBuf[:], int64(offset)); err != nil {
		return nil, fmt.Errorf("reading op byte at offset %d: %w", offset, ioError(err))
	}

	op := int8(opBuf[0])
	if op != OpRecord {
		CorruptionTotal.Inc()
		return nil, &CorruptionError{Op: opBuf[0]}
	}

	section := newOffsetReader(handle, int64(offset)+1)
	rec, _, err := r.codec.DecodeRecord(section)
	if err != nil {
		return nil, fmt.Errorf("decoding record at offset %d: %w", offset, ioError(err))
	}
	if rec.Type != RecordTypePut {
		return nil, ErrUnexpectedRecordKind
	}
	return rec.Event, nil
}

// Close flips the reader to closed and drains the handle pool. In-flight Get calls either observe the closed
// flag before checkout and fail immediately, or complete and have their handle closed on return/discard.
func (r *SegmentRandomReader) Close() error {
	if !r.open.CompareAndSwap(true, false) {
		return nil
	}
	return r.handles.Close()
}
