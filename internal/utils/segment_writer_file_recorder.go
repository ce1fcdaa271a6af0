package utils

import (
	"io"
	"sync"
)

// SegmentWriterFileRecorder provides a stub for a segment file which records what is written to it in memory,
// growing on demand as writes land past its current length. It implements both WriteAt and ReadAt so a single
// value can serve as the file behind a SegmentWriter and then be read back through a SegmentReaderFile without
// copying to disk.
type SegmentWriterFileRecorder struct {
	mutex sync.Mutex
	data  []byte
}

func (s *SegmentWriterFileRecorder) WriteAt(p []byte, off int64) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	end := off + int64(len(p))
	if end > int64(len(s.data)) {
		grown := make([]byte, end)
		copy(grown, s.data)
		s.data = grown
	}
	copy(s.data[off:end], p)
	return len(p), nil
}

func (s *SegmentWriterFileRecorder) ReadAt(p []byte, off int64) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if off >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (s *SegmentWriterFileRecorder) Close() error {
	return nil
}

func (s *SegmentWriterFileRecorder) Sync() error {
	return nil
}

// Bytes returns the data recorded so far.
func (s *SegmentWriterFileRecorder) Bytes() []byte {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.data
}
