package logfile

// ChunkSize is the amount a segment file is grown by every time preallocation is required. The writer always
// grows by the full chunk, even when the shortfall is smaller, to amortize inode updates and to avoid running
// out of space mid-write. Do not shrink this without benchmarking.
const ChunkSize = 1 << 20 // 1 MiB

// eofFill is a package-level, immutable sentinel buffer filled with OP_EOF. It is never mutated: preallocation
// writes it with a positional WriteAt, so no cursor or lock is needed to share it across every writer in the
// process.
var eofFill = func() [ChunkSize]byte {
	var buf [ChunkSize]byte
	op := OpEOF
	for i := range buf {
		buf[i] = byte(op)
	}
	return buf
}()

// fileWriterAt is the subset of *os.File preallocation needs.
type fileWriterAt interface {
	WriteAt(p []byte, off int64) (int, error)
}

// preallocate grows the file in ChunkSize steps, starting at fileSize, until it can hold requiredSize bytes.
// It returns the file's new size. Preallocation never advances a writer's logical position: it only extends
// the file with positional writes at the current end of file.
func preallocate(file fileWriterAt, fileSize int64, requiredSize int64) (int64, error) {
	for fileSize < requiredSize {
		if _, err := file.WriteAt(eofFill[:], fileSize); err != nil {
			return fileSize, ioError(err)
		}
		fileSize += ChunkSize
		PreallocationTotal.Inc()
	}
	return fileSize, nil
}
