package logfile

import intlogfile "github.com/riverlog/eventlog/internal/logfile"

var (
	// ErrStateClosed is returned when an operation is attempted on a writer or reader which has already been closed.
	ErrStateClosed = intlogfile.ErrStateClosed

	// ErrOffsetOverflow is returned when an append would push the segment position past the 32-bit offset ceiling.
	ErrOffsetOverflow = intlogfile.ErrOffsetOverflow

	// ErrUnexpectedRecordKind is returned when a random read resolves to a transaction record which is not a PUT.
	ErrUnexpectedRecordKind = intlogfile.ErrUnexpectedRecordKind

	// ErrUnsupportedVersion is returned by the version dispatch when no codec is registered for a header version.
	ErrUnsupportedVersion = intlogfile.ErrUnsupportedVersion

	// ErrIO tags any error which originated from the underlying storage.
	ErrIO = intlogfile.ErrIO
)

// CorruptionError is returned by the random reader when the op byte at the requested offset is not OP_RECORD.
type CorruptionError = intlogfile.CorruptionError
