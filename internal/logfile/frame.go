package logfile

// OpRecord marks a frame carrying a transaction record.
const OpRecord int8 = 127

// OpEOF is the preallocation fill byte. A sequential reader treats it as the logical end of the stream.
const OpEOF int8 = -128

// MaxOffset is the ceiling on the logical write position. Offsets are persisted as signed 32-bit integers, so a
// frame plus its op byte must never push the logical position past this ceiling.
const MaxOffset = 1<<31 - 1

// DefaultMaxFileSize is the largest segment size the writer will accept, chosen to stay comfortably below the
// 32-bit offset ceiling.
const DefaultMaxFileSize int64 = 2146435071
