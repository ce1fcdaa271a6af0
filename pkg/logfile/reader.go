package logfile

import intlogfile "github.com/riverlog/eventlog/internal/logfile"

// SegmentRandomReader retrieves a single PUT event by its byte offset within a segment.
type SegmentRandomReader = intlogfile.SegmentRandomReader

// OpenSegmentRandomReader opens filePath for random reads.
var OpenSegmentRandomReader = intlogfile.OpenSegmentRandomReader

// RandomReaderPoolCapacity bounds the number of concurrently open read handles per segment.
const RandomReaderPoolCapacity = intlogfile.RandomReaderPoolCapacity

// SegmentSequentialReader is a single-threaded, single-use cursor over a segment.
type SegmentSequentialReader = intlogfile.SegmentSequentialReader

// SegmentReaderFile is the subset of *os.File the sequential reader needs, exposed for tests that supply their
// own stand-in.
type SegmentReaderFile = intlogfile.SegmentReaderFile

// LogRecord pairs a decoded transaction record with the offset its frame started at.
type LogRecord = intlogfile.LogRecord

// OpenSegmentSequentialReader opens filePath for sequential replay.
var OpenSegmentSequentialReader = intlogfile.OpenSegmentSequentialReader

// NewSegmentSequentialReader binds a SegmentSequentialReader to an already-open file.
var NewSegmentSequentialReader = intlogfile.NewSegmentSequentialReader
