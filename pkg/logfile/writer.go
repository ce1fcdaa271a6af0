package logfile

import intlogfile "github.com/riverlog/eventlog/internal/logfile"

// SegmentWriter owns the write handle of one active segment.
type SegmentWriter = intlogfile.SegmentWriter

// SegmentWriterFile is the subset of *os.File the segment writer needs, exposed for tests that supply their own
// stand-in.
type SegmentWriterFile = intlogfile.SegmentWriterFile

// CreateSegment creates a new segment file in directory for logFileID.
var CreateSegment = intlogfile.CreateSegment

// NewSegmentWriter binds a SegmentWriter to an already-open file.
var NewSegmentWriter = intlogfile.NewSegmentWriter

// OpenSegmentWriter reopens an existing segment file for further appends, resuming at offset.
var OpenSegmentWriter = intlogfile.OpenSegmentWriter

// DefaultMaxFileSize is the largest maxFileSize a segment writer will honor; larger values are clamped to it.
const DefaultMaxFileSize = intlogfile.DefaultMaxFileSize

// DefaultVersion is the codec version used when creating new segments.
const DefaultVersion = intlogfile.DefaultVersion
