package logfile

import intlogfile "github.com/riverlog/eventlog/internal/logfile"

// GetSegments returns the logFileIDs present in directory, sorted in ascending order.
var GetSegments = intlogfile.GetSegments

// LatestSegment returns the highest logFileID present in directory, and false if directory holds no segments.
var LatestSegment = intlogfile.LatestSegment
