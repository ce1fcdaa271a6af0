package logfile

import intlogfile "github.com/riverlog/eventlog/internal/logfile"

// MetadataWriter maintains the checkpoint sidecar file for one segment.
type MetadataWriter = intlogfile.MetadataWriter

// CreateMetadataWriter creates (or truncates) the sidecar file for logFileID in directory.
var CreateMetadataWriter = intlogfile.CreateMetadataWriter

// OpenMetadataWriter opens an existing sidecar file.
var OpenMetadataWriter = intlogfile.OpenMetadataWriter

// ReadMetadata reads the checkpoint currently persisted in the sidecar file for logFileID.
var ReadMetadata = intlogfile.ReadMetadata
