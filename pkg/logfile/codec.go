package logfile

import intlogfile "github.com/riverlog/eventlog/internal/logfile"

// Codec binds a segment header version to concrete record and metadata encodings.
type Codec = intlogfile.Codec

// GetCodec resolves the Codec registered for version.
var GetCodec = intlogfile.GetCodec

// DetectCodec inspects a segment's metadata sidecar to determine which codec it was written with.
var DetectCodec = intlogfile.DetectCodec

// MetadataHeader is the version-invariant prefix every metadata sidecar file starts with.
type MetadataHeader = intlogfile.MetadataHeader

// MetadataHeaderSize is the number of bytes the sidecar header occupies at offset 0 of a metadata file.
const MetadataHeaderSize = intlogfile.MetadataHeaderSize

// Magic identifies a metadata sidecar file belonging to this log family.
var Magic = intlogfile.Magic

// OpRecord and OpEOF are the two legal frame op-byte values.
const (
	OpRecord = intlogfile.OpRecord
	OpEOF    = intlogfile.OpEOF
)

// MaxOffset is the ceiling the end of a segment frame may not pass.
const MaxOffset = intlogfile.MaxOffset
