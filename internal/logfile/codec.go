package logfile

import (
	"fmt"
	"io"
	"os"
)

// Codec encodes and decodes the version-specific payload of OP_RECORD frames and the version-specific metadata
// sidecar layout. Versions differ only in these two concerns; the OP_RECORD/OP_EOF framing itself never changes,
// which is why writers and readers are generic over a Codec instead of being subclassed per version.
type Codec interface {
	// Version reports the header version this codec implements.
	Version() uint16

	// EncodeRecord returns the wire representation of rec, not including the leading op byte.
	EncodeRecord(rec TransactionRecord) ([]byte, error)

	// DecodeRecord reads a single record from reader, returning the number of bytes consumed. reader is bounded
	// to the remaining bytes of the segment so a truncated record surfaces as io.ErrUnexpectedEOF instead of
	// running past the end of the file.
	DecodeRecord(reader io.Reader) (TransactionRecord, int, error)

	// MetadataRecordSize is the fixed size in bytes of one metadata slot for this version.
	MetadataRecordSize() int

	// EncodeMetadata serializes one checkpoint slot.
	EncodeMetadata(generation uint64, position int64, writeOrderID int64) []byte

	// DecodeMetadata deserializes and validates one checkpoint slot. ok is false when the slot fails its
	// integrity check (e.g. it was never written, or a crash tore the write).
	DecodeMetadata(data []byte) (generation uint64, position int64, writeOrderID int64, ok bool)
}

// GetCodec returns the codec implementation bound to a header version. It is the single place version dispatch
// happens: everything above this layer works purely in terms of the Codec interface.
func GetCodec(version uint16) (Codec, error) {
	switch version {
	case 1:
		return codecV1{}, nil
	default:
		return nil, ErrUnsupportedVersion
	}
}

// DefaultVersion is the version new segments are created with.
const DefaultVersion uint16 = 1

// DetectCodec inspects logFileID's metadata sidecar in directory to determine which codec version it was written
// with, since segment files themselves carry no version tag. A segment with no sidecar yet (nothing has ever
// been checkpointed for it) is assumed to be freshly created with the default version.
func DetectCodec(directory string, logFileID int32) (Codec, error) {
	path := metadataFilePath(directory, logFileID)
	file, err := os.OpenFile(path, os.O_RDONLY, 0) //nolint:gosec // library caller owns path validation.
	if err != nil {
		if os.IsNotExist(err) {
			return GetCodec(DefaultVersion)
		}
		return nil, fmt.Errorf("opening metadata file %q: %w", path, err)
	}
	defer file.Close()

	var buffer [MetadataHeaderSize]byte
	header, err := ReadMetadataHeader(file, buffer[:])
	if err != nil {
		return nil, err
	}
	return GetCodec(header.Version)
}
