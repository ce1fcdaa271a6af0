package logfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrMetadataInvalidMagicBytes is returned when a sidecar file's leading magic bytes do not identify it as
	// belonging to this log family.
	ErrMetadataInvalidMagicBytes = errors.New("logfile: invalid metadata magic bytes")

	// ErrInvalidLogFileID is returned when a caller supplies a negative logFileID.
	ErrInvalidLogFileID = errors.New("logfile: negative logFileID")
)

// Endian is the byte order used for every integer persisted by this package.
var Endian = binary.LittleEndian

// Magic identifies a sidecar file belonging to this log family.
var Magic = [4]byte{'E', 'L', 'O', 'G'}

// MetadataHeaderSize is the number of bytes the sidecar header occupies at offset 0 of a metadata file. Segment
// files carry no header at all; the frame stream starts at offset 0 so that a fresh segment's first frame lands
// at position 0, not after some fixed prefix.
const MetadataHeaderSize = 4 + 2

// MetadataHeader is the version-invariant prefix of a sidecar file. It exists so the version dispatch factory
// can determine which codec a segment's sidecar was written with before it has a Codec to decode anything else
// with; the checkpoint slots that follow it are version-specific and decoded by that codec.
type MetadataHeader struct {
	Magic   [4]byte
	Version uint16
}

// WriteMetadataHeader serializes header to writer. buffer must be at least MetadataHeaderSize bytes and is used
// as scratch space to avoid an allocation.
func WriteMetadataHeader(writer io.Writer, buffer []byte, header MetadataHeader) error {
	copy(buffer[:4], header.Magic[:])
	Endian.PutUint16(buffer[4:6], header.Version)
	if _, err := writer.Write(buffer[:MetadataHeaderSize]); err != nil {
		return fmt.Errorf("writing metadata header: %w", err)
	}
	return nil
}

// ReadMetadataHeader deserializes and validates the header read from reader. buffer must be at least
// MetadataHeaderSize bytes.
func ReadMetadataHeader(reader io.Reader, buffer []byte) (MetadataHeader, error) {
	if _, err := io.ReadFull(reader, buffer[:MetadataHeaderSize]); err != nil {
		return MetadataHeader{}, fmt.Errorf("reading metadata header: %w", err)
	}

	var header MetadataHeader
	copy(header.Magic[:], buffer[:4])
	header.Version = Endian.Uint16(buffer[4:6])

	if header.Magic != Magic {
		return MetadataHeader{}, ErrMetadataInvalidMagicBytes
	}
	return header, nil
}
