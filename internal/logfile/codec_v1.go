package logfile

import (
	"fmt"
	"hash/crc32"
	"io"
)

// codecV1 implements the version-1 wire format:
//
//	transactionID:i64 logWriteOrderID:i64 recordType:i16 body
//
// where body is empty for ROLLBACK/COMMIT, the (logFileID:i32, offset:i32) pointer for TAKE, and the header map
// followed by the event bytes for PUT.
type codecV1 struct{}

var _ Codec = codecV1{}

func (codecV1) Version() uint16 {
	return 1
}

const v1RecordPrefixSize = 8 + 8 + 2 // transactionID + logWriteOrderID + recordType

func (codecV1) EncodeRecord(rec TransactionRecord) ([]byte, error) {
	body, err := encodeV1Body(rec)
	if err != nil {
		return nil, err
	}

	buffer := make([]byte, v1RecordPrefixSize+len(body))
	Endian.PutUint64(buffer[0:8], uint64(rec.TransactionID))
	Endian.PutUint64(buffer[8:16], uint64(rec.LogWriteOrderID))
	Endian.PutUint16(buffer[16:18], uint16(rec.Type)) //nolint:gosec // RecordType is one of a small enum.
	copy(buffer[v1RecordPrefixSize:], body)
	return buffer, nil
}

func encodeV1Body(rec TransactionRecord) ([]byte, error) {
	switch rec.Type {
	case RecordTypePut:
		return encodeV1Put(rec), nil
	case RecordTypeTake:
		buffer := make([]byte, 8)
		Endian.PutUint32(buffer[0:4], uint32(rec.TakePointer.LogFileID)) //nolint:gosec // validated non-negative elsewhere.
		Endian.PutUint32(buffer[4:8], uint32(rec.TakePointer.Offset))    //nolint:gosec // validated non-negative elsewhere.
		return buffer, nil
	case RecordTypeRollback, RecordTypeCommit:
		return nil, nil
	default:
		return nil, fmt.Errorf("logfile: unknown record type %d", rec.Type)
	}
}

func encodeV1Put(rec TransactionRecord) []byte {
	size := 2
	for key, value := range rec.Headers {
		size += 2 + len(key) + 4 + len(value)
	}
	size += 4 + len(rec.Event)

	buffer := make([]byte, size)
	offset := 0
	Endian.PutUint16(buffer[offset:offset+2], uint16(len(rec.Headers))) //nolint:gosec // header maps are small in practice.
	offset += 2
	for key, value := range rec.Headers {
		Endian.PutUint16(buffer[offset:offset+2], uint16(len(key))) //nolint:gosec // header keys are short.
		offset += 2
		offset += copy(buffer[offset:], key)
		Endian.PutUint32(buffer[offset:offset+4], uint32(len(value))) //nolint:gosec // header values fit in 32 bits.
		offset += 4
		offset += copy(buffer[offset:], value)
	}
	Endian.PutUint32(buffer[offset:offset+4], uint32(len(rec.Event))) //nolint:gosec // event length fits in 32 bits by construction.
	offset += 4
	copy(buffer[offset:], rec.Event)
	return buffer
}

func (codecV1) DecodeRecord(reader io.Reader) (TransactionRecord, int, error) {
	var prefix [v1RecordPrefixSize]byte
	if _, err := io.ReadFull(reader, prefix[:]); err != nil {
		return TransactionRecord{}, 0, fmt.Errorf("reading record prefix: %w", err)
	}

	rec := TransactionRecord{
		TransactionID:   int64(Endian.Uint64(prefix[0:8])),
		LogWriteOrderID: int64(Endian.Uint64(prefix[8:16])),
		Type:            RecordType(Endian.Uint16(prefix[16:18])),
	}

	bodyLen, err := decodeV1Body(reader, &rec)
	if err != nil {
		return TransactionRecord{}, 0, err
	}
	return rec, v1RecordPrefixSize + bodyLen, nil
}

func decodeV1Body(reader io.Reader, rec *TransactionRecord) (int, error) {
	switch rec.Type {
	case RecordTypePut:
		return decodeV1Put(reader, rec)
	case RecordTypeTake:
		var buffer [8]byte
		if _, err := io.ReadFull(reader, buffer[:]); err != nil {
			return 0, fmt.Errorf("reading take pointer: %w", err)
		}
		rec.TakePointer = EventPointer{
			LogFileID: int32(Endian.Uint32(buffer[0:4])), //nolint:gosec // round trip of the value written above.
			Offset:    int32(Endian.Uint32(buffer[4:8])), //nolint:gosec // round trip of the value written above.
		}
		return 8, nil
	case RecordTypeRollback, RecordTypeCommit:
		return 0, nil
	default:
		return 0, fmt.Errorf("logfile: unknown record type %d", rec.Type)
	}
}

func decodeV1Put(reader io.Reader, rec *TransactionRecord) (int, error) {
	consumed := 0

	var headerCountBuf [2]byte
	if _, err := io.ReadFull(reader, headerCountBuf[:]); err != nil {
		return consumed, fmt.Errorf("reading header count: %w", err)
	}
	consumed += 2
	headerCount := Endian.Uint16(headerCountBuf[:])

	if headerCount > 0 {
		rec.Headers = make(map[string]string, headerCount)
	}
	for range headerCount {
		var lenBuf [4]byte
		if _, err := io.ReadFull(reader, lenBuf[:2]); err != nil {
			return consumed, fmt.Errorf("reading header key length: %w", err)
		}
		consumed += 2
		key := make([]byte, Endian.Uint16(lenBuf[:2]))
		if _, err := io.ReadFull(reader, key); err != nil {
			return consumed, fmt.Errorf("reading header key: %w", err)
		}
		consumed += len(key)

		if _, err := io.ReadFull(reader, lenBuf[:4]); err != nil {
			return consumed, fmt.Errorf("reading header value length: %w", err)
		}
		consumed += 4
		value := make([]byte, Endian.Uint32(lenBuf[:4]))
		if _, err := io.ReadFull(reader, value); err != nil {
			return consumed, fmt.Errorf("reading header value: %w", err)
		}
		consumed += len(value)

		rec.Headers[string(key)] = string(value)
	}

	var eventLenBuf [4]byte
	if _, err := io.ReadFull(reader, eventLenBuf[:]); err != nil {
		return consumed, fmt.Errorf("reading event length: %w", err)
	}
	consumed += 4
	event := make([]byte, Endian.Uint32(eventLenBuf[:]))
	if _, err := io.ReadFull(reader, event); err != nil {
		return consumed, fmt.Errorf("reading event: %w", err)
	}
	consumed += len(event)
	rec.Event = event

	return consumed, nil
}

// v1MetadataRecordSize is generation(8) + position(8) + writeOrderID(8) + crc32 checksum(4).
const v1MetadataRecordSize = 8 + 8 + 8 + 4

func (codecV1) MetadataRecordSize() int {
	return v1MetadataRecordSize
}

func (codecV1) EncodeMetadata(generation uint64, position int64, writeOrderID int64) []byte {
	buffer := make([]byte, v1MetadataRecordSize)
	Endian.PutUint64(buffer[0:8], generation)
	Endian.PutUint64(buffer[8:16], uint64(position))
	Endian.PutUint64(buffer[16:24], uint64(writeOrderID))
	Endian.PutUint32(buffer[24:28], crc32.ChecksumIEEE(buffer[0:24]))
	return buffer
}

func (codecV1) DecodeMetadata(data []byte) (uint64, int64, int64, bool) {
	if len(data) < v1MetadataRecordSize {
		return 0, 0, 0, false
	}
	checksum := Endian.Uint32(data[24:28])
	if checksum != crc32.ChecksumIEEE(data[0:24]) {
		return 0, 0, 0, false
	}
	generation := Endian.Uint64(data[0:8])
	position := int64(Endian.Uint64(data[8:16]))
	writeOrderID := int64(Endian.Uint64(data[16:24]))
	return generation, position, writeOrderID, true
}
