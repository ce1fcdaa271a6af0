package logfile

import intlogfile "github.com/riverlog/eventlog/internal/logfile"

// RecordType identifies the variant of a TransactionRecord.
type RecordType = intlogfile.RecordType

const (
	RecordTypePut      = intlogfile.RecordTypePut
	RecordTypeTake     = intlogfile.RecordTypeTake
	RecordTypeRollback = intlogfile.RecordTypeRollback
	RecordTypeCommit   = intlogfile.RecordTypeCommit
)

// EventPointer identifies a PUT frame's first byte within a segment.
type EventPointer = intlogfile.EventPointer

// TransactionRecord is the tagged union stored in every OP_RECORD frame.
type TransactionRecord = intlogfile.TransactionRecord
