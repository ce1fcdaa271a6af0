// Package logfile provides the segment-level implementation of a durable, transactional event log.
//
//   - Records are stored in segment files identified by a non-negative logFileID. A segment is a bare stream of
//     frames starting at offset 0, followed by a preallocated tail of OP_EOF sentinel bytes; it carries no header
//     of its own.
//   - A transaction record is a tagged union of PUT, TAKE, ROLLBACK and COMMIT, each carrying a transactionID
//     and a caller-supplied monotonic logWriteOrderID.
//   - A metadata sidecar file per segment carries a small header identifying the codec version the segment was
//     written with, followed by the position and write-order-id the log has been checkpointed to, enabling
//     fast-forward recovery on restart.
//   - This package deliberately stops at the segment boundary: deciding when to roll into a new segment,
//     scheduling checkpoints, and reconstructing an in-memory event store from replayed records are the
//     responsibility of the caller.
package logfile
