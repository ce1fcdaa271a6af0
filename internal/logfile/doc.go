// Package logfile implements the segmented append-only log which backs a
// durable, transactional event channel.
//
//   - The log is made up of segment files. Every segment file is identified
//     by a non-negative logFileID and named "%010d.seg" with that ID.
//   - A segment file carries no header: byte 0 is the start of the first
//     frame. A frame is a single op byte (OP_RECORD or OP_EOF) followed by a
//     version-specific payload for OP_RECORD frames. Bytes beyond the
//     writer's logical position and up to the preallocated file size are all
//     OP_EOF.
//   - A sidecar metadata file next to each segment ("%010d.meta") starts
//     with a small header (magic, format version) identifying which codec
//     the segment was written with, followed by the last position the
//     higher layer checkpointed together with the write-order identifier
//     active at that time, so recovery can fast forward instead of
//     replaying from the start of the segment.
package logfile
