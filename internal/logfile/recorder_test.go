package logfile_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/riverlog/eventlog/internal/logfile"
	"github.com/riverlog/eventlog/internal/utils"
)

var _ = Describe("SegmentWriterFileRecorder", func() {
	It("round trips a segment entirely in memory, never touching disk", func() {
		recorder := &utils.SegmentWriterFileRecorder{}
		codec := mustCodec()

		writer, err := logfile.NewSegmentWriter(recorder, "in-memory", 0, codec, 0, logfile.DefaultMaxFileSize)
		Expect(err).ToNot(HaveOccurred())

		pointer, err := writer.Put(logfile.TransactionRecord{TransactionID: 1, LogWriteOrderID: 1, Event: []byte("hello")})
		Expect(err).ToNot(HaveOccurred())
		Expect(writer.Take(logfile.TransactionRecord{
			TransactionID:   2,
			LogWriteOrderID: 2,
			TakePointer:     logfile.EventPointer{LogFileID: 0, Offset: pointer.Offset},
		})).To(Succeed())
		Expect(writer.Commit(logfile.TransactionRecord{TransactionID: 2, LogWriteOrderID: 3})).To(Succeed())
		Expect(writer.Close()).To(Succeed())

		Expect(recorder.Bytes()).ToNot(BeEmpty())

		reader := logfile.NewSegmentSequentialReader(recorder, "in-memory", 0, codec, 0)
		defer func() {
			Expect(reader.Close()).To(Succeed())
		}()

		var types []logfile.RecordType
		for {
			record, ok, err := reader.Next()
			Expect(err).ToNot(HaveOccurred())
			if !ok {
				break
			}
			types = append(types, record.Record.Type)
		}
		Expect(types).To(Equal([]logfile.RecordType{
			logfile.RecordTypePut,
			logfile.RecordTypeTake,
			logfile.RecordTypeCommit,
		}))
	})
})
