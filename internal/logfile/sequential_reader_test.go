package logfile_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/riverlog/eventlog/internal/logfile"
)

var _ = Describe("SegmentSequentialReader", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "test-sequential-reader-*")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should stop cleanly reading an empty segment", func() {
		writer, err := logfile.CreateSegment(dir, 0, logfile.DefaultMaxFileSize)
		Expect(err).ToNot(HaveOccurred())
		Expect(writer.Close()).To(Succeed())

		reader, err := logfile.OpenSegmentSequentialReader(writer.FilePath())
		Expect(err).ToNot(HaveOccurred())
		defer func() {
			Expect(reader.Close()).To(Succeed())
		}()

		_, ok, err := reader.Next()
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("should replay every record in order", func() {
		writer, err := logfile.CreateSegment(dir, 0, logfile.DefaultMaxFileSize)
		Expect(err).ToNot(HaveOccurred())

		Expect(writer.Put(logfile.TransactionRecord{TransactionID: 1, LogWriteOrderID: 1, Event: []byte("foo")})).
			Error().ToNot(HaveOccurred())
		Expect(writer.Take(logfile.TransactionRecord{
			TransactionID:   2,
			LogWriteOrderID: 2,
			TakePointer:     logfile.EventPointer{LogFileID: 0, Offset: 0},
		})).To(Succeed())
		Expect(writer.Commit(logfile.TransactionRecord{TransactionID: 2, LogWriteOrderID: 3})).To(Succeed())
		Expect(writer.Close()).To(Succeed())

		reader, err := logfile.OpenSegmentSequentialReader(writer.FilePath())
		Expect(err).ToNot(HaveOccurred())
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

	It("should stop cleanly on the preallocated tail", func() {
		writer, err := logfile.CreateSegment(dir, 0, logfile.DefaultMaxFileSize)
		Expect(err).ToNot(HaveOccurred())
		Expect(writer.Put(logfile.TransactionRecord{TransactionID: 1, LogWriteOrderID: 1, Event: []byte("foo")})).
			Error().ToNot(HaveOccurred())
		Expect(writer.Close()).To(Succeed())

		reader, err := logfile.OpenSegmentSequentialReader(writer.FilePath())
		Expect(err).ToNot(HaveOccurred())
		defer func() {
			Expect(reader.Close()).To(Succeed())
		}()

		_, ok, err := reader.Next()
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeTrue())

		_, ok, err = reader.Next()
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("should fast-forward to the last checkpoint when it is not ahead of the request", func() {
		writer, err := logfile.CreateSegment(dir, 0, logfile.DefaultMaxFileSize)
		Expect(err).ToNot(HaveOccurred())
		Expect(writer.Put(logfile.TransactionRecord{TransactionID: 1, LogWriteOrderID: 1, Event: []byte("foo")})).
			Error().ToNot(HaveOccurred())
		checkpoint := writer.Position()
		Expect(writer.Put(logfile.TransactionRecord{TransactionID: 2, LogWriteOrderID: 2, Event: []byte("bar")})).
			Error().ToNot(HaveOccurred())
		Expect(writer.Close()).To(Succeed())

		reader, err := logfile.OpenSegmentSequentialReader(writer.FilePath())
		Expect(err).ToNot(HaveOccurred())
		defer func() {
			Expect(reader.Close()).To(Succeed())
		}()

		reader.SetCheckpoint(checkpoint, 1)
		reader.SkipToLastCheckpointPosition(1)
		Expect(reader.Offset()).To(Equal(checkpoint))

		record, ok, err := reader.Next()
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(record.Record.TransactionID).To(Equal(int64(2)))
	})

	It("should retain the current position when the checkpoint is ahead of the request", func() {
		writer, err := logfile.CreateSegment(dir, 0, logfile.DefaultMaxFileSize)
		Expect(err).ToNot(HaveOccurred())
		Expect(writer.Put(logfile.TransactionRecord{TransactionID: 1, LogWriteOrderID: 1, Event: []byte("foo")})).
			Error().ToNot(HaveOccurred())
		checkpoint := writer.Position()
		Expect(writer.Close()).To(Succeed())

		reader, err := logfile.OpenSegmentSequentialReader(writer.FilePath())
		Expect(err).ToNot(HaveOccurred())
		defer func() {
			Expect(reader.Close()).To(Succeed())
		}()

		reader.SetCheckpoint(checkpoint, 100)
		reader.SkipToLastCheckpointPosition(1)
		Expect(reader.Offset()).To(Equal(int64(0)))
	})
})
