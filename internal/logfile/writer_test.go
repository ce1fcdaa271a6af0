package logfile_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/riverlog/eventlog/internal/logfile"
	"github.com/riverlog/eventlog/internal/utils"
)

var _ = Describe("SegmentWriter", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "test-segment-writer-*")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should create a new segment file", func() {
		entriesBefore, err := os.ReadDir(dir)
		Expect(err).ToNot(HaveOccurred())

		writer, err := logfile.CreateSegment(dir, 0, logfile.DefaultMaxFileSize)
		Expect(err).ToNot(HaveOccurred())
		defer func() {
			Expect(writer.Close()).To(Succeed())
		}()

		entriesAfter, err := os.ReadDir(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(entriesAfter).To(HaveLen(len(entriesBefore) + 1))
	})

	It("should reject a negative logFileID", func() {
		Expect(logfile.CreateSegment(dir, -1, logfile.DefaultMaxFileSize)).Error().To(MatchError(logfile.ErrInvalidLogFileID))
	})

	It("should advance the position monotonically as records are appended", func() {
		writer, err := logfile.CreateSegment(dir, 0, logfile.DefaultMaxFileSize)
		Expect(err).ToNot(HaveOccurred())
		defer func() {
			Expect(writer.Close()).To(Succeed())
		}()

		Expect(writer.Position()).To(Equal(int64(0)))

		pointer, err := writer.Put(logfile.TransactionRecord{TransactionID: 1, LogWriteOrderID: 1, Event: []byte("foo")})
		Expect(err).ToNot(HaveOccurred())
		Expect(pointer.LogFileID).To(Equal(int32(0)))
		Expect(pointer.Offset).To(Equal(int32(0)))

		afterFirst := writer.Position()
		Expect(afterFirst).To(BeNumerically(">", 0))

		Expect(writer.Take(logfile.TransactionRecord{
			TransactionID:   2,
			LogWriteOrderID: 2,
			TakePointer:     logfile.EventPointer{LogFileID: 0, Offset: pointer.Offset},
		})).To(Succeed())
		Expect(writer.Position()).To(BeNumerically(">", afterFirst))
	})

	It("should reject appends once closed", func() {
		writer, err := logfile.CreateSegment(dir, 0, logfile.DefaultMaxFileSize)
		Expect(err).ToNot(HaveOccurred())
		Expect(writer.Close()).To(Succeed())

		Expect(writer.Put(logfile.TransactionRecord{TransactionID: 1, LogWriteOrderID: 1, Event: []byte("foo")})).
			Error().To(MatchError(logfile.ErrStateClosed))
	})

	It("should report when a record would exceed the configured maximum file size", func() {
		writer, err := logfile.NewSegmentWriter(&utils.SegmentWriterFileDiscard{}, "in-memory", 0, mustCodec(), 0, 32)
		Expect(err).ToNot(HaveOccurred())
		defer func() {
			Expect(writer.Close()).To(Succeed())
		}()

		required, err := writer.IsRollRequired(logfile.TransactionRecord{
			TransactionID:   1,
			LogWriteOrderID: 1,
			Event:           make([]byte, 64),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(required).To(BeTrue())
	})

	It("should clamp an oversized maxFileSize down to DefaultMaxFileSize", func() {
		writer, err := logfile.NewSegmentWriter(&utils.SegmentWriterFileDiscard{}, "in-memory", 0, mustCodec(), 0, logfile.DefaultMaxFileSize*2)
		Expect(err).ToNot(HaveOccurred())
		defer func() {
			Expect(writer.Close()).To(Succeed())
		}()

		required, err := writer.IsRollRequired(logfile.TransactionRecord{
			TransactionID:   1,
			LogWriteOrderID: 1,
			Event:           make([]byte, int(logfile.DefaultMaxFileSize)),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(required).To(BeTrue())
	})
})

func mustCodec() logfile.Codec {
	codec, err := logfile.GetCodec(logfile.DefaultVersion)
	Expect(err).ToNot(HaveOccurred())
	return codec
}
