package logfile_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/riverlog/eventlog/internal/logfile"
)

var _ = Describe("MetadataWriter", func() {
	var dir string
	var codec logfile.Codec

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "test-metadata-*")
		Expect(err).ToNot(HaveOccurred())
		codec, err = logfile.GetCodec(logfile.DefaultVersion)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should report a zero checkpoint before any checkpoint has been marked", func() {
		position, writeOrderID, err := logfile.ReadMetadata(dir, 0, codec)
		Expect(err).ToNot(HaveOccurred())
		Expect(position).To(BeZero())
		Expect(writeOrderID).To(BeZero())
	})

	It("should persist and read back a checkpoint", func() {
		writer, err := logfile.CreateMetadataWriter(dir, 0, codec)
		Expect(err).ToNot(HaveOccurred())

		Expect(writer.MarkCheckpoint(4096, 12)).To(Succeed())
		Expect(writer.Close()).To(Succeed())

		position, writeOrderID, err := logfile.ReadMetadata(dir, 0, codec)
		Expect(err).ToNot(HaveOccurred())
		Expect(position).To(Equal(int64(4096)))
		Expect(writeOrderID).To(Equal(int64(12)))
	})

	It("should keep the latest checkpoint readable across many successive checkpoints", func() {
		writer, err := logfile.CreateMetadataWriter(dir, 0, codec)
		Expect(err).ToNot(HaveOccurred())

		for i := range 20 {
			Expect(writer.MarkCheckpoint(int64(i*100), int64(i))).To(Succeed())
		}
		Expect(writer.Close()).To(Succeed())

		position, writeOrderID, err := logfile.ReadMetadata(dir, 0, codec)
		Expect(err).ToNot(HaveOccurred())
		Expect(position).To(Equal(int64(1900)))
		Expect(writeOrderID).To(Equal(int64(19)))
	})

	It("should resume the generation counter from an existing sidecar file", func() {
		writer, err := logfile.CreateMetadataWriter(dir, 0, codec)
		Expect(err).ToNot(HaveOccurred())
		Expect(writer.MarkCheckpoint(10, 1)).To(Succeed())
		Expect(writer.Close()).To(Succeed())

		reopened, err := logfile.OpenMetadataWriter(dir, 0, codec)
		Expect(err).ToNot(HaveOccurred())
		defer func() {
			Expect(reopened.Close()).To(Succeed())
		}()

		position, writeOrderID := reopened.LastCheckpoint()
		Expect(position).To(Equal(int64(10)))
		Expect(writeOrderID).To(Equal(int64(1)))

		Expect(reopened.MarkCheckpointAdvance(2)).To(Succeed())
		newPosition, newWriteOrderID := reopened.LastCheckpoint()
		Expect(newPosition).To(Equal(int64(10)))
		Expect(newWriteOrderID).To(Equal(int64(2)))
	})
})
