package export_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/veedubyou/vocal-split/src/shared/testing"
	"github.com/veedubyou/vocal-split/src/shared/testing/dummy"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/export"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/partition"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
)

var _ = Describe("Export", func() {
	Describe("Naming", func() {
		It("lowercases and hyphenates slugs", func() {
			Expect(export.Slug("Dad Battle")).To(Equal("dad-battle"))
			Expect(export.Slug("Bopeebo")).To(Equal("bopeebo"))
			Expect(export.Slug("Philly Nice Erect")).To(Equal("philly-nice-erect"))
		})

		It("puts songs under their slug", func() {
			Expect(export.SongDir("/out", "Dad Battle")).To(Equal("/out/dad-battle"))
		})

		It("names stems after the participant", func() {
			Expect(export.VoicesFileName("bf", ".ogg")).To(Equal("Voices-bf.ogg"))
			Expect(export.VoicesFileName("mom-car", ".mp3")).To(Equal("Voices-mom-car.mp3"))
		})

		It("strips only the last extension", func() {
			Expect(export.Stem("Voices.ogg")).To(Equal("Voices"))
			Expect(export.Stem("Voices-Player.ogg")).To(Equal("Voices-Player"))
			Expect(export.Stem("Voices.old.ogg")).To(Equal("Voices.old"))
		})
	})

	Describe("Exporter", func() {
		var (
			ctx      context.Context
			codec    *dummy.Codec
			exporter export.Exporter
			destDir  string
			tracks   partition.Tracks
		)

		BeforeEach(func() {
			ctx = context.Background()
			codec = dummy.NewDummyCodec(TestFormat)
			exporter = export.NewExporter(codec)
			destDir = filepath.Join(GinkgoT().TempDir(), "nested", "song")
			tracks = partition.Tracks{
				Primary:   RampBuffer(TestFormat, 10),
				Secondary: RampBuffer(TestFormat, 20),
			}
		})

		It("writes the player then the opponent", func() {
			participants := export.Participants{Player: "bf", Opponent: "dad"}

			outputs := ExpectSuccess(exporter.ExportTracks(ctx, destDir, ".ogg", participants, tracks))
			Expect(outputs).To(Equal([]string{
				filepath.Join(destDir, "Voices-bf.ogg"),
				filepath.Join(destDir, "Voices-dad.ogg"),
			}))

			Expect(codec.Encoded[outputs[0]]).To(Equal(tracks.Primary))
			Expect(codec.Encoded[outputs[1]]).To(Equal(tracks.Secondary))
		})

		It("lets the opponent overwrite the player when they share a name", func() {
			participants := export.Participants{Player: "bf", Opponent: "bf"}

			outputs := ExpectSuccess(exporter.ExportTracks(ctx, destDir, ".ogg", participants, tracks))
			Expect(outputs[0]).To(Equal(outputs[1]))

			contents := ExpectSuccess(os.ReadFile(outputs[0]))
			Expect(contents).To(Equal(tracks.Secondary.PCM))
		})

		It("reports the player output when the opponent fails", func() {
			codec.FailEncodeFor["Voices-dad.ogg"] = true
			participants := export.Participants{Player: "bf", Opponent: "dad"}

			outputs, err := exporter.ExportTracks(ctx, destDir, ".ogg", participants, tracks)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, spliterrors.AudioCodecMark)).To(BeTrue())
			Expect(outputs).To(Equal([]string{filepath.Join(destDir, "Voices-bf.ogg")}))
		})

		It("copies files byte for byte", func() {
			source := filepath.Join(GinkgoT().TempDir(), "Voices.ogg")
			Expect(os.WriteFile(source, []byte("not really ogg"), 0644)).To(Succeed())

			output := ExpectSuccess(exporter.CopyAs(source, destDir, "Voices.ogg"))
			Expect(output).To(Equal(filepath.Join(destDir, "Voices.ogg")))
			Expect(os.ReadFile(output)).To(Equal([]byte("not really ogg")))
		})

		It("marks a failed copy as a file operation failure", func() {
			_, err := exporter.CopyAs(filepath.Join(destDir, "missing.ogg"), destDir, "Voices.ogg")
			Expect(err).To(HaveOccurred())
			Expect(spliterrors.Classify(err)).To(Equal(spliterrors.FileOperation))
		})
	})
})
