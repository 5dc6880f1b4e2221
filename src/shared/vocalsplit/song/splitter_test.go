package song_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/vocal-split/src/shared/audio"
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	. "github.com/veedubyou/vocal-split/src/shared/testing"
	"github.com/veedubyou/vocal-split/src/shared/testing/dummy"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/song"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/timeline"
)

var _ = Describe("Splitter", func() {
	var (
		ctx        context.Context
		codec      *dummy.Codec
		charts     []chartentity.Chart
		config     song.Config
		songsRoot  string
		outputRoot string
		request    song.Request
		mixed      audio.Buffer
	)

	writeSongFile := func(fileName string, contents []byte) string {
		path := filepath.Join(request.SourceDir, fileName)
		ExpectWithOffset(1, os.MkdirAll(request.SourceDir, os.ModePerm)).To(Succeed())
		ExpectWithOffset(1, os.WriteFile(path, contents, 0644)).To(Succeed())
		return path
	}

	outputPath := func(fileName string) string {
		return filepath.Join(outputRoot, "bopeebo", fileName)
	}

	split := func() song.Result {
		splitter := song.NewSplitter(chartentity.NewRegistry(charts), codec, config)
		return splitter.Split(ctx, request)
	}

	BeforeEach(func() {
		ctx = context.Background()
		codec = dummy.NewDummyCodec(TestFormat)
		charts = []chartentity.Chart{
			MakeChart("Bopeebo", 150, Section(true, false), Section(false, false)),
		}
		config = song.Config{
			Enabled:    true,
			AnchorMode: timeline.LegacyAnchor,
			Timeout:    5 * time.Second,
		}

		songsRoot = GinkgoT().TempDir()
		outputRoot = GinkgoT().TempDir()
		request = song.Request{
			SongKey:    "Bopeebo",
			SourceDir:  filepath.Join(songsRoot, "Bopeebo"),
			OutputRoot: outputRoot,
		}

		mixed = RampBuffer(TestFormat, 3200)
	})

	Describe("Mixed vocals with a chart", func() {
		BeforeEach(func() {
			writeSongFile("Voices.ogg", mixed.PCM)
		})

		It("writes a stem per participant", func() {
			result := split()

			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(song.StatusOK))
			Expect(result.SongKey).To(Equal("Bopeebo"))
			Expect(result.Slug).To(Equal("bopeebo"))
			Expect(result.Outputs).To(Equal([]string{
				outputPath("Voices-bf.ogg"),
				outputPath("Voices-dad.ogg"),
			}))
		})

		It("gives each participant their own sections", func() {
			split()

			player := ExpectSuccess(audio.NewBuffer(TestFormat, ExpectSuccess(os.ReadFile(outputPath("Voices-bf.ogg")))))
			opponent := ExpectSuccess(audio.NewBuffer(TestFormat, ExpectSuccess(os.ReadFile(outputPath("Voices-dad.ogg")))))

			Expect(player.Frames()).To(Equal(mixed.Frames()))
			Expect(opponent.Frames()).To(Equal(mixed.Frames()))

			Expect(player.Slice(0, 1600)).To(Equal(mixed.Slice(0, 1600)))
			Expect(player.IsSilent(1600, 3200)).To(BeTrue())
			Expect(opponent.IsSilent(0, 1600)).To(BeTrue())
			Expect(opponent.Slice(1600, 3200)).To(Equal(mixed.Slice(1600, 3200)))
		})

		It("doesn't touch the source folder", func() {
			split()

			entries := ExpectSuccess(os.ReadDir(request.SourceDir))
			Expect(entries).To(HaveLen(1))
			Expect(os.ReadFile(filepath.Join(request.SourceDir, "Voices.ogg"))).To(Equal(mixed.PCM))
		})

		It("keeps the source extension", func() {
			Expect(os.Rename(
				filepath.Join(request.SourceDir, "Voices.ogg"),
				filepath.Join(request.SourceDir, "Voices.mp3"),
			)).To(Succeed())

			result := split()
			Expect(result.Outputs).To(Equal([]string{
				outputPath("Voices-bf.mp3"),
				outputPath("Voices-dad.mp3"),
			}))
		})

		Describe("When the chart has an unusable tempo change", func() {
			BeforeEach(func() {
				charts[0].Sections = append(charts[0].Sections, TempoChangeSection(true, -1))
			})

			It("fails with an invalid tempo", func() {
				result := split()

				Expect(result.Status).To(Equal(song.StatusFailed))
				Expect(result.Kind).To(Equal(spliterrors.InvalidTempo))
				Expect(result.Message).NotTo(BeEmpty())
				Expect(outputPath("Voices-bf.ogg")).NotTo(BeAnExistingFile())
			})
		})

		Describe("When decoding fails", func() {
			BeforeEach(func() {
				codec.Unavailable = true
			})

			It("fails with a codec error", func() {
				result := split()

				Expect(result.Status).To(Equal(song.StatusFailed))
				Expect(result.Kind).To(Equal(spliterrors.AudioCodec))
				Expect(result.Outputs).To(BeEmpty())
			})
		})

		Describe("When the decoder panics", func() {
			BeforeEach(func() {
				codec.PanicOnDecode = true
			})

			It("fails the song instead of crashing", func() {
				result := split()

				Expect(result.Status).To(Equal(song.StatusFailed))
				Expect(result.Kind).To(Equal(spliterrors.AudioCodec))
			})
		})

		Describe("When decoding stalls past the timeout", func() {
			BeforeEach(func() {
				codec.DecodeDelay = time.Second
				config.Timeout = 20 * time.Millisecond
			})

			It("fails with a timeout", func() {
				result := split()

				Expect(result.Status).To(Equal(song.StatusFailed))
				Expect(result.Kind).To(Equal(spliterrors.Timeout))
			})
		})

		Describe("When the opponent stem can't be written", func() {
			BeforeEach(func() {
				codec.FailEncodeFor["Voices-dad.ogg"] = true
			})

			It("fails but reports the stem that was written", func() {
				result := split()

				Expect(result.Status).To(Equal(song.StatusFailed))
				Expect(result.Kind).To(Equal(spliterrors.AudioCodec))
				Expect(result.Outputs).To(Equal([]string{outputPath("Voices-bf.ogg")}))
			})
		})

		Describe("When the split is disabled", func() {
			BeforeEach(func() {
				config.Enabled = false
			})

			It("copies the mixed vocals unmodified", func() {
				result := split()

				Expect(result.Status).To(Equal(song.StatusSkipped))
				Expect(result.Reason).To(Equal(song.ReasonSplitDisabled))
				Expect(result.Outputs).To(Equal([]string{outputPath("Voices.ogg")}))
				Expect(os.ReadFile(outputPath("Voices.ogg"))).To(Equal(mixed.PCM))
				Expect(codec.Decoded).To(BeEmpty())
			})
		})
	})

	Describe("Mixed vocals without a chart", func() {
		BeforeEach(func() {
			charts = nil
			writeSongFile("Voices.ogg", mixed.PCM)
		})

		It("copies the mixed vocals unmodified", func() {
			result := split()

			Expect(result.Status).To(Equal(song.StatusSkipped))
			Expect(result.Reason).To(Equal(song.ReasonNoChart))
			Expect(os.ReadFile(outputPath("Voices.ogg"))).To(Equal(mixed.PCM))
			Expect(codec.Decoded).To(BeEmpty())
		})
	})

	Describe("A song with a spaced key", func() {
		BeforeEach(func() {
			charts = []chartentity.Chart{
				MakeChart("Dad Battle", 150, Section(false, false)),
			}
			request.SongKey = "Dad Battle"
			request.SourceDir = filepath.Join(songsRoot, "Dad Battle")
			writeSongFile("Voices.ogg", mixed.PCM)
		})

		It("writes into the slugged folder", func() {
			result := split()

			Expect(result.Status).To(Equal(song.StatusOK))
			Expect(result.Slug).To(Equal("dad-battle"))
			Expect(filepath.Join(outputRoot, "dad-battle", "Voices-dad.ogg")).To(BeAnExistingFile())
		})
	})

	Describe("Separated vocals", func() {
		BeforeEach(func() {
			writeSongFile("Voices-Player.ogg", []byte("player"))
			writeSongFile("Voices-Opponent.ogg", []byte("opponent"))
		})

		It("renames them after the chart's participants", func() {
			result := split()

			Expect(result.Status).To(Equal(song.StatusOK))
			Expect(result.Outputs).To(Equal([]string{
				outputPath("Voices-bf.ogg"),
				outputPath("Voices-dad.ogg"),
			}))
			Expect(os.ReadFile(outputPath("Voices-bf.ogg"))).To(Equal([]byte("player")))
			Expect(os.ReadFile(outputPath("Voices-dad.ogg"))).To(Equal([]byte("opponent")))
			Expect(codec.Decoded).To(BeEmpty())
		})

		It("prefers them over a mixed vocal file", func() {
			writeSongFile("Voices.ogg", mixed.PCM)

			result := split()
			Expect(result.Status).To(Equal(song.StatusOK))
			Expect(codec.Decoded).To(BeEmpty())
		})

		Describe("Without a chart", func() {
			BeforeEach(func() {
				charts = nil
			})

			It("copies them under their own names", func() {
				result := split()

				Expect(result.Status).To(Equal(song.StatusSkipped))
				Expect(result.Reason).To(Equal(song.ReasonPreSplitNoChart))
				Expect(result.Outputs).To(Equal([]string{
					outputPath("Voices-Player.ogg"),
					outputPath("Voices-Opponent.ogg"),
				}))
			})
		})
	})

	Describe("Only half of a separated pair", func() {
		BeforeEach(func() {
			writeSongFile("Voices-Player.ogg", []byte("player"))
		})

		It("is treated as having no vocals", func() {
			result := split()

			Expect(result.Status).To(Equal(song.StatusSkipped))
			Expect(result.Reason).To(Equal(song.ReasonNoVocals))
		})
	})

	Describe("A folder without vocals", func() {
		BeforeEach(func() {
			writeSongFile("Inst.ogg", []byte("instrumental"))
		})

		It("is skipped without output", func() {
			result := split()

			Expect(result.Status).To(Equal(song.StatusSkipped))
			Expect(result.Reason).To(Equal(song.ReasonNoVocals))
			Expect(result.Outputs).To(BeEmpty())
			Expect(filepath.Join(outputRoot, "bopeebo")).NotTo(BeADirectory())
		})
	})

	Describe("A missing folder", func() {
		It("fails with a file operation error", func() {
			result := split()

			Expect(result.Status).To(Equal(song.StatusFailed))
			Expect(result.Kind).To(Equal(spliterrors.FileOperation))
		})
	})
})
