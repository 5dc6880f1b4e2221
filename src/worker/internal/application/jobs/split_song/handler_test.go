package split_song_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	. "github.com/veedubyou/vocal-split/src/shared/testing"
	shareddummy "github.com/veedubyou/vocal-split/src/shared/testing/dummy"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/jobmessage"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/song"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/timeline"
	"github.com/veedubyou/vocal-split/src/worker/internal/application/integration_test/dummy"
	"github.com/veedubyou/vocal-split/src/worker/internal/application/jobs/split_song"
	"github.com/veedubyou/vocal-split/src/worker/internal/lib/storagepath"
)

const storageHost = "https://storage.googleapis.com"

var _ = Describe("Split song job handler", func() {
	var (
		ctx        context.Context
		workingDir string
		fileStore  *dummy.FileStore
		codec      *shareddummy.Codec
		params     jobmessage.JobParams
		handler    split_song.JobHandler
	)

	BeforeEach(func() {
		ctx = context.Background()
		workingDir = GinkgoT().TempDir()
		fileStore = dummy.NewDummyFileStore()
		codec = shareddummy.NewDummyCodec(TestFormat)

		params = jobmessage.JobParams{
			JobID:             "job-1",
			SongKey:           "Bopeebo",
			SourceURL:         storageHost + "/bucket/uploads/Voices.ogg",
			DestinationPrefix: "splits",
		}

		Expect(fileStore.WriteFile(ctx, params.SourceURL, RampBuffer(TestFormat, 3200).PCM)).To(Succeed())

		registry := chartentity.NewRegistry([]chartentity.Chart{
			MakeChart("Bopeebo", 150, Section(true, false), Section(false, false)),
		})
		splitter := song.NewSplitter(registry, codec, song.Config{
			Enabled:    true,
			AnchorMode: timeline.LegacyAnchor,
		})

		pathGenerator := storagepath.Generator{Host: storageHost, Bucket: "bucket"}
		handler = ExpectSuccess(split_song.NewJobHandler(splitter, fileStore, pathGenerator, workingDir))
	})

	handle := func() (jobmessage.JobParams, jobmessage.ResultParams, error) {
		body := ExpectSuccess(json.Marshal(params))
		return handler.HandleSplitSongJob(ctx, body)
	}

	It("uploads the split stems and reports them", func() {
		_, result, err := handle()
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Status).To(Equal(song.StatusOK))
		Expect(result.Slug).To(Equal("bopeebo"))
		Expect(result.OutputURLs).To(Equal([]string{
			storageHost + "/bucket/splits/bopeebo/Voices-bf.ogg",
			storageHost + "/bucket/splits/bopeebo/Voices-dad.ogg",
		}))

		for _, url := range result.OutputURLs {
			Expect(fileStore.State).To(HaveKey(url))
		}
	})

	It("cleans up its temp files", func() {
		_, _, err := handle()
		Expect(err).NotTo(HaveOccurred())

		entries := ExpectSuccess(os.ReadDir(filepath.Join(workingDir, "tmp")))
		Expect(entries).To(BeEmpty())
	})

	It("reports a failed split as a result", func() {
		codec.Unavailable = true

		_, result, err := handle()
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Status).To(Equal(song.StatusFailed))
		Expect(result.Error).NotTo(BeEmpty())
		Expect(result.OutputURLs).To(BeEmpty())
	})

	It("fails when the source is missing", func() {
		params.SourceURL = storageHost + "/bucket/uploads/missing/Voices.ogg"

		returnedParams, _, err := handle()
		Expect(err).To(HaveOccurred())
		Expect(returnedParams.JobID).To(Equal("job-1"))
	})

	It("rejects an incomplete job", func() {
		_, _, err := handler.HandleSplitSongJob(ctx, []byte(`{"job_id": "job-1"}`))
		Expect(err).To(HaveOccurred())
	})
})
