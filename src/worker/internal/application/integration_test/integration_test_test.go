package integration_test_test

import (
	"context"
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/vocal-split/src/shared/audio"
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	"github.com/veedubyou/vocal-split/src/shared/config/prod"
	. "github.com/veedubyou/vocal-split/src/shared/testing"
	shareddummy "github.com/veedubyou/vocal-split/src/shared/testing/dummy"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/jobmessage"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/song"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/timeline"
	"github.com/veedubyou/vocal-split/src/worker/internal/application/integration_test/dummy"
	"github.com/veedubyou/vocal-split/src/worker/internal/application/jobs/job_router"
	"github.com/veedubyou/vocal-split/src/worker/internal/application/jobs/split_song"
	"github.com/veedubyou/vocal-split/src/worker/internal/application/worker"
	"github.com/veedubyou/vocal-split/src/worker/internal/lib/storagepath"
)

var _ = Describe("IntegrationTest", func() {
	var (
		jobID       string
		songKey     string
		sourceURL   string
		mixedVocals audio.Buffer
		bucketName  string
		charts      []chartentity.Chart

		rabbitMQ  *dummy.RabbitMQ
		fileStore *dummy.FileStore
		codec     *shareddummy.Codec

		queueWorker *worker.QueueWorker
		run         func()
		results     func() []jobmessage.ResultParams
	)

	BeforeEach(func() {
		By("Assigning data to variables", func() {
			jobID = "job-ID"
			songKey = "Dad Battle"
			bucketName = "bucket-head"
			sourceURL = prod.GOOGLE_STORAGE_HOST + "/" + bucketName + "/uploads/Voices.ogg"
			mixedVocals = RampBuffer(TestFormat, 3200)
			charts = []chartentity.Chart{
				MakeChart(songKey, 150, Section(true, false), Section(false, false)),
			}
		})

		By("Instantiating all dummies", func() {
			rabbitMQ = dummy.NewRabbitMQ()
			fileStore = dummy.NewDummyFileStore()
			codec = shareddummy.NewDummyCodec(TestFormat)
		})

		By("Uploading the mixed vocals", func() {
			Expect(fileStore.WriteFile(context.Background(), sourceURL, mixedVocals.PCM)).To(Succeed())
		})

		By("Setting up the run routine", func() {
			run = func() {
				pathGenerator := storagepath.Generator{
					Host:   prod.GOOGLE_STORAGE_HOST,
					Bucket: bucketName,
				}

				splitter := song.NewSplitter(chartentity.NewRegistry(charts), codec, song.Config{
					Enabled:    true,
					AnchorMode: timeline.LegacyAnchor,
					Timeout:    5 * time.Second,
				})

				splitHandler, err := split_song.NewJobHandler(splitter, fileStore, pathGenerator, workingDir)
				Expect(err).NotTo(HaveOccurred())

				router := job_router.NewJobRouter(rabbitMQ, splitHandler)
				queueWorker = worker.NewQueueWorker(rabbitMQ, "test-queue", router)

				go func() {
					defer GinkgoRecover()
					err := queueWorker.Start(context.Background())
					Expect(err).NotTo(HaveOccurred())
				}()

				jsonBytes, err := json.Marshal(jobmessage.JobParams{
					JobID:             jobID,
					SongKey:           songKey,
					SourceURL:         sourceURL,
					DestinationPrefix: "splits",
				})
				Expect(err).NotTo(HaveOccurred())

				err = rabbitMQ.Publish(context.Background(), amqp091.Publishing{
					Type: jobmessage.JobType,
					Body: jsonBytes,
				})
				Expect(err).NotTo(HaveOccurred())
			}

			results = func() []jobmessage.ResultParams {
				published := []jobmessage.ResultParams{}
				for _, message := range rabbitMQ.PublishedResults() {
					result := jobmessage.ResultParams{}
					Expect(json.Unmarshal(message.Body, &result)).To(Succeed())
					published = append(published, result)
				}
				return published
			}
		})
	})

	AfterEach(func() {
		queueWorker.Stop()
	})

	ackCount := func() int {
		acks, _ := rabbitMQ.Counts()
		return acks
	}

	nackCount := func() int {
		_, nacks := rabbitMQ.Counts()
		return nacks
	}

	outputURL := func(fileName string) string {
		return prod.GOOGLE_STORAGE_HOST + "/" + bucketName + "/splits/dad-battle/" + fileName
	}

	Describe("The split runs successfully", func() {
		It("gets 1 ack", func() {
			run()

			Eventually(ackCount).Should(Equal(1))
		})

		It("gets no nacks", func() {
			run()

			Consistently(nackCount).Should(Equal(0))
		})

		It("consumes one message at a time", func() {
			run()

			Eventually(ackCount).Should(Equal(1))
			Expect(rabbitMQ.PrefetchCount).To(Equal(1))
		})

		It("uploads a stem per participant", func() {
			run()

			Eventually(func() bool {
				player, err := fileStore.GetFile(context.Background(), outputURL("Voices-bf.ogg"))
				if err != nil {
					return false
				}

				opponent, err := fileStore.GetFile(context.Background(), outputURL("Voices-dad.ogg"))
				if err != nil {
					return false
				}

				return len(player) == len(mixedVocals.PCM) && len(opponent) == len(mixedVocals.PCM)
			}).Should(BeTrue())
		})

		It("publishes an ok result", func() {
			run()

			Eventually(rabbitMQ.ResultCount).Should(Equal(1))

			result := results()[0]
			Expect(result.JobID).To(Equal(jobID))
			Expect(result.SongKey).To(Equal(songKey))
			Expect(result.Slug).To(Equal("dad-battle"))
			Expect(result.Status).To(Equal(song.StatusOK))
			Expect(result.OutputURLs).To(Equal([]string{
				outputURL("Voices-bf.ogg"),
				outputURL("Voices-dad.ogg"),
			}))
		})
	})

	Describe("The song has no chart", func() {
		BeforeEach(func() {
			charts = nil
		})

		It("uploads the vocals unmodified and reports a skip", func() {
			run()

			Eventually(rabbitMQ.ResultCount).Should(Equal(1))

			result := results()[0]
			Expect(result.Status).To(Equal(song.StatusSkipped))
			Expect(result.Reason).To(Equal(song.ReasonNoChart))
			Expect(fileStore.GetFile(context.Background(), outputURL("Voices.ogg"))).To(Equal(mixedVocals.PCM))
			Expect(ackCount()).To(Equal(1))
		})
	})

	Describe("The codec fails", func() {
		BeforeEach(func() {
			codec.Unavailable = true
		})

		It("still acks, since the failure is reported", func() {
			run()

			Eventually(ackCount).Should(Equal(1))
			Consistently(nackCount).Should(Equal(0))
		})

		It("publishes a failed result", func() {
			run()

			Eventually(rabbitMQ.ResultCount).Should(Equal(1))

			result := results()[0]
			Expect(result.Status).To(Equal(song.StatusFailed))
			Expect(result.Kind).To(Equal(spliterrors.AudioCodec))
			Expect(result.Error).NotTo(BeEmpty())
		})
	})

	Describe("File storage is down", func() {
		BeforeEach(func() {
			fileStore.Unavailable = true
		})

		It("gets 1 nack", func() {
			run()

			Eventually(nackCount).Should(Equal(1))
			Expect(ackCount()).To(Equal(0))
		})

		It("reports the error status", func() {
			run()

			Eventually(rabbitMQ.ResultCount).Should(Equal(1))

			result := results()[0]
			Expect(result.JobID).To(Equal(jobID))
			Expect(result.Status).To(Equal(song.StatusFailed))
		})
	})
})
