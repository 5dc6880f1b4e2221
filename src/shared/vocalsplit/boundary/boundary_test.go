package boundary_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/boundary"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/timeline"
)

var _ = Describe("Boundary", func() {
	var (
		markers []timeline.Marker
		total   float64
	)

	BeforeEach(func() {
		markers = []timeline.Marker{
			{StartMs: 0, MustHit: true},
			{StartMs: 1600, MustHit: false},
		}
		total = 3200
	})

	It("closes each interval at the next marker and the last at the end", func() {
		intervals := boundary.Sequence(markers, total)
		Expect(intervals).To(Equal([]boundary.Interval{
			{StartMs: 0, EndMs: 1600, MustHit: true},
			{StartMs: 1600, EndMs: 3200, MustHit: false},
		}))
	})

	It("sorts markers by start time", func() {
		markers = []timeline.Marker{
			{StartMs: 3000, MustHit: true, IsDuet: true},
			{StartMs: 0, MustHit: false},
			{StartMs: 1000, MustHit: true},
		}

		intervals := boundary.Sequence(markers, 4000)
		Expect(intervals).To(Equal([]boundary.Interval{
			{StartMs: 0, EndMs: 1000, MustHit: false},
			{StartMs: 1000, EndMs: 3000, MustHit: true},
			{StartMs: 3000, EndMs: 4000, MustHit: true, IsDuet: true},
		}))
	})

	It("doesn't reorder the caller's markers", func() {
		markers = []timeline.Marker{
			{StartMs: 1000, MustHit: true},
			{StartMs: 0, MustHit: false},
		}

		boundary.Sequence(markers, 2000)
		Expect(markers[0].StartMs).To(Equal(1000.0))
	})

	It("clamps negative starts to zero", func() {
		markers = []timeline.Marker{
			{StartMs: -50, MustHit: true},
			{StartMs: 1000, MustHit: false},
		}

		intervals := boundary.Sequence(markers, 2000)
		Expect(intervals).To(Equal([]boundary.Interval{
			{StartMs: 0, EndMs: 1000, MustHit: true},
			{StartMs: 1000, EndMs: 2000, MustHit: false},
		}))
	})

	It("snaps starts within a millisecond of the end onto the end", func() {
		markers = append(markers, timeline.Marker{StartMs: 3199.5, MustHit: true})

		intervals := boundary.Sequence(markers, total)
		Expect(intervals).To(HaveLen(2))
		Expect(intervals[1]).To(Equal(boundary.Interval{StartMs: 1600, EndMs: 3200}))
	})

	It("drops markers past the end of the audio", func() {
		markers = append(markers, timeline.Marker{StartMs: 5000, MustHit: true})

		intervals := boundary.Sequence(markers, total)
		Expect(intervals).To(HaveLen(2))
		Expect(intervals[1].EndMs).To(Equal(total))
	})

	It("gives unowned leading audio its own interval", func() {
		markers = []timeline.Marker{
			{StartMs: 500, MustHit: true},
		}

		intervals := boundary.Sequence(markers, 1000)
		Expect(intervals).To(Equal([]boundary.Interval{
			{StartMs: 0, EndMs: 500, MustHit: false, IsDuet: false},
			{StartMs: 500, EndMs: 1000, MustHit: true},
		}))
	})

	It("lets the later of two markers at the same time win", func() {
		markers = []timeline.Marker{
			{StartMs: 0, MustHit: true},
			{StartMs: 0, MustHit: false, IsDuet: true},
		}

		intervals := boundary.Sequence(markers, 1000)
		Expect(intervals).To(Equal([]boundary.Interval{
			{StartMs: 0, EndMs: 1000, MustHit: false, IsDuet: true},
		}))
	})

	It("covers the whole recording when there are no markers", func() {
		intervals := boundary.Sequence(nil, 1000)
		Expect(intervals).To(Equal([]boundary.Interval{
			{StartMs: 0, EndMs: 1000},
		}))
	})

	It("returns nothing for empty audio", func() {
		Expect(boundary.Sequence(markers, 0)).To(BeEmpty())
		Expect(boundary.Sequence(markers, -10)).To(BeEmpty())
	})

	It("produces contiguous non-empty intervals", func() {
		markers = []timeline.Marker{
			{StartMs: 2500, MustHit: true},
			{StartMs: 100, MustHit: false},
			{StartMs: 2500, MustHit: false},
			{StartMs: -3, MustHit: true},
			{StartMs: 900.25, MustHit: true},
		}

		intervals := boundary.Sequence(markers, 3000)
		Expect(intervals).NotTo(BeEmpty())
		Expect(intervals[0].StartMs).To(Equal(0.0))
		Expect(intervals[len(intervals)-1].EndMs).To(Equal(3000.0))

		covered := 0.0
		for i, interval := range intervals {
			Expect(interval.DurationMs()).To(BeNumerically(">", 0))
			if i > 0 {
				Expect(interval.StartMs).To(Equal(intervals[i-1].EndMs))
			}
			covered += interval.DurationMs()
		}
		Expect(covered).To(Equal(3000.0))
	})
})
