package testing

import (
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
)

func Steps(n int) *int {
	return &n
}

func BPM(bpm float64) *float64 {
	return &bpm
}

// Section is a default length section
func Section(mustHit bool, isDuet bool) chartentity.Section {
	return chartentity.NewSection(chartentity.SectionFields{
		MustHit: mustHit,
		IsDuet:  isDuet,
	})
}

func SectionWithSteps(mustHit bool, steps int) chartentity.Section {
	return chartentity.NewSection(chartentity.SectionFields{
		MustHit:       mustHit,
		LengthInSteps: Steps(steps),
	})
}

func TempoChangeSection(mustHit bool, bpm float64) chartentity.Section {
	return chartentity.NewSection(chartentity.SectionFields{
		MustHit:   mustHit,
		ChangeBPM: true,
		BPM:       BPM(bpm),
	})
}

func MakeChart(songKey string, bpm float64, sections ...chartentity.Section) chartentity.Chart {
	return chartentity.Chart{
		SongKey:     songKey,
		Sections:    sections,
		StartingBPM: bpm,
		Player:      "bf",
		Opponent:    "dad",
	}
}
