package driver

import (
	"encoding/json"
	"os"

	"github.com/apex/log"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/song"
)

type Report struct {
	Results []song.Result `json:"results"`
	OK      int           `json:"ok"`
	Skipped int           `json:"skipped"`
	Failed  int           `json:"failed"`
}

func (r *Report) Add(result song.Result) {
	r.Results = append(r.Results, result)

	switch result.Status {
	case song.StatusOK:
		r.OK++
	case song.StatusSkipped:
		r.Skipped++
	case song.StatusFailed:
		r.Failed++
	}
}

func (r Report) Total() int {
	return len(r.Results)
}

func (r Report) Log() {
	log.WithFields(log.Fields{
		"total":   r.Total(),
		"ok":      r.OK,
		"skipped": r.Skipped,
		"failed":  r.Failed,
	}).Info("Vocal split batch finished")
}

func (r Report) WriteFile(path string) error {
	contents, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return cerr.Wrap(err).Error("Failed to marshal batch report")
	}

	if err := os.WriteFile(path, contents, 0644); err != nil {
		return cerr.Field("path", path).Wrap(err).Error("Failed to write batch report")
	}

	return nil
}
