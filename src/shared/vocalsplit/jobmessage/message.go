package jobmessage

import (
	"encoding/json"

	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/song"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
)

const (
	JobType    string = "split_song"
	ResultType string = "split_song_result"
)

type JobParams struct {
	JobID             string `json:"job_id"`
	SongKey           string `json:"song_key"`
	SourceURL         string `json:"source_url"`
	DestinationPrefix string `json:"destination_prefix"`
}

type ResultParams struct {
	JobID      string                  `json:"job_id"`
	SongKey    string                  `json:"song_key"`
	Slug       string                  `json:"slug,omitempty"`
	Status     song.Status             `json:"status"`
	Reason     string                  `json:"reason,omitempty"`
	Kind       spliterrors.FailureKind `json:"kind,omitempty"`
	OutputURLs []string                `json:"output_urls,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

// FailedResult reports a job that never reached the splitter
func FailedResult(params JobParams, err error) ResultParams {
	return ResultParams{
		JobID:   params.JobID,
		SongKey: params.SongKey,
		Status:  song.StatusFailed,
		Kind:    spliterrors.Classify(err),
		Error:   err.Error(),
	}
}

func UnmarshalJobParams(message []byte) (JobParams, error) {
	params := JobParams{}
	if err := json.Unmarshal(message, &params); err != nil {
		return JobParams{}, cerr.Wrap(err).Error("Failed to unmarshal message JSON")
	}

	errctx := cerr.Field("job_params", params)

	if params.JobID == "" {
		return params, errctx.Error("Missing job ID")
	}

	if params.SongKey == "" {
		return params, errctx.Error("Missing song key")
	}

	if params.SourceURL == "" {
		return params, errctx.Error("Missing source url")
	}

	return params, nil
}
