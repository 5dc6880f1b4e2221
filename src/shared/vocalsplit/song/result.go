package song

import (
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

const (
	ReasonNoChart         = "no chart found"
	ReasonSplitDisabled   = "vocal split disabled"
	ReasonNoVocals        = "no vocal file"
	ReasonPreSplitNoChart = "pre-split vocals copied without a chart"
)

type Result struct {
	SongKey string                  `json:"song_key"`
	Slug    string                  `json:"slug"`
	Status  Status                  `json:"status"`
	Reason  string                  `json:"reason,omitempty"`
	Kind    spliterrors.FailureKind `json:"kind,omitempty"`
	Outputs []string                `json:"outputs,omitempty"`
	Message string                  `json:"error,omitempty"`
	Err     error                   `json:"-"`
}

func ok(base Result, outputs []string) Result {
	base.Status = StatusOK
	base.Outputs = outputs
	return base
}

func skipped(base Result, reason string, outputs []string) Result {
	base.Status = StatusSkipped
	base.Reason = reason
	base.Outputs = outputs
	return base
}

func failed(base Result, err error, outputs []string) Result {
	base.Status = StatusFailed
	base.Kind = spliterrors.Classify(err)
	base.Outputs = outputs
	base.Message = err.Error()
	base.Err = err
	return base
}
