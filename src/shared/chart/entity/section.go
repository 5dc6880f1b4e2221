package chartentity

import (
	"github.com/veedubyou/vocal-split/src/shared/lib/jsonlib"
)

const DefaultLengthInSteps = 16

type SectionFields struct {
	MustHit       bool     `json:"mustHitSection"`
	IsDuet        bool     `json:"isDuet"`
	LengthInSteps *int     `json:"lengthInSteps,omitempty"`
	ChangeBPM     bool     `json:"changeBPM"`
	BPM           *float64 `json:"bpm,omitempty"`
}

// Section keeps every chart field it doesn't know about in Extra,
// so notes and the like survive a round trip untouched
type Section struct {
	jsonlib.Flatten[SectionFields]
}

func NewSection(fields SectionFields) Section {
	section := Section{}
	section.Defined = fields
	return section
}

func (s Section) MustHit() bool {
	return s.Defined.MustHit
}

func (s Section) IsDuet() bool {
	return s.Defined.IsDuet
}

func (s Section) ChangesBPM() bool {
	return s.Defined.ChangeBPM
}

// BPM is only meaningful when ChangesBPM is true
func (s Section) BPM() (float64, bool) {
	if s.Defined.BPM == nil {
		return 0, false
	}

	return *s.Defined.BPM, true
}

func (s Section) LengthInSteps() int {
	if s.Defined.LengthInSteps == nil {
		return DefaultLengthInSteps
	}

	return *s.Defined.LengthInSteps
}
