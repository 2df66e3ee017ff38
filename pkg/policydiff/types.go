// Package policydiff reconciles a licence's conditions against a newer policy
// version and classifies what changed.
package policydiff

import "github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"

// ChangeType classifies one condition's change between versions.
type ChangeType string

const (
	// TextChange: the wording changed, or inputs were only removed.
	TextChange ChangeType = "TEXT_CHANGE"
	// NewOptions: the current version adds inputs.
	NewOptions ChangeType = "NEW_OPTIONS"
	// Deleted: the code is gone; suggestions are existing, independent conditions.
	Deleted ChangeType = "DELETED"
	// Replaced: the code is gone; suggestions are its dedicated successors.
	Replaced ChangeType = "REPLACED"
	// RemovedNoReplacements: the code is gone and nothing takes its place.
	RemovedNoReplacements ChangeType = "REMOVED_NO_REPLACEMENTS"
)

// Suggestion is a replacement condition offered for a removed code.
type Suggestion struct {
	Code        string `json:"code"`
	CurrentText string `json:"currentText"`
}

// ConditionDiff is one actionable change to a licence condition.
type ConditionDiff struct {
	ChangeType        ChangeType           `json:"changeType"`
	Kind              policy.ConditionKind `json:"kind"`
	Code              string               `json:"code"`
	Sequence          int                  `json:"sequence"`
	PreviousText      string               `json:"previousText"`
	CurrentText       *string              `json:"currentText,omitempty"`
	AddedInputNames   []string             `json:"addedInputNames"`
	RemovedInputNames []string             `json:"removedInputNames"`
	Suggestions       []Suggestion         `json:"suggestions"`
}

// LicenceCondition is a condition on a licence, by code and position.
type LicenceCondition struct {
	Code     string `json:"code"`
	Sequence int    `json:"sequence"`
}

// FromCodes assigns each code its position as sequence.
func FromCodes(codes []string) []LicenceCondition {
	out := make([]LicenceCondition, len(codes))
	for i, c := range codes {
		out[i] = LicenceCondition{Code: c, Sequence: i}
	}
	return out
}

// Licence is the subset of a licence the diff engine needs.
type Licence struct {
	Kind    policy.LicenceKind `json:"kind"`
	Version string             `json:"version"`
	AP      []LicenceCondition `json:"ap"`
	PSS     []LicenceCondition `json:"pss"`
}

// Conditions returns the licence's conditions of kind k.
func (l Licence) Conditions(k policy.ConditionKind) []LicenceCondition {
	switch k {
	case policy.KindAP:
		return l.AP
	case policy.KindPSS:
		return l.PSS
	default:
		return nil
	}
}
