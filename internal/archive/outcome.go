// SPDX-License-Identifier: MPL-2.0

package archive

import "fmt"

// Pipeline stages a per-layer Outcome can belong to.
const (
	StageClassify  Stage = "classify"
	StageCopy      Stage = "copy"
	StageReproject Stage = "reproject"
	StageMetadata  Stage = "metadata"
)

type (
	// Stage names the pipeline stage that produced an Outcome.
	Stage string

	// Outcome is the per-layer result of one stage: which layer, which
	// stage, and the error if the stage failed for it. The pipeline
	// accumulates Outcomes instead of suppressing per-layer errors, so the
	// partial-failure contract is visible to callers and tests.
	Outcome struct {
		Layer string
		Stage Stage
		Err   error
	}

	// Rename records one identifier repair applied to a store entity.
	Rename struct {
		From string
		To   string
	}

	// RunReport aggregates everything a completed run produced.
	RunReport struct {
		// Map is the name of the archived map.
		Map string
		// Store is the path of the final feature store.
		Store string
		// OutputDir is the timestamped archive directory.
		OutputDir string
		// NonZ and Z count the classified layers.
		NonZ int
		Z    int
		// Renames are the identifier repairs applied after extraction.
		Renames []Rename
		// Outcomes are all per-layer stage results, successes included.
		Outcomes []Outcome
	}
)

// Failed reports whether the outcome records a per-layer failure.
func (o Outcome) Failed() bool { return o.Err != nil }

// String renders the outcome for warning logs.
func (o Outcome) String() string {
	if o.Err == nil {
		return fmt.Sprintf("%s: %s ok", o.Layer, o.Stage)
	}
	return fmt.Sprintf("%s: %s failed: %v", o.Layer, o.Stage, o.Err)
}

// Warnings returns only the failed outcomes.
func (r *RunReport) Warnings() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			out = append(out, o)
		}
	}
	return out
}
