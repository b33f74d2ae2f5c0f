package collector

import "fmt"

// ActionResult describes the outcome for a single candidate skill
type ActionResult string

const (
	// ActionCopied means the skill was copied into the destination
	ActionCopied ActionResult = "copied"
	// ActionSkipped means the skill name was already present in the destination
	ActionSkipped ActionResult = "skipped"
	// ActionFailed means the copy was attempted but failed
	ActionFailed ActionResult = "failed"
)

// Action records the outcome for one candidate skill, in the order actions occurred
type Action struct {
	Skill  string       // Skill directory name
	Source string       // Skills folder the candidate came from
	Result ActionResult // copied, skipped, or failed
	Err    error        // Set when Result is ActionFailed
}

// Report summarizes a single collection run
type Report struct {
	RunID   string   // Unique identifier for the run
	Sources int      // Marker sources found under the scan root
	Copied  int      // Skills copied into the destination
	Skipped int      // Skills skipped because the name was already present
	Failed  int      // Skills whose copy failed
	Actions []Action // Per-candidate log in occurrence order

	// Err aggregates per-candidate copy failures. It is nil for a clean run;
	// a non-nil Err still means the run completed.
	Err error
}

func (r *Report) record(skill, source string, result ActionResult, err error) {
	r.Actions = append(r.Actions, Action{Skill: skill, Source: source, Result: result, Err: err})

	switch result {
	case ActionCopied:
		r.Copied++
	case ActionSkipped:
		r.Skipped++
	case ActionFailed:
		r.Failed++
	}
}

// Summary returns a one-line human-readable summary of the run
func (r *Report) Summary() string {
	s := fmt.Sprintf("%d source(s) scanned, %d skill(s) copied, %d skipped", r.Sources, r.Copied, r.Skipped)
	if r.Failed > 0 {
		s += fmt.Sprintf(", %d failed", r.Failed)
	}
	return s
}
