package triage

// Status is the render branch for a triage session. Each value needs its own
// UI treatment; none of them is an error.
type Status string

const (
	StatusBlocked         Status = "blocked"
	StatusIncomplete      Status = "incomplete"
	StatusManualReview    Status = "manual_review"
	StatusContractBlocked Status = "contract_blocked"
	StatusFollowUp        Status = "follow_up"
	StatusRecommended     Status = "recommended"
)

// NeedsReview reports whether the status must be routed to the review desk.
func (s Status) NeedsReview() bool {
	return s == StatusManualReview || s == StatusFollowUp || s == StatusContractBlocked
}

// Evaluation is everything a caller needs to render the wizard after an
// answer event.
type Evaluation struct {
	Status            Status                  `json:"status"`
	Outcome           *RecommendationKey      `json:"outcome"`
	Recommendation    *RecommendationTemplate `json:"recommendation,omitempty"`
	BlockedConditions []BlockCondition        `json:"blockedConditions,omitempty"`
	Complete          bool                    `json:"complete"`
	NextQuestion      Question                `json:"nextQuestion,omitempty"`
	CurrentStep       Step                    `json:"currentStep"`
	VisibleSteps      []Step                  `json:"visibleSteps"`
	Compatibility     Compatibility           `json:"compatibility"`
}

// Evaluate resolves the current state into an Evaluation.
func (w *Wizard) Evaluate() Evaluation {
	s := w.State()
	outcome := Resolve(s)

	ev := Evaluation{
		Status:        statusOf(s, outcome),
		Outcome:       outcome,
		Complete:      IsComplete(s),
		NextQuestion:  w.NextQuestion(),
		CurrentStep:   w.CurrentStep(),
		VisibleSteps:  w.VisibleSteps(),
		Compatibility: CheckCompatibility(w.catalog, s),
	}
	if outcome != nil {
		tpl := w.catalog.TemplateFor(*outcome)
		ev.Recommendation = &tpl
	}
	for _, id := range s.BlockedConditionIDs {
		if c, ok := w.catalog.BlockCondition(id); ok {
			ev.BlockedConditions = append(ev.BlockedConditions, c)
		} else {
			ev.BlockedConditions = append(ev.BlockedConditions, BlockCondition{ID: id, Label: id})
		}
	}
	return ev
}

func statusOf(s State, outcome *RecommendationKey) Status {
	if s.Blocked() {
		return StatusBlocked
	}
	if s.BusinessType != nil && *s.BusinessType == BusinessNonFood {
		return StatusManualReview
	}
	if outcome == nil {
		return StatusIncomplete
	}
	switch *outcome {
	case BlockedContract:
		return StatusContractBlocked
	case NeedCompatibilityCheck:
		return StatusFollowUp
	}
	return StatusRecommended
}
