package triage

import (
	"errors"
	"fmt"
)

var (
	ErrWizardBlocked         = errors.New("triage: wizard is blocked by a block condition")
	ErrQuestionNotAvailable  = errors.New("triage: question is not available on the current branch")
	ErrInvalidAnswer         = errors.New("triage: invalid answer")
	ErrUnknownBlockCondition = errors.New("triage: unknown block condition")
)

// Question identifies a single wizard prompt.
type Question string

const (
	QuestionNone              Question = ""
	QuestionBusinessType      Question = "businessType"
	QuestionStoreType         Question = "storeType"
	QuestionUsesDelivery      Question = "usesDelivery"
	QuestionContractCleared   Question = "contractObligationCleared"
	QuestionWillReplaceDevice Question = "willReplaceDevice"
	QuestionPosPlatform       Question = "currentPosPlatform"
	QuestionVan               Question = "selectedVan"
	QuestionTerminal          Question = "selectedTerminal"
)

// Step is a visible section of the wizard UI.
type Step string

const (
	StepEligibility   Step = "eligibility"
	StepBusinessType  Step = "business_type"
	StepStoreType     Step = "store_type"
	StepStoreDetails  Step = "store_details"
	StepCompatibility Step = "compatibility"
	StepResult        Step = "result"
)

// StepFor returns the section a question is rendered in.
func StepFor(q Question) Step {
	switch q {
	case QuestionBusinessType:
		return StepBusinessType
	case QuestionStoreType:
		return StepStoreType
	case QuestionUsesDelivery, QuestionContractCleared, QuestionWillReplaceDevice, QuestionPosPlatform:
		return StepStoreDetails
	case QuestionVan, QuestionTerminal:
		return StepCompatibility
	}
	return ""
}

// Answer is one recorded wizard answer. The concrete variants below are the
// only implementations.
type Answer interface {
	Question() Question
	validate(c Catalog, s State) error
	apply(s *State)
}

type BusinessTypeAnswer struct{ Value BusinessType }

type StoreTypeAnswer struct{ Value StoreType }

type DeliveryAnswer struct{ UsesDelivery bool }

type ContractAnswer struct{ Cleared bool }

type ReplacementAnswer struct{ WillReplace bool }

type PlatformAnswer struct{ Platform PosPlatform }

type VanAnswer struct{ Van string }

type TerminalAnswer struct{ Terminal string }

func (BusinessTypeAnswer) Question() Question { return QuestionBusinessType }
func (StoreTypeAnswer) Question() Question    { return QuestionStoreType }
func (DeliveryAnswer) Question() Question     { return QuestionUsesDelivery }
func (ContractAnswer) Question() Question     { return QuestionContractCleared }
func (ReplacementAnswer) Question() Question  { return QuestionWillReplaceDevice }
func (PlatformAnswer) Question() Question     { return QuestionPosPlatform }
func (VanAnswer) Question() Question          { return QuestionVan }
func (TerminalAnswer) Question() Question     { return QuestionTerminal }

func (a BusinessTypeAnswer) validate(Catalog, State) error {
	if !a.Value.Valid() {
		return fmt.Errorf("%w: business type %q", ErrInvalidAnswer, a.Value)
	}
	return nil
}

func (a StoreTypeAnswer) validate(Catalog, State) error {
	if !a.Value.Valid() {
		return fmt.Errorf("%w: store type %q", ErrInvalidAnswer, a.Value)
	}
	return nil
}

func (DeliveryAnswer) validate(Catalog, State) error    { return nil }
func (ContractAnswer) validate(Catalog, State) error    { return nil }
func (ReplacementAnswer) validate(Catalog, State) error { return nil }

func (a PlatformAnswer) validate(Catalog, State) error {
	if !a.Platform.Valid() {
		return fmt.Errorf("%w: pos platform %q", ErrInvalidAnswer, a.Platform)
	}
	return nil
}

func (a VanAnswer) validate(Catalog, State) error {
	if a.Van == "" {
		return fmt.Errorf("%w: empty van", ErrInvalidAnswer)
	}
	return nil
}

func (a TerminalAnswer) validate(c Catalog, s State) error {
	if a.Terminal == "" {
		return fmt.Errorf("%w: empty terminal", ErrInvalidAnswer)
	}
	if s.SelectedVan == nil || !c.IsCompatibleVan(*s.SelectedVan) {
		return fmt.Errorf("%w: terminal requires a compatible van", ErrQuestionNotAvailable)
	}
	return nil
}

func (a BusinessTypeAnswer) apply(s *State) { s.BusinessType = ptr(a.Value) }
func (a StoreTypeAnswer) apply(s *State)    { s.StoreType = ptr(a.Value) }
func (a DeliveryAnswer) apply(s *State)     { s.UsesDelivery = ptr(a.UsesDelivery) }
func (a ContractAnswer) apply(s *State)     { s.ContractObligationCleared = ptr(a.Cleared) }
func (a ReplacementAnswer) apply(s *State)  { s.WillReplaceDevice = ptr(a.WillReplace) }
func (a PlatformAnswer) apply(s *State)     { s.CurrentPosPlatform = ptr(a.Platform) }
func (a VanAnswer) apply(s *State)          { s.SelectedVan = ptr(a.Van) }
func (a TerminalAnswer) apply(s *State)     { s.SelectedTerminal = ptr(a.Terminal) }

// Wizard drives one triage session. Answers are kept as an ordered path; a
// changed answer drops every answer recorded after it, so downstream fields
// can never outlive the branch they were given on.
//
// A Wizard is not safe for concurrent use. Create one per session.
type Wizard struct {
	catalog Catalog
	blocked map[string]struct{}
	answers []Answer
}

// NewWizard returns an empty wizard. A nil catalog selects DefaultCatalog.
func NewWizard(c Catalog) *Wizard {
	if c == nil {
		c = DefaultCatalog()
	}
	return &Wizard{
		catalog: c,
		blocked: make(map[string]struct{}),
	}
}

// Catalog returns the tables the wizard validates against.
func (w *Wizard) Catalog() Catalog {
	return w.catalog
}

// ToggleBlockCondition checks or unchecks a block condition. Answers are kept
// while blocked so unchecking resumes where the agent left off.
func (w *Wizard) ToggleBlockCondition(id string, checked bool) error {
	if _, ok := w.catalog.BlockCondition(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBlockCondition, id)
	}
	if checked {
		w.blocked[id] = struct{}{}
	} else {
		delete(w.blocked, id)
	}
	return nil
}

// Answer records a for its question. Re-answering with the same value is a
// no-op; a different value discards all later answers.
func (w *Wizard) Answer(a Answer) error {
	if a == nil {
		return fmt.Errorf("%w: nil answer", ErrInvalidAnswer)
	}
	if w.Blocked() {
		return ErrWizardBlocked
	}

	q := a.Question()
	if i := w.indexOf(q); i >= 0 {
		if w.answers[i] == a {
			return nil
		}
		if err := a.validate(w.catalog, w.stateThrough(i)); err != nil {
			return err
		}
		w.answers = append(w.answers[:i:i], a)
		return nil
	}

	if next := w.NextQuestion(); next != q {
		return fmt.Errorf("%w: %s (next is %q)", ErrQuestionNotAvailable, q, next)
	}
	if err := a.validate(w.catalog, w.State()); err != nil {
		return err
	}
	w.answers = append(w.answers, a)
	return nil
}

// Answers returns the recorded answers in the order they were given.
func (w *Wizard) Answers() []Answer {
	return append([]Answer(nil), w.answers...)
}

// Blocked reports whether any block condition is checked.
func (w *Wizard) Blocked() bool {
	return len(w.blocked) > 0
}

// State projects the wizard onto the flat TriageState view.
func (w *Wizard) State() State {
	s := w.stateThrough(len(w.answers))
	if len(w.blocked) > 0 {
		ids := make([]string, 0, len(w.blocked))
		for id := range w.blocked {
			ids = append(ids, id)
		}
		s.BlockedConditionIDs = normalizeIDs(ids)
	}
	return s
}

// stateThrough folds the first n answers, ignoring block conditions.
func (w *Wizard) stateThrough(n int) State {
	var s State
	for _, a := range w.answers[:n] {
		a.apply(&s)
	}
	return s
}

func (w *Wizard) Outcome() *RecommendationKey {
	return Resolve(w.State())
}

func (w *Wizard) Complete() bool {
	return IsComplete(w.State())
}

// NextQuestion returns the first unanswered question on the current branch,
// or QuestionNone when blocked or nothing further can be asked.
func (w *Wizard) NextQuestion() Question {
	if w.Blocked() {
		return QuestionNone
	}
	return nextQuestion(w.catalog, w.State())
}

func nextQuestion(c Catalog, s State) Question {
	switch {
	case s.BusinessType == nil:
		return QuestionBusinessType
	case *s.BusinessType != BusinessFood:
		return QuestionNone
	case s.StoreType == nil:
		return QuestionStoreType
	}

	if *s.StoreType == StoreNew {
		if s.UsesDelivery == nil {
			return QuestionUsesDelivery
		}
		return QuestionNone
	}

	switch {
	case s.ContractObligationCleared == nil:
		return QuestionContractCleared
	case !*s.ContractObligationCleared:
		return QuestionNone
	case s.WillReplaceDevice == nil:
		return QuestionWillReplaceDevice
	case !*s.WillReplaceDevice:
		return QuestionNone
	case s.CurrentPosPlatform == nil:
		return QuestionPosPlatform
	case *s.CurrentPosPlatform != PlatformAndroid:
		return QuestionNone
	case s.SelectedVan == nil:
		return QuestionVan
	case !c.IsCompatibleVan(*s.SelectedVan):
		return QuestionNone
	case s.SelectedTerminal == nil:
		return QuestionTerminal
	}
	return QuestionNone
}

// VisibleSteps returns the sections the UI should render, in order.
func (w *Wizard) VisibleSteps() []Step {
	steps := []Step{StepEligibility}
	if w.Blocked() {
		return steps
	}

	s := w.State()
	steps = append(steps, StepBusinessType)
	if s.BusinessType != nil && *s.BusinessType == BusinessFood {
		steps = append(steps, StepStoreType)
		if s.StoreType != nil {
			steps = append(steps, StepStoreDetails)
		}
		if compatibilityApplies(s) {
			steps = append(steps, StepCompatibility)
		}
	}
	if IsComplete(s) {
		steps = append(steps, StepResult)
	}
	return steps
}

// CurrentStep returns the section the agent should be looking at.
func (w *Wizard) CurrentStep() Step {
	if w.Blocked() {
		return StepEligibility
	}
	if q := w.NextQuestion(); q != QuestionNone {
		return StepFor(q)
	}
	return StepResult
}

// Clear resets the wizard to the empty state.
func (w *Wizard) Clear() {
	w.blocked = make(map[string]struct{})
	w.answers = nil
}

func (w *Wizard) indexOf(q Question) int {
	for i, a := range w.answers {
		if a.Question() == q {
			return i
		}
	}
	return -1
}

// FromState rebuilds a wizard from a flat state, rejecting the first field
// that is invalid or not reachable on its branch.
func FromState(c Catalog, s State) (*Wizard, error) {
	w := NewWizard(c)
	for _, a := range answersOf(s) {
		if err := w.Answer(a); err != nil {
			return nil, err
		}
	}
	for _, id := range s.BlockedConditionIDs {
		if err := w.ToggleBlockCondition(id, true); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// restoreWizard is the lenient counterpart of FromState: unreachable or
// invalid fields are dropped and block condition IDs are kept verbatim.
func restoreWizard(c Catalog, s State) *Wizard {
	w := NewWizard(c)
	for _, a := range answersOf(s) {
		_ = w.Answer(a)
	}
	for _, id := range normalizeIDs(s.BlockedConditionIDs) {
		w.blocked[id] = struct{}{}
	}
	return w
}

// answersOf lists the non-nil fields of s as answers in question order.
func answersOf(s State) []Answer {
	var out []Answer
	if s.BusinessType != nil {
		out = append(out, BusinessTypeAnswer{Value: *s.BusinessType})
	}
	if s.StoreType != nil {
		out = append(out, StoreTypeAnswer{Value: *s.StoreType})
	}
	if s.UsesDelivery != nil {
		out = append(out, DeliveryAnswer{UsesDelivery: *s.UsesDelivery})
	}
	if s.ContractObligationCleared != nil {
		out = append(out, ContractAnswer{Cleared: *s.ContractObligationCleared})
	}
	if s.WillReplaceDevice != nil {
		out = append(out, ReplacementAnswer{WillReplace: *s.WillReplaceDevice})
	}
	if s.CurrentPosPlatform != nil {
		out = append(out, PlatformAnswer{Platform: *s.CurrentPosPlatform})
	}
	if s.SelectedVan != nil {
		out = append(out, VanAnswer{Van: *s.SelectedVan})
	}
	if s.SelectedTerminal != nil {
		out = append(out, TerminalAnswer{Terminal: *s.SelectedTerminal})
	}
	return out
}
