// ABOUTME: Wizard engine sequencing intake phases for every variant
// ABOUTME: Skip-aware navigation, progress, busy flags, and submission
package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prismfoil/intake/models"
)

// Phase is one step of a wizard variant. Valid gates forward navigation;
// Skip (optional) removes the phase from traversal for the current form
// data, in both directions.
type Phase struct {
	ID    string
	Title string
	Valid func(models.FormData) bool
	Skip  func(models.FormData) bool
}

// SubmissionGateway is the CRM profile upsert contract. Any non-nil error
// is a uniform "submission failed" outcome to the wizard.
type SubmissionGateway interface {
	UpsertProfile(ctx context.Context, form models.FormData) error
	SubscribeProfile(ctx context.Context, form models.FormData) error
}

// ProfileLookup answers the phase-one "does this email exist" guard.
type ProfileLookup interface {
	ProfileExists(ctx context.Context, email string) (bool, error)
}

var (
	ErrBusy          = errors.New("wizard: operation already in flight")
	ErrPhaseInvalid  = errors.New("wizard: current phase is not valid")
	ErrNotFinalPhase = errors.New("wizard: submit is only allowed from the final phase")
	ErrComplete      = errors.New("wizard: wizard already complete")
)

// Engine drives one wizard instance: the current phase index (1..N, with
// N+1 terminal), the form data, and the single-in-flight busy flags for
// the email guard and submission.
type Engine struct {
	variant Variant
	form    models.FormData
	current int
	now     func() time.Time

	submitting      bool
	validatingEmail bool
	complete        bool

	// redirectPending is set when the email guard came back negative (or
	// failed) and the user must choose between retrying and switching
	// wizards.
	redirectPending bool
}

// NewEngine mounts a wizard at phase 1 with the variant's default data.
func NewEngine(v Variant) *Engine {
	return &Engine{
		variant: v,
		form:    v.InitialData(),
		current: 1,
		now:     time.Now,
	}
}

// NewEngineSeeded mounts a wizard seeded from shared-state data handed
// off by a sibling wizard.
func NewEngineSeeded(v Variant, seed models.FormData) *Engine {
	e := NewEngine(v)
	e.form = v.SeedData(seed)
	return e
}

// WithClock overrides the submission timestamp source. Test hook.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

func (e *Engine) Variant() Variant        { return e.variant }
func (e *Engine) Form() models.FormData   { return e.form }
func (e *Engine) Current() int            { return e.current }
func (e *Engine) TotalPhases() int        { return len(e.variant.Phases) }
func (e *Engine) IsComplete() bool        { return e.complete }
func (e *Engine) IsSubmitting() bool      { return e.submitting }
func (e *Engine) IsValidatingEmail() bool { return e.validatingEmail }
func (e *Engine) RedirectPending() bool   { return e.redirectPending }

// CurrentPhase returns the active phase definition. Only meaningful while
// the wizard is not complete.
func (e *Engine) CurrentPhase() Phase {
	return e.variant.Phases[e.current-1]
}

// Update merges a partial change into the form data. This is the only
// mutation path phase views get.
func (e *Engine) Update(p models.Partial) {
	e.form = e.form.Merge(p)
}

// SetForm replaces the whole record, used when reconciling a shared-state
// load after mount.
func (e *Engine) SetForm(f models.FormData) {
	e.form = f
}

// Progress is the completion fraction shown above the form, clamped to 1
// once the wizard reaches the terminal state.
func (e *Engine) Progress() float64 {
	if e.complete {
		return 1
	}
	return float64(e.current) / float64(len(e.variant.Phases))
}

// CanNext reports whether forward navigation is currently allowed.
func (e *Engine) CanNext() bool {
	if e.complete || e.submitting || e.validatingEmail {
		return false
	}
	if e.current >= e.lastPhase() {
		return false
	}
	return e.CurrentPhase().Valid(e.form)
}

// Next advances to the following unskipped phase.
func (e *Engine) Next() error {
	if !e.CanNext() {
		return ErrPhaseInvalid
	}
	e.current = e.nextIndex(e.current)
	return nil
}

// CanBack is false on the first phase and while an operation is in
// flight.
func (e *Engine) CanBack() bool {
	if e.complete || e.submitting || e.validatingEmail {
		return false
	}
	return e.prevIndex(e.current) >= 1
}

// Back returns to the previous unskipped phase. Skipped phases are
// bypassed symmetrically: Back from phase k+2 lands on k when k+1 was
// skipped on the way forward.
func (e *Engine) Back() error {
	if !e.CanBack() {
		return ErrPhaseInvalid
	}
	e.current = e.prevIndex(e.current)
	return nil
}

// nextIndex finds the next traversable phase after i. The final data
// phase never skips; callers guard the upper bound.
func (e *Engine) nextIndex(i int) int {
	for j := i + 1; j <= len(e.variant.Phases); j++ {
		if !e.skipped(j) {
			return j
		}
	}
	return len(e.variant.Phases)
}

func (e *Engine) prevIndex(i int) int {
	for j := i - 1; j >= 1; j-- {
		if !e.skipped(j) {
			return j
		}
	}
	return 0
}

func (e *Engine) skipped(i int) bool {
	skip := e.variant.Phases[i-1].Skip
	return skip != nil && skip(e.form)
}

// lastPhase is the index of the final reachable data-entry phase.
func (e *Engine) lastPhase() int {
	for j := len(e.variant.Phases); j >= 1; j-- {
		if !e.skipped(j) {
			return j
		}
	}
	return len(e.variant.Phases)
}

// OnFinalPhase reports whether Submit (rather than Next) applies.
func (e *Engine) OnFinalPhase() bool {
	return !e.complete && e.current == e.lastPhase()
}

// CanSubmit gates the submit control: final phase, valid, nothing in
// flight.
func (e *Engine) CanSubmit() bool {
	return e.OnFinalPhase() && !e.submitting && !e.validatingEmail &&
		e.CurrentPhase().Valid(e.form)
}

// BeginSubmit flips the busy flag and stamps the submission timestamps,
// returning the snapshot to hand to the gateway. The caller must resolve
// with FinishSubmit exactly once.
func (e *Engine) BeginSubmit() (models.FormData, error) {
	if e.complete {
		return models.FormData{}, ErrComplete
	}
	if e.submitting {
		return models.FormData{}, ErrBusy
	}
	if !e.OnFinalPhase() {
		return models.FormData{}, ErrNotFinalPhase
	}
	if !e.CurrentPhase().Valid(e.form) {
		return models.FormData{}, ErrPhaseInvalid
	}
	e.form = e.form.StampTimestamps(e.now())
	e.submitting = true
	return e.form, nil
}

// FinishSubmit clears the busy flag unconditionally. On success the
// wizard moves to the terminal state; on failure it stays on the final
// phase so the user may retry.
func (e *Engine) FinishSubmit(err error) {
	e.submitting = false
	if err != nil {
		return
	}
	e.complete = true
	e.current = len(e.variant.Phases) + 1
}

// Submit runs the sequenced gateway calls: the profile upsert must
// resolve before any subscribe attempt. Intended to run off the UI loop
// between BeginSubmit and FinishSubmit.
func Submit(ctx context.Context, gw SubmissionGateway, v Variant, form models.FormData) error {
	if err := gw.UpsertProfile(ctx, form); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	if v.Subscribe {
		if err := gw.SubscribeProfile(ctx, form); err != nil {
			return fmt.Errorf("subscribe profile: %w", err)
		}
	}
	return nil
}

// NeedsEmailGuard reports whether Next from the current phase must first
// pass the email-existence lookup.
func (e *Engine) NeedsEmailGuard() bool {
	return e.variant.GuardEmail && e.current == 1 && !e.complete
}

// BeginEmailCheck flips the lookup busy flag. The current phase must
// already be valid: the guard runs instead of Next, not before its
// validity check.
func (e *Engine) BeginEmailCheck() (string, error) {
	if e.validatingEmail {
		return "", ErrBusy
	}
	if !e.CurrentPhase().Valid(e.form) {
		return "", ErrPhaseInvalid
	}
	e.validatingEmail = true
	return e.form.Email, nil
}

// FinishEmailCheck resolves the guard. A found profile advances the
// wizard. Not-found and lookup failure are treated identically: both
// open the redirect prompt (fail open, never block navigation on a
// transport error).
func (e *Engine) FinishEmailCheck(found bool, err error) {
	e.validatingEmail = false
	if err == nil && found {
		e.current = e.nextIndex(e.current)
		return
	}
	e.redirectPending = true
}

// DismissRedirect closes the prompt, leaving the user on the guarded
// phase to fix the email or retry.
func (e *Engine) DismissRedirect() {
	e.redirectPending = false
}

// AcceptRedirect closes the prompt and returns the field subset to carry
// into the sibling wizard through the shared store.
func (e *Engine) AcceptRedirect() models.FormData {
	e.redirectPending = false
	return e.form.SharedSubset()
}
