// ABOUTME: Per-field validation state for wizard inputs
// ABOUTME: Tracks raw value, touched flag, and blur-time validity
package validate

// FieldState holds the local state of one displayed field. Value follows
// every keystroke; IsValid and Error are only recomputed on blur (or an
// explicit real-time check for fields like phone). IsTouched gates error
// rendering so pristine fields never show red.
type FieldState struct {
	Value     string
	IsTouched bool
	IsValid   bool
	Error     string
}

// NewFieldState creates the state for a field seeded with initial. A
// seeded field starts valid and untouched.
func NewFieldState(initial string) FieldState {
	return FieldState{Value: initial, IsValid: true}
}

// WithValue records a keystroke: the value moves and the field becomes
// touched, but validity is left alone until blur.
func (s FieldState) WithValue(value string) FieldState {
	s.Value = value
	s.IsTouched = true
	return s
}

// Reconcile syncs the held value to a change made outside this field
// (a seeded or shared-state load). The touched flag is deliberately not
// set: the user has not interacted yet. Local edits never round-trip
// through here, which keeps the sync one-directional.
func (s FieldState) Reconcile(external string) FieldState {
	if s.Value == external {
		return s
	}
	s.Value = external
	return s
}

// Blur recomputes validity from the field's own current value using the
// supplied validator. Using s.Value rather than the outer form avoids
// racing a debounced commit.
func (s FieldState) Blur(validator func(string) Result) FieldState {
	res := validator(s.Value)
	s.IsValid = res.IsValid
	s.Error = res.Error
	if res.FormattedValue != "" {
		s.Value = res.FormattedValue
	}
	return s
}

// ShowError reports whether an inline error should render.
func (s FieldState) ShowError() bool {
	return s.IsTouched && !s.IsValid && s.Error != ""
}
