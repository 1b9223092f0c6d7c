package validate

import "testing"

func TestFieldStateKeystrokeDoesNotValidate(t *testing.T) {
	s := NewFieldState("")
	s = s.WithValue("not-an-email")

	if !s.IsTouched {
		t.Error("Keystroke should mark the field touched")
	}
	if !s.IsValid {
		t.Error("Validity is not recomputed until blur")
	}
	if s.ShowError() {
		t.Error("No error to show before blur")
	}
}

func TestFieldStateBlurValidates(t *testing.T) {
	s := NewFieldState("").WithValue("not-an-email").Blur(Email)
	if s.IsValid {
		t.Error("Blur should have flagged the bad email")
	}
	if !s.ShowError() {
		t.Error("Touched invalid field should render its error")
	}

	s = s.WithValue("dana@example.com").Blur(Email)
	if !s.IsValid || s.ShowError() {
		t.Error("Fixed value should clear the error on blur")
	}
}

func TestFieldStateBlurAppliesFormattedValue(t *testing.T) {
	phoneUS := func(v string) Result { return Phone(v, "US") }
	s := NewFieldState("").WithValue("(808) 728-6347").Blur(phoneUS)
	if !s.IsValid {
		t.Fatalf("Phone should validate: %s", s.Error)
	}
	if s.Value != "+18087286347" {
		t.Errorf("Blur should commit the E.164 form, got %q", s.Value)
	}
}

func TestFieldStateReconcileDoesNotTouch(t *testing.T) {
	s := NewFieldState("")
	s = s.Reconcile("dana@example.com")

	if s.Value != "dana@example.com" {
		t.Errorf("Reconcile did not sync value: %q", s.Value)
	}
	if s.IsTouched {
		t.Error("External reconciliation must not mark the field touched")
	}

	// Matching values are a no-op, so local edits never bounce back.
	edited := s.WithValue("dana@")
	if got := edited.Reconcile("dana@"); got.Value != "dana@" {
		t.Error("Reconcile with equal value should change nothing")
	}
}
