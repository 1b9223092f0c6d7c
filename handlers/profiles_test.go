// ABOUTME: Tests for profile and shared-state MCP tool handlers
// ABOUTME: Uses a stub lookup and a temp badger store
package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prismfoil/intake/models"
	"github.com/prismfoil/intake/shared"
)

type stubLookup struct {
	exists bool
	err    error
}

func (l *stubLookup) ProfileExists(ctx context.Context, email string) (bool, error) {
	return l.exists, l.err
}

func TestLookupProfileHandler(t *testing.T) {
	handler := NewProfileHandlers(&stubLookup{exists: true})

	_, out, err := handler.LookupProfile(context.Background(), nil, LookupProfileInput{Email: "dana@example.com"})
	if err != nil {
		t.Fatalf("LookupProfile failed: %v", err)
	}
	if !out.Exists {
		t.Error("Expected the profile to exist")
	}
}

func TestLookupProfileRejectsBadEmail(t *testing.T) {
	handler := NewProfileHandlers(&stubLookup{})

	if _, _, err := handler.LookupProfile(context.Background(), nil, LookupProfileInput{Email: "not-an-email"}); err == nil {
		t.Error("Expected error for a malformed email")
	}
}

func TestLookupProfileSurfacesTransportError(t *testing.T) {
	handler := NewProfileHandlers(&stubLookup{err: errors.New("boom")})

	if _, _, err := handler.LookupProfile(context.Background(), nil, LookupProfileInput{Email: "dana@example.com"}); err == nil {
		t.Error("Expected the lookup error to surface")
	}
}

func setupStore(t *testing.T) *shared.Store {
	t.Helper()

	store, err := shared.Open(filepath.Join(t.TempDir(), "shared"))
	if err != nil {
		t.Fatalf("shared.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSharedDataHandlers(t *testing.T) {
	store := setupStore(t)
	handler := NewSharedHandlers(store)

	_, missing, err := handler.GetSharedData(context.Background(), nil, GetSharedDataInput{})
	if err != nil {
		t.Fatalf("GetSharedData failed: %v", err)
	}
	if missing.Found {
		t.Error("Expected no shared data in a fresh store")
	}

	form := models.DefaultFormData()
	form.FirstName = "Dana"
	form.Email = "dana@example.com"
	store.Set(shared.DefaultKey, form)

	_, found, err := handler.GetSharedData(context.Background(), nil, GetSharedDataInput{})
	if err != nil {
		t.Fatalf("GetSharedData failed: %v", err)
	}
	if !found.Found || found.Email != "dana@example.com" {
		t.Errorf("Unexpected shared data output: %+v", found)
	}

	_, cleared, err := handler.ClearSharedData(context.Background(), nil, ClearSharedDataInput{})
	if err != nil {
		t.Fatalf("ClearSharedData failed: %v", err)
	}
	if !cleared.Cleared {
		t.Error("Expected the clear to report success")
	}
	if store.Has(shared.DefaultKey) {
		t.Error("Expected the key to be gone after clearing")
	}
}
