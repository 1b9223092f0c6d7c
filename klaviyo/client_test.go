package klaviyo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismfoil/intake/models"
)

func testForm() models.FormData {
	f := models.DefaultFormData()
	first, last, email, phone := "Dana", "Pig", "dana@example.com", "(808) 728-6347"
	consent := true
	return f.Merge(models.Partial{
		FirstName:          &first,
		LastName:           &last,
		Email:              &email,
		PhoneNumber:        &phone,
		MarketingConsent:   &consent,
		CollectPreferences: []string{"Music", "Anime"},
	})
}

func TestUpsertProfileSendsMappedPayload(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/profile-import", r.URL.Path)
		require.Equal(t, "Klaviyo-API-Key test-key", r.Header.Get("Authorization"))
		require.Equal(t, apiRevision, r.Header.Get("Revision"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	require.NoError(t, c.UpsertProfile(context.Background(), testForm()))

	data := captured["data"].(map[string]any)
	assert.Equal(t, "profile", data["type"])
	attrs := data["attributes"].(map[string]any)
	assert.Equal(t, "dana@example.com", attrs["email"])
	assert.Equal(t, "+18087286347", attrs["phone_number"], "phone must ship as E.164")

	props := attrs["properties"].(map[string]any)
	assert.Equal(t, true, props["marketing_consent"])
	assert.Equal(t, []any{"Music", "Anime"}, props["collect_preferences"])
	assert.NotContains(t, props, "piece_count", "empty fields stay off the wire")
}

func TestUpsertProfileNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	err := c.UpsertProfile(context.Background(), testForm())
	assert.Error(t, err, "any non-success is a uniform submission failure")
}

func TestGetProfileByEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/profiles", r.URL.Path)
		require.Contains(t, r.URL.RawQuery, "filter=")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "abc123", "type": "profile", "attributes": map[string]any{"email": "dana@example.com"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	p, err := c.GetProfileByEmail(context.Background(), "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc123", p.ID)

	found, err := c.ProfileExists(context.Background(), "dana@example.com")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestGetProfileByEmailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.GetProfileByEmail(context.Background(), "nobody@example.com")
	assert.True(t, errors.Is(err, ErrProfileNotFound))

	found, err := c.ProfileExists(context.Background(), "nobody@example.com")
	require.NoError(t, err, "not-found is not a lookup error")
	assert.False(t, found)
}

func TestProfileExistsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.ProfileExists(context.Background(), "dana@example.com")
	assert.Error(t, err, "transport errors surface so the wizard can fail open")
}

func TestSubscribeProfileHonorsConsent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/api/profile-subscription-bulk-create-jobs", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithListID("LIST1"))

	// Without consent the call is skipped entirely.
	noConsent := testForm()
	noConsent.MarketingConsent = false
	require.NoError(t, c.SubscribeProfile(context.Background(), noConsent))
	assert.Equal(t, 0, calls)

	require.NoError(t, c.SubscribeProfile(context.Background(), testForm()))
	assert.Equal(t, 1, calls)
}
