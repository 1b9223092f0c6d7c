// ABOUTME: Klaviyo API client for profile upsert, subscribe, and lookup
// ABOUTME: API-key auth, JSON:API envelopes, sentinel not-found error
package klaviyo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prismfoil/intake/models"
)

const (
	defaultBaseURL = "https://a.klaviyo.com"
	apiRevision    = "2025-04-15"
)

// ErrProfileNotFound is returned by GetProfileByEmail when no profile
// matches the queried address.
var ErrProfileNotFound = errors.New("klaviyo: profile not found")

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	// listID is the mailing list targeted by SubscribeProfile.
	listID string
}

type Option func(*Client)

// WithBaseURL points the client at a different API host (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithListID(id string) Option {
	return func(c *Client) { c.listID = id }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Profile is the slimmed-down record returned by the lookup endpoint.
type Profile struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Attributes ProfileAttributes `json:"attributes"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.api+json")
	req.Header.Set("Authorization", "Klaviyo-API-Key "+c.apiKey)
	req.Header.Set("Revision", apiRevision)
	if body != nil {
		req.Header.Set("Content-Type", "application/vnd.api+json")
	}

	return c.httpClient.Do(req)
}

// UpsertProfile creates or updates the CRM profile for the form's email.
// The form is mapped to transport naming here and nowhere else.
func (c *Client) UpsertProfile(ctx context.Context, form models.FormData) error {
	payload := map[string]any{
		"data": map[string]any{
			"type":       "profile",
			"attributes": ProfilePayload(form),
		},
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/profile-import", payload)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upsert profile: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// SubscribeProfile adds the profile to the configured mailing list,
// honoring the channels the collector consented to. Callers sequence this
// strictly after a successful UpsertProfile.
func (c *Client) SubscribeProfile(ctx context.Context, form models.FormData) error {
	if !form.MarketingConsent {
		return nil
	}

	attrs := map[string]any{"email": form.Email}
	if form.PhoneNumber != "" &&
		(form.CommunicationPref == models.PrefText || form.CommunicationPref == models.PrefBoth) {
		attrs["phone_number"] = form.PhoneNumber
	}

	payload := map[string]any{
		"data": map[string]any{
			"type": "profile-subscription-bulk-create-job",
			"attributes": map[string]any{
				"profiles": map[string]any{
					"data": []any{
						map[string]any{"type": "profile", "attributes": attrs},
					},
				},
			},
			"relationships": map[string]any{
				"list": map[string]any{
					"data": map[string]any{"type": "list", "id": c.listID},
				},
			},
		},
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/profile-subscription-bulk-create-jobs", payload)
	if err != nil {
		return fmt.Errorf("subscribe profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("subscribe profile: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// GetProfileByEmail fetches the profile matching email, or
// ErrProfileNotFound when the filter comes back empty.
func (c *Client) GetProfileByEmail(ctx context.Context, email string) (*Profile, error) {
	filter := url.QueryEscape(fmt.Sprintf(`equals(email,"%s")`, email))
	resp, err := c.do(ctx, http.MethodGet, "/api/profiles?filter="+filter, nil)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get profile: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Data []Profile `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("get profile: decode response: %w", err)
	}
	if len(body.Data) == 0 {
		return nil, ErrProfileNotFound
	}
	return &body.Data[0], nil
}

// ProfileExists implements the wizard's lookup guard contract.
func (c *Client) ProfileExists(ctx context.Context, email string) (bool, error) {
	_, err := c.GetProfileByEmail(ctx, email)
	if errors.Is(err, ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
