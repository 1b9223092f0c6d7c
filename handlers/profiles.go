// ABOUTME: Profile and shared-state MCP tool handlers
// ABOUTME: Implements lookup_profile, get_shared_data, and clear_shared_data tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/prismfoil/intake/shared"
	"github.com/prismfoil/intake/validate"
	"github.com/prismfoil/intake/wizard"
)

type ProfileHandlers struct {
	lookup wizard.ProfileLookup
}

func NewProfileHandlers(lookup wizard.ProfileLookup) *ProfileHandlers {
	return &ProfileHandlers{lookup: lookup}
}

type LookupProfileInput struct {
	Email string `json:"email" jsonschema:"Email address to look up (required)"`
}

type LookupProfileOutput struct {
	Email  string `json:"email"`
	Exists bool   `json:"exists"`
}

func (h *ProfileHandlers) LookupProfile(ctx context.Context, request *mcp.CallToolRequest, input LookupProfileInput) (*mcp.CallToolResult, LookupProfileOutput, error) {
	if res := validate.Email(input.Email); !res.IsValid {
		return nil, LookupProfileOutput{}, fmt.Errorf("invalid email: %s", res.Error)
	}
	if h.lookup == nil {
		return nil, LookupProfileOutput{}, fmt.Errorf("profile lookup is not configured")
	}

	exists, err := h.lookup.ProfileExists(ctx, input.Email)
	if err != nil {
		return nil, LookupProfileOutput{}, fmt.Errorf("failed to look up profile: %w", err)
	}

	return nil, LookupProfileOutput{Email: input.Email, Exists: exists}, nil
}

type SharedHandlers struct {
	store *shared.Store
}

func NewSharedHandlers(store *shared.Store) *SharedHandlers {
	return &SharedHandlers{store: store}
}

type GetSharedDataInput struct {
	Key string `json:"key,omitempty" jsonschema:"Shared-state key (defaults to the wizard handoff key)"`
}

type GetSharedDataOutput struct {
	Found     bool   `json:"found"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (h *SharedHandlers) GetSharedData(_ context.Context, request *mcp.CallToolRequest, input GetSharedDataInput) (*mcp.CallToolResult, GetSharedDataOutput, error) {
	key := input.Key
	if key == "" {
		key = shared.DefaultKey
	}

	form, ok := h.store.Get(key)
	if !ok {
		return nil, GetSharedDataOutput{Found: false}, nil
	}

	return nil, GetSharedDataOutput{
		Found:     true,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	}, nil
}

type ClearSharedDataInput struct {
	Key string `json:"key,omitempty" jsonschema:"Shared-state key (defaults to the wizard handoff key)"`
}

type ClearSharedDataOutput struct {
	Cleared bool `json:"cleared"`
}

func (h *SharedHandlers) ClearSharedData(_ context.Context, request *mcp.CallToolRequest, input ClearSharedDataInput) (*mcp.CallToolResult, ClearSharedDataOutput, error) {
	key := input.Key
	if key == "" {
		key = shared.DefaultKey
	}

	h.store.Clear(key)
	return nil, ClearSharedDataOutput{Cleared: true}, nil
}
