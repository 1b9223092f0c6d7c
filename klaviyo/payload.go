// ABOUTME: FormData to Klaviyo profile attribute mapping
// ABOUTME: The one place snake_case transport naming is produced
package klaviyo

import (
	"github.com/prismfoil/intake/models"
	"github.com/prismfoil/intake/validate"
)

// ProfileAttributes is the transport shape for a profile upsert. Custom
// collector fields ride in Properties.
type ProfileAttributes struct {
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	FirstName   string         `json:"first_name,omitempty"`
	LastName    string         `json:"last_name,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
}

// ProfilePayload maps the canonical FormData onto profile attributes.
// The phone is normalized to E.164 here as a final safety net; the
// consent-phase blur has normally done it already.
func ProfilePayload(form models.FormData) ProfileAttributes {
	attrs := ProfileAttributes{
		Email:       form.Email,
		PhoneNumber: validate.FormatPhoneE164(form.PhoneNumber, models.DefaultRegion),
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Properties:  map[string]any{},
	}

	props := attrs.Properties
	props["marketing_consent"] = form.MarketingConsent
	setIfPresent(props, "created", form.Created)
	setIfPresent(props, "updated", form.Updated)
	setIfPresent(props, "discord_username", form.DiscordUsername)
	setIfPresent(props, "instagram_handle", form.InstagramHandle)
	setIfPresent(props, "communication_preference", form.CommunicationPref)
	setIfPresent(props, "collection_reason", form.CollectionReason)
	setIfPresent(props, "interests", form.Interests)
	setIfPresent(props, "piece_count", form.PieceCount)
	setIfPresent(props, "first_piece", form.FirstPiece)
	setIfPresent(props, "favorite_variation", form.FavoriteVariation)
	setIfPresent(props, "favorite_variation_2", form.FavoriteVariation2)
	setIfPresent(props, "favorite_variation_3", form.FavoriteVariation3)
	setIfPresent(props, "category_to_add", form.CategoryToAdd)
	setIfPresent(props, "community_experience", form.CommunityExperience)
	setIfPresent(props, "improvements", form.Improvements)
	if len(form.CollectPreferences) > 0 {
		props["collect_preferences"] = form.CollectPreferences
	}

	return attrs
}

func setIfPresent(props map[string]any, key, value string) {
	if value != "" {
		props[key] = value
	}
}
