// ABOUTME: Data models for collector intake and leaderboard entities
// ABOUTME: Defines FormData, Partial, LeaderboardEntry, and Submission structs
package models

import (
	"time"

	"github.com/google/uuid"
)

// Communication preference constants.
const (
	PrefEmail = "email"
	PrefText  = "text"
	PrefBoth  = "both"
)

// DefaultRegion is the numbering-plan region assumed when a phone number
// carries no country code.
const DefaultRegion = "US"

// FormData is the canonical flat record for everything a wizard can
// collect. Transport naming (snake_case) is applied only at the Klaviyo
// boundary; inside the process this shape is the single source of truth.
type FormData struct {
	IsReturningCollector bool     `json:"is_returning_collector"`
	RulesAccepted        []bool   `json:"rules_accepted"`
	FirstName            string   `json:"first_name"`
	LastName             string   `json:"last_name"`
	DiscordUsername      string   `json:"discord_username,omitempty"`
	InstagramHandle      string   `json:"instagram_handle,omitempty"`
	CollectionReason     string   `json:"collection_reason,omitempty"`
	Interests            string   `json:"interests,omitempty"`
	Email                string   `json:"email"`
	PhoneNumber          string   `json:"phone_number,omitempty"`
	CommunicationPref    string   `json:"communication_preference,omitempty"`
	MarketingConsent     bool     `json:"marketing_consent"`
	PieceCount           string   `json:"piece_count,omitempty"`
	FirstPiece           string   `json:"first_piece,omitempty"`
	FavoriteVariation    string   `json:"favorite_variation,omitempty"`
	FavoriteVariation2   string   `json:"favorite_variation_2,omitempty"`
	FavoriteVariation3   string   `json:"favorite_variation_3,omitempty"`
	CollectPreferences   []string `json:"collect_preferences,omitempty"`
	CategoryToAdd        string   `json:"category_to_add,omitempty"`
	CommunityExperience  string   `json:"community_experience,omitempty"`
	Improvements         string   `json:"improvements,omitempty"`
	Created              string   `json:"created,omitempty"`
	Updated              string   `json:"updated,omitempty"`
}

// Partial is a shallow-merge update to FormData. Nil fields are left
// untouched by Merge; slices replace wholesale when non-nil. This is the
// only mutation path the wizard uses.
type Partial struct {
	IsReturningCollector *bool
	RulesAccepted        []bool
	FirstName            *string
	LastName             *string
	DiscordUsername      *string
	InstagramHandle      *string
	CollectionReason     *string
	Interests            *string
	Email                *string
	PhoneNumber          *string
	CommunicationPref    *string
	MarketingConsent     *bool
	PieceCount           *string
	FirstPiece           *string
	FavoriteVariation    *string
	FavoriteVariation2   *string
	FavoriteVariation3   *string
	CollectPreferences   []string
	CategoryToAdd        *string
	CommunityExperience  *string
	Improvements         *string
}

type LeaderboardEntry struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission is the local audit row recorded after a successful CRM
// profile upsert.
type Submission struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Variant   string    `json:"variant"`
	CreatedAt time.Time `json:"created_at"`
}
