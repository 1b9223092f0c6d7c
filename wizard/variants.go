// ABOUTME: Declarative wizard variant definitions
// ABOUTME: One phase list per intake flow instead of hand-copied machines
package wizard

import (
	"github.com/prismfoil/intake/models"
	"github.com/prismfoil/intake/validate"
)

// Variant names, used for CLI selection and the submission log.
const (
	VariantNewCollector = "new"
	VariantOGCollector  = "og"
	VariantReservation  = "reservation"
)

// Variant is one intake flow described as data: a phase list plus the
// behaviors that differ between flows.
type Variant struct {
	Name  string
	Title string

	Phases []Phase

	// MaxPreferences bounds the ranked category selector.
	MaxPreferences int

	// GuardEmail runs the profile-existence lookup before Next on phase 1.
	GuardEmail bool

	// Subscribe sequences a mailing-list subscribe after the profile
	// upsert succeeds.
	Subscribe bool

	// SeedFromShared loads the shared store at mount; WriteBackShared
	// stores the form again after a successful submission.
	SeedFromShared  bool
	WriteBackShared bool

	// ReturningCollector is the classification the variant declares at
	// mount.
	ReturningCollector bool
}

// InitialData is the record the variant mounts with.
func (v Variant) InitialData() models.FormData {
	f := models.DefaultFormData()
	f.IsReturningCollector = v.ReturningCollector
	return f
}

// SeedData merges a shared-state handoff into the variant's initial
// record. Only the identity/contact subset carries over; classification
// stays the variant's own.
func (v Variant) SeedData(seed models.FormData) models.FormData {
	f := v.InitialData()
	sub := seed.SharedSubset()
	f.FirstName = sub.FirstName
	f.LastName = sub.LastName
	f.Email = sub.Email
	f.PhoneNumber = sub.PhoneNumber
	f.MarketingConsent = sub.MarketingConsent
	f.CommunicationPref = sub.CommunicationPref
	f.DiscordUsername = sub.DiscordUsername
	f.InstagramHandle = sub.InstagramHandle
	return f
}

// ByName resolves a variant name from the CLI.
func ByName(name string) (Variant, bool) {
	switch name {
	case VariantNewCollector, "":
		return NewCollector(), true
	case VariantOGCollector:
		return OGCollector(), true
	case VariantReservation:
		return Reservation(), true
	}
	return Variant{}, false
}

func identityValid(f models.FormData) bool {
	return f.FirstName != "" && f.LastName != ""
}

func reasonsValid(f models.FormData) bool {
	return f.CollectionReason != "" && f.Interests != ""
}

// contactValid is the consent-phase predicate: syntactically valid email,
// a phone that parses when present, and a communication preference that
// is consistent with the channels actually provided.
func contactValid(f models.FormData) bool {
	if !validate.Email(f.Email).IsValid {
		return false
	}
	if !validate.Phone(f.PhoneNumber, models.DefaultRegion).IsValid {
		return false
	}
	switch f.CommunicationPref {
	case models.PrefEmail:
		return f.Email != ""
	case models.PrefText:
		return f.PhoneNumber != ""
	case models.PrefBoth:
		return f.Email != "" && f.PhoneNumber != ""
	}
	return true
}

func preferencesValid(f models.FormData) bool {
	return len(f.CollectPreferences) > 0
}

// NewCollector is the five-phase intake for first-time collectors.
func NewCollector() Variant {
	return Variant{
		Name:           VariantNewCollector,
		Title:          "New Collector",
		MaxPreferences: 4,
		Phases: []Phase{
			{ID: "rules", Title: "Community Rules",
				Valid: models.FormData.AllRulesAccepted},
			{ID: "identity", Title: "About You",
				Valid: identityValid},
			{ID: "reasons", Title: "Why You Collect",
				Valid: reasonsValid},
			{ID: "consent", Title: "Stay In Touch",
				Valid: contactValid},
			{ID: "categories", Title: "Top Categories",
				Valid: preferencesValid},
		},
	}
}

// OGCollector is the four-phase flow for collectors who claim an existing
// profile. Phase 1 is guarded by the profile-existence lookup; the pieces
// phase is skipped entirely for a declared non-returning collector.
func OGCollector() Variant {
	return Variant{
		Name:               VariantOGCollector,
		Title:              "OG Collector",
		MaxPreferences:     4,
		GuardEmail:         true,
		ReturningCollector: true,
		Phases: []Phase{
			{ID: "identity", Title: "Who Are You",
				Valid: func(f models.FormData) bool {
					return identityValid(f) && f.DiscordUsername != "" &&
						validate.Email(f.Email).IsValid
				}},
			{ID: "pieces", Title: "Your Collection",
				Valid: func(f models.FormData) bool { return f.PieceCount != "" },
				Skip:  func(f models.FormData) bool { return !f.IsReturningCollector }},
			{ID: "categories", Title: "Top Categories",
				Valid: preferencesValid},
			{ID: "experience", Title: "Community Experience",
				Valid: func(f models.FormData) bool {
					return f.CommunityExperience != "" && f.Improvements != ""
				}},
		},
	}
}

// Reservation is the short two-phase flow. It seeds from the shared
// store when a sibling wizard redirected here, writes the form back on
// success, and subscribes the profile after the upsert.
func Reservation() Variant {
	return Variant{
		Name:            VariantReservation,
		Title:           "Reservation",
		MaxPreferences:  1,
		Subscribe:       true,
		SeedFromShared:  true,
		WriteBackShared: true,
		Phases: []Phase{
			{ID: "consent", Title: "Contact Details",
				Valid: func(f models.FormData) bool {
					return identityValid(f) && contactValid(f)
				}},
			{ID: "reasons", Title: "Why You Collect",
				Valid: reasonsValid},
		},
	}
}
