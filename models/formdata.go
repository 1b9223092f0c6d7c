// ABOUTME: FormData lifecycle operations shared by every wizard variant
// ABOUTME: Default value, shallow merge, and the ranked-set field helpers
package models

import "time"

// DefaultFormData returns the initial record a wizard mounts with.
func DefaultFormData() FormData {
	return FormData{
		RulesAccepted:      make([]bool, len(CollectionRules)),
		CollectPreferences: []string{},
	}
}

// Merge shallow-merges a Partial into the form and returns the result.
// The receiver is not modified.
func (f FormData) Merge(p Partial) FormData {
	if p.IsReturningCollector != nil {
		f.IsReturningCollector = *p.IsReturningCollector
	}
	if p.RulesAccepted != nil {
		f.RulesAccepted = append([]bool(nil), p.RulesAccepted...)
	}
	if p.FirstName != nil {
		f.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		f.LastName = *p.LastName
	}
	if p.DiscordUsername != nil {
		f.DiscordUsername = *p.DiscordUsername
	}
	if p.InstagramHandle != nil {
		f.InstagramHandle = *p.InstagramHandle
	}
	if p.CollectionReason != nil {
		f.CollectionReason = *p.CollectionReason
	}
	if p.Interests != nil {
		f.Interests = *p.Interests
	}
	if p.Email != nil {
		f.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		f.PhoneNumber = *p.PhoneNumber
	}
	if p.CommunicationPref != nil {
		f.CommunicationPref = *p.CommunicationPref
	}
	if p.MarketingConsent != nil {
		f.MarketingConsent = *p.MarketingConsent
	}
	if p.PieceCount != nil {
		f.PieceCount = *p.PieceCount
	}
	if p.FirstPiece != nil {
		f.FirstPiece = *p.FirstPiece
	}
	if p.FavoriteVariation != nil {
		f.FavoriteVariation = *p.FavoriteVariation
	}
	if p.FavoriteVariation2 != nil {
		f.FavoriteVariation2 = *p.FavoriteVariation2
	}
	if p.FavoriteVariation3 != nil {
		f.FavoriteVariation3 = *p.FavoriteVariation3
	}
	if p.CollectPreferences != nil {
		f.CollectPreferences = append([]string(nil), p.CollectPreferences...)
	}
	if p.CategoryToAdd != nil {
		f.CategoryToAdd = *p.CategoryToAdd
	}
	if p.CommunityExperience != nil {
		f.CommunityExperience = *p.CommunityExperience
	}
	if p.Improvements != nil {
		f.Improvements = *p.Improvements
	}
	return f
}

// AllRulesAccepted reports whether every displayed rule is checked.
// A rules slice of the wrong arity never passes.
func (f FormData) AllRulesAccepted() bool {
	if len(f.RulesAccepted) != len(CollectionRules) {
		return false
	}
	for _, ok := range f.RulesAccepted {
		if !ok {
			return false
		}
	}
	return true
}

// ToggleRule flips one consent checkbox and returns the updated form.
func (f FormData) ToggleRule(i int) FormData {
	if i < 0 || i >= len(f.RulesAccepted) {
		return f
	}
	rules := append([]bool(nil), f.RulesAccepted...)
	rules[i] = !rules[i]
	return f.Merge(Partial{RulesAccepted: rules})
}

// TogglePreference adds or removes a category from the ranked preference
// list. Insertion order encodes rank. Adding beyond max is a no-op;
// removal closes the gap so ranks stay contiguous.
func (f FormData) TogglePreference(name string, max int) FormData {
	prefs := f.CollectPreferences
	for i, p := range prefs {
		if p == name {
			next := make([]string, 0, len(prefs)-1)
			next = append(next, prefs[:i]...)
			next = append(next, prefs[i+1:]...)
			return f.Merge(Partial{CollectPreferences: next})
		}
	}
	if len(prefs) >= max {
		return f
	}
	next := append(append([]string(nil), prefs...), name)
	return f.Merge(Partial{CollectPreferences: next})
}

// Variations returns the ranked favorite variations without gaps.
func (f FormData) Variations() []string {
	var out []string
	for _, v := range []string{f.FavoriteVariation, f.FavoriteVariation2, f.FavoriteVariation3} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ToggleVariation adds or removes a ranked favorite variation. The three
// discrete fields exist for transport convenience; together they behave
// like an ordered, deduplicated set of at most three. Removing rank k
// shifts later ranks down by one.
func (f FormData) ToggleVariation(name string) FormData {
	ranked := f.Variations()
	found := false
	next := make([]string, 0, 3)
	for _, v := range ranked {
		if v == name {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		if len(ranked) >= 3 {
			return f
		}
		next = append(next, name)
	}
	return f.setVariations(next)
}

func (f FormData) setVariations(ranked []string) FormData {
	slots := [3]string{}
	copy(slots[:], ranked)
	return f.Merge(Partial{
		FavoriteVariation:  &slots[0],
		FavoriteVariation2: &slots[1],
		FavoriteVariation3: &slots[2],
	})
}

// StampTimestamps sets the submission timestamps. Created is only set the
// first time through; Updated moves on every submission.
func (f FormData) StampTimestamps(now time.Time) FormData {
	ts := now.UTC().Format(time.RFC3339)
	if f.Created == "" {
		f.Created = ts
	}
	f.Updated = ts
	return f
}

// SharedSubset is the field subset one wizard hands off to a sibling
// wizard through the shared store: identity and contact data only, never
// phase progress or collection facts.
func (f FormData) SharedSubset() FormData {
	out := DefaultFormData()
	out.FirstName = f.FirstName
	out.LastName = f.LastName
	out.Email = f.Email
	out.PhoneNumber = f.PhoneNumber
	out.MarketingConsent = f.MarketingConsent
	out.CommunicationPref = f.CommunicationPref
	out.DiscordUsername = f.DiscordUsername
	out.InstagramHandle = f.InstagramHandle
	return out
}
