// ABOUTME: Static catalog data shown by the intake wizard
// ABOUTME: Community rules, card variations, and collecting categories
package models

// CollectionRules are the consent statements every collector must accept.
// RulesAccepted in FormData is index-aligned with this slice.
var CollectionRules = []string{
	"I agree to follow all community guidelines",
	"I understand that all trades are final",
	"I will report any suspicious activity to moderators",
	"I will maintain respectful communication with other collectors",
}

// CollectionVariations are the card finishes a collector can rank, up to
// three, most favorite first.
var CollectionVariations = []string{
	"Prism",
	"Radiant",
	"Disco",
	"Fractal",
}

// Category is a collecting category offered by the preference selector.
type Category struct {
	Name          string
	Subcategories []string
}

var CollectionCategories = []Category{
	{Name: "Sports/Athletes", Subcategories: []string{"Modern", "Vintage", "Hall of Fame"}},
	{Name: "Music"},
	{Name: "Pop Culture", Subcategories: []string{"Comics/Superheroes", "Titans of Industry"}},
	{Name: "Video Games", Subcategories: []string{"Pocket Monsters"}},
	{Name: "Anime"},
	{Name: "Cars/Racing"},
}
