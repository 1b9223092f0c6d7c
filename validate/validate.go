// ABOUTME: Pure field validators for intake form values
// ABOUTME: Email, address parts, and Klaviyo boundary formatting helpers
package validate

import (
	"regexp"
	"strings"
)

// Result is the outcome of validating one raw field value. Validators are
// total: malformed input is a normal argument that yields IsValid false,
// never a panic or an error return.
type Result struct {
	IsValid        bool
	Error          string
	FormattedValue string
}

func valid() Result             { return Result{IsValid: true} }
func invalid(msg string) Result { return Result{Error: msg} }
func formatted(v string) Result { return Result{IsValid: true, FormattedValue: v} }

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks for a permissive local@domain.tld shape. No DNS or MX
// lookups; deliverability is the CRM's problem.
func Email(email string) Result {
	if strings.TrimSpace(email) == "" {
		return invalid("Email is required")
	}
	if !emailRe.MatchString(email) {
		return invalid("Please enter a valid email address")
	}
	return valid()
}

// StreetAddress requires a minimally complete street line.
func StreetAddress(address string) Result {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return invalid("Street address is required")
	}
	if len(trimmed) < 5 {
		return invalid("Please enter a complete street address")
	}
	return valid()
}

var cityRe = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

func City(city string) Result {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return invalid("City is required")
	}
	if len(trimmed) < 2 {
		return invalid("Please enter a valid city name")
	}
	if !cityRe.MatchString(trimmed) {
		return invalid("City name contains invalid characters")
	}
	return valid()
}

var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

// State validates a state or province. For the US a two-letter value must
// be a real state code; full names pass through.
func State(state, country string) Result {
	trimmed := strings.TrimSpace(state)
	if trimmed == "" {
		return invalid("State/Province is required")
	}
	if country == "US" && len(trimmed) == 2 && !usStates[strings.ToUpper(trimmed)] {
		return invalid("Please enter a valid US state code")
	}
	return valid()
}

var (
	usZipRe     = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	canadaZipRe = regexp.MustCompile(`(?i)^[A-Z]\d[A-Z]\s?\d[A-Z]\d$`)
)

// PostalCode validates per-country formats: US 5 or 5+4 digits, Canadian
// letter-digit triples, and a generic 3-10 character fallback elsewhere.
func PostalCode(postalCode, country string) Result {
	trimmed := strings.TrimSpace(postalCode)
	if trimmed == "" {
		return invalid("ZIP/Postal code is required")
	}
	switch country {
	case "US":
		if !usZipRe.MatchString(trimmed) {
			return invalid("Please enter a valid US ZIP code (e.g., 12345 or 12345-6789)")
		}
	case "CA":
		if !canadaZipRe.MatchString(trimmed) {
			return invalid("Please enter a valid Canadian postal code (e.g., A1A 1A1)")
		}
	default:
		if len(trimmed) < 3 || len(trimmed) > 10 {
			return invalid("Please enter a valid postal code")
		}
	}
	return valid()
}

func Country(country string) Result {
	if strings.TrimSpace(country) == "" {
		return invalid("Country is required")
	}
	return valid()
}

var countryNames = map[string]string{
	"US": "United States",
	"CA": "Canada",
	"GB": "United Kingdom",
	"AU": "Australia",
	"DE": "Germany",
	"FR": "France",
	"JP": "Japan",
}

// CountryName maps an ISO country code to the full name the CRM expects.
// Unknown codes pass through unchanged.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}

// StateForCRM normalizes state values at the transport boundary: US
// two-letter codes are uppercased, everything else is trimmed only.
func StateForCRM(state, country string) string {
	trimmed := strings.TrimSpace(state)
	if country == "US" && len(trimmed) == 2 {
		return strings.ToUpper(trimmed)
	}
	return trimmed
}
