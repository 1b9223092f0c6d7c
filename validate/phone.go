// ABOUTME: Phone number validation and formatting via libphonenumber
// ABOUTME: Possible/valid checks with length-specific errors, E.164 output
package validate

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const phoneHint = "Please enter a valid phone number with country code (e.g., +1 808 728 6347)"

// Phone validates a phone number against the numbering plan for region.
// Empty input is valid: the field is optional, callers that require it
// check presence themselves. On success FormattedValue carries the E.164
// form the CRM expects.
func Phone(phoneNumber, region string) Result {
	if strings.TrimSpace(phoneNumber) == "" {
		return valid()
	}

	num, err := phonenumbers.Parse(phoneNumber, region)
	if err != nil {
		if errors.Is(err, phonenumbers.ErrInvalidCountryCode) {
			return invalid("Invalid country code")
		}
		return invalid(phoneHint)
	}

	// Length plausibility first, for the specific error classes.
	switch phonenumbers.IsPossibleNumberWithReason(num) {
	case phonenumbers.TOO_SHORT:
		return invalid("Phone number is too short")
	case phonenumbers.TOO_LONG:
		return invalid("Phone number is too long")
	case phonenumbers.INVALID_COUNTRY_CODE:
		return invalid("Invalid country code")
	case phonenumbers.INVALID_LENGTH:
		return invalid("Invalid phone number length")
	}

	// Then the numbering-plan rules proper.
	if !phonenumbers.IsValidNumber(num) {
		return invalid(phoneHint)
	}

	return formatted(phonenumbers.Format(num, phonenumbers.E164))
}

// FormatPhoneAsYouType reformats a partial keystroke value with
// country-aware grouping for display. Unparseable partial input is
// returned unchanged; the authoritative E.164 form is produced at blur.
func FormatPhoneAsYouType(value, region string) string {
	if strings.TrimSpace(value) == "" {
		return value
	}
	num, err := phonenumbers.Parse(value, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return value
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

// FormatPhoneE164 converts a raw value to E.164 when it parses as a valid
// number, otherwise returns it unchanged.
func FormatPhoneE164(phoneNumber, region string) string {
	if strings.TrimSpace(phoneNumber) == "" {
		return phoneNumber
	}
	num, err := phonenumbers.Parse(phoneNumber, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return phoneNumber
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// EnsurePlusPrefix normalizes a number that already carries a country
// code but lost its plus sign.
func EnsurePlusPrefix(phoneNumber string) string {
	trimmed := strings.TrimSpace(phoneNumber)
	if trimmed == "" {
		return trimmed
	}
	cleaned := strings.TrimLeft(trimmed, "+ ")
	if cleaned == "" {
		return ""
	}
	return "+" + cleaned
}
