// Package checkout validates the customer checkout draft.
//
// Validation reports, it never fails hard: every rule returns an empty
// string for a valid value or a human-readable message for the form. The
// caller blocks submission while ValidateAll returns a non-empty map.
package checkout

import (
	"regexp"
	"strings"
)

// CustomerType selects which rule set applies to a draft.
type CustomerType string

const (
	Individual CustomerType = "individual"
	Business   CustomerType = "business"
)

// Info is the checkout draft. Business-only fields are kept even when the
// customer switches back to individual; they are simply not validated or
// submitted then.
type Info struct {
	CustomerType       CustomerType `json:"customerType"`
	FirstName          string       `json:"firstName"`
	LastName           string       `json:"lastName"`
	Address            string       `json:"address"`
	City               string       `json:"city"`
	Email              string       `json:"email"`
	Phone              string       `json:"phone"`
	CompanyName        string       `json:"companyName,omitempty"`
	TaxID              string       `json:"taxId,omitempty"`
	RegistrationNumber string       `json:"registrationNumber,omitempty"`
}

// Errors maps a field name to its validation message. Fields that pass are
// absent. A draft is submittable iff the map is empty.
type Errors map[string]string

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]{6,18}$`)
	digitRe = regexp.MustCompile(`^[0-9]{8,15}$`)
)

type rule func(Info) string

func minTrimmed(get func(Info) string, min int, msg string) rule {
	return func(in Info) string {
		if len(strings.TrimSpace(get(in))) < min {
			return msg
		}
		return ""
	}
}

var commonRules = map[string]rule{
	"firstName": minTrimmed(func(in Info) string { return in.FirstName }, 2, "Ime mora imati najmanje 2 karaktera"),
	"lastName":  minTrimmed(func(in Info) string { return in.LastName }, 2, "Prezime mora imati najmanje 2 karaktera"),
	"address":   minTrimmed(func(in Info) string { return in.Address }, 4, "Unesite ispravnu adresu"),
	"city":      minTrimmed(func(in Info) string { return in.City }, 2, "Unesite ispravan grad"),
	"email": func(in Info) string {
		if !emailRe.MatchString(strings.TrimSpace(in.Email)) {
			return "Unesite ispravnu email adresu"
		}
		return ""
	},
	"phone": func(in Info) string {
		phone := strings.ReplaceAll(in.Phone, " ", "")
		if !phoneRe.MatchString(phone) {
			return "Unesite ispravan broj telefona"
		}
		return ""
	},
}

var businessRules = map[string]rule{
	"companyName": minTrimmed(func(in Info) string { return in.CompanyName }, 2, "Unesite naziv firme"),
	"taxId": func(in Info) string {
		if !digitRe.MatchString(strings.TrimSpace(in.TaxID)) {
			return "PIB mora imati 8-15 cifara"
		}
		return ""
	},
	"registrationNumber": func(in Info) string {
		if !digitRe.MatchString(strings.TrimSpace(in.RegistrationNumber)) {
			return "Matični broj mora imati 8-15 cifara"
		}
		return ""
	},
}

// ValidateField checks a single field of the draft. For business customers
// a business rule with the same field name supersedes the common one.
// Unknown fields and business fields on an individual draft are valid.
func ValidateField(name string, in Info) string {
	if in.CustomerType == Business {
		if r, ok := businessRules[name]; ok {
			return r(in)
		}
	}
	if r, ok := commonRules[name]; ok {
		return r(in)
	}
	return ""
}

// ValidateAll runs every common rule, plus every business rule when the
// draft belongs to a business customer.
func ValidateAll(in Info) Errors {
	errs := Errors{}

	for name, r := range commonRules {
		if msg := r(in); msg != "" {
			errs[name] = msg
		}
	}
	if in.CustomerType == Business {
		for name, r := range businessRules {
			if msg := r(in); msg != "" {
				errs[name] = msg
			}
		}
	}

	return errs
}
