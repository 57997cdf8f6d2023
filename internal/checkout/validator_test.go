package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIndividual() Info {
	return Info{
		CustomerType: Individual,
		FirstName:    "Jo",
		LastName:     "Do",
		Address:      "Main St 1",
		City:         "X",
		Email:        "a@b.co",
		Phone:        "+381601234567",
	}
}

func validBusiness() Info {
	in := validIndividual()
	in.CustomerType = Business
	in.CompanyName = "Vaga d.o.o."
	in.TaxID = "123456789"
	in.RegistrationNumber = "87654321"
	return in
}

func TestValidateAllValidIndividual(t *testing.T) {
	in := validIndividual()
	in.City = "Ni"
	assert.Empty(t, ValidateAll(in))
}

func TestValidateAllSingleBadField(t *testing.T) {
	in := validIndividual()
	in.City = "Ni"
	in.Email = "not-an-email"

	errs := ValidateAll(in)

	require.Len(t, errs, 1)
	assert.Contains(t, errs, "email")
}

func TestValidateAllFieldRules(t *testing.T) {
	tests := map[string]struct {
		mutate    func(*Info)
		wantField string
	}{
		"short first name":      {mutate: func(in *Info) { in.FirstName = "J" }, wantField: "firstName"},
		"whitespace last name":  {mutate: func(in *Info) { in.LastName = "  D  " }, wantField: "lastName"},
		"short address":         {mutate: func(in *Info) { in.Address = "abc" }, wantField: "address"},
		"short city":            {mutate: func(in *Info) { in.City = "N" }, wantField: "city"},
		"email without dot":     {mutate: func(in *Info) { in.Email = "a@bco" }, wantField: "email"},
		"email without local":   {mutate: func(in *Info) { in.Email = "@b.co" }, wantField: "email"},
		"phone too short":       {mutate: func(in *Info) { in.Phone = "12345" }, wantField: "phone"},
		"phone with letters":    {mutate: func(in *Info) { in.Phone = "06x1234567" }, wantField: "phone"},
		"phone plus in middle":  {mutate: func(in *Info) { in.Phone = "061+234567" }, wantField: "phone"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			in := validIndividual()
			in.City = "Ni"
			tc.mutate(&in)

			errs := ValidateAll(in)

			require.Len(t, errs, 1)
			assert.Contains(t, errs, tc.wantField)
		})
	}
}

func TestPhoneAcceptsSpacedDigits(t *testing.T) {
	in := validIndividual()
	in.City = "Ni"
	in.Phone = "+381 60 123 4567"
	assert.Empty(t, ValidateAll(in))
}

func TestBusinessRulesOnlyApplyToBusiness(t *testing.T) {
	in := validIndividual()
	in.City = "Ni"
	// No taxId entered; an individual draft must not be penalised for it.
	assert.Empty(t, ValidateAll(in))

	in.CustomerType = Business
	errs := ValidateAll(in)
	assert.Contains(t, errs, "taxId")
	assert.Contains(t, errs, "registrationNumber")
	assert.Contains(t, errs, "companyName")
}

func TestValidBusinessDraft(t *testing.T) {
	in := validBusiness()
	in.City = "Ni"
	assert.Empty(t, ValidateAll(in))
}

func TestBusinessDigitRules(t *testing.T) {
	tests := map[string]struct {
		taxID string
		ok    bool
	}{
		"too short":    {taxID: "1234567", ok: false},
		"min length":   {taxID: "12345678", ok: true},
		"max length":   {taxID: "123456789012345", ok: true},
		"too long":     {taxID: "1234567890123456", ok: false},
		"non-numeric":  {taxID: "12345abc", ok: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			in := validBusiness()
			in.City = "Ni"
			in.TaxID = tc.taxID

			msg := ValidateField("taxId", in)
			if tc.ok {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestValidateFieldBusinessRuleSupersedes(t *testing.T) {
	in := validBusiness()
	in.TaxID = "bad"

	assert.NotEmpty(t, ValidateField("taxId", in))

	in.CustomerType = Individual
	assert.Empty(t, ValidateField("taxId", in), "business rule must not fire for individuals")
	assert.Empty(t, ValidateField("somethingElse", in), "unknown fields are valid")
}
