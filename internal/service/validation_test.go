package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() ProfileInput {
	return ProfileInput{
		Name:        "Alice Doe",
		Email:       "alice@example.com",
		PhoneNumber: "9841234567",
		DOB:         "1990-04-12",
		City:        "Kathmandu",
		District:    "Kathmandu",
		Province:    "Bagmati Province",
		Country:     "Nepal",
	}
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProfileInput)
		field   string
		message string
	}{
		{
			name:   "valid input passes",
			mutate: func(*ProfileInput) {},
		},
		{
			name:    "short name",
			mutate:  func(in *ProfileInput) { in.Name = "Ana" },
			field:   "name",
			message: "Name should be at least 5 characters",
		},
		{
			name:    "malformed email",
			mutate:  func(in *ProfileInput) { in.Email = "not-an-email" },
			field:   "email",
			message: "Invalid email address",
		},
		{
			name:    "short phone",
			mutate:  func(in *ProfileInput) { in.PhoneNumber = "123456" },
			field:   "phoneNumber",
			message: "Number should be at least 7 digits",
		},
		{
			name:    "phone with letters",
			mutate:  func(in *ProfileInput) { in.PhoneNumber = "98412abc67" },
			field:   "phoneNumber",
			message: "Phone number should only contain digits",
		},
		{
			name:    "digits message wins when phone is short and non numeric",
			mutate:  func(in *ProfileInput) { in.PhoneNumber = "12a" },
			field:   "phoneNumber",
			message: "Phone number should only contain digits",
		},
		{
			name:    "empty city",
			mutate:  func(in *ProfileInput) { in.City = "" },
			field:   "city",
			message: "City can't be empty",
		},
		{
			name:    "empty district",
			mutate:  func(in *ProfileInput) { in.District = "" },
			field:   "district",
			message: "District name can't be empty",
		},
		{
			name:    "empty province",
			mutate:  func(in *ProfileInput) { in.Province = "" },
			field:   "province",
			message: "Province can't be empty",
		},
		{
			name:    "empty country",
			mutate:  func(in *ProfileInput) { in.Country = "" },
			field:   "country",
			message: "Country can't be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			errs := ValidateProfile(in)
			if tt.field == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestValidateProfileAllowsEmptyDOB(t *testing.T) {
	in := validInput()
	in.DOB = ""

	assert.Empty(t, ValidateProfile(in))
}
