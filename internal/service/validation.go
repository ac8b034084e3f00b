package service

import (
	"regexp"
	"unicode/utf8"
)

const (
	minNameChars   = 5
	minPhoneDigits = 7
)

var (
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateProfile checks a submission against the profile schema and returns
// per-field messages keyed by field name. An empty map means the input is
// valid. When a field breaks several rules, the most specific message wins.
func ValidateProfile(in ProfileInput) map[string]string {
	errs := make(map[string]string)

	if utf8.RuneCountInString(in.Name) < minNameChars {
		errs["name"] = "Name should be at least 5 characters"
	}
	if !emailPattern.MatchString(in.Email) {
		errs["email"] = "Invalid email address"
	}
	if utf8.RuneCountInString(in.PhoneNumber) < minPhoneDigits {
		errs["phoneNumber"] = "Number should be at least 7 digits"
	}
	if !digitsPattern.MatchString(in.PhoneNumber) {
		errs["phoneNumber"] = "Phone number should only contain digits"
	}
	if in.City == "" {
		errs["city"] = "City can't be empty"
	}
	if in.District == "" {
		errs["district"] = "District name can't be empty"
	}
	if in.Country == "" {
		errs["country"] = "Country can't be empty"
	}
	if in.Province == "" {
		errs["province"] = "Province can't be empty"
	}

	return errs
}
