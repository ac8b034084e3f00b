package domain

// Profile is the domain model for a submitted personal-details record. The
// struct doubles as the serialized shape of the persisted record list, so the
// JSON tags are part of the storage contract.
type Profile struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PhoneNumber    int64  `json:"phoneNumber"`
	DOB            string `json:"dob"`
	City           string `json:"city"`
	District       string `json:"district"`
	Province       string `json:"province"`
	Country        string `json:"country"`
	ProfilePicture string `json:"profilePicture"`
}

// ProfilePatch carries field-level overwrites for an inline edit. Nil fields
// are left untouched on the stored record.
type ProfilePatch struct {
	Name        *string
	Email       *string
	PhoneNumber *int64
	DOB         *string
	City        *string
	District    *string
	Province    *string
	Country     *string
}

// Apply merges the patch into the profile.
func (p ProfilePatch) Apply(profile *Profile) {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Email != nil {
		profile.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		profile.PhoneNumber = *p.PhoneNumber
	}
	if p.DOB != nil {
		profile.DOB = *p.DOB
	}
	if p.City != nil {
		profile.City = *p.City
	}
	if p.District != nil {
		profile.District = *p.District
	}
	if p.Province != nil {
		profile.Province = *p.Province
	}
	if p.Country != nil {
		profile.Country = *p.Country
	}
}
