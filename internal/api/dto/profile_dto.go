package dto

import "github.com/spec-kit/profile-registry/internal/domain"

// ProfileResponse mirrors the stored record shape.
type ProfileResponse struct {
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

// FromProfile maps a domain record to its response shape.
func FromProfile(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		PhoneNumber:    p.PhoneNumber,
		DOB:            p.DOB,
		City:           p.City,
		District:       p.District,
		Province:       p.Province,
		Country:        p.Country,
		ProfilePicture: p.ProfilePicture,
	}
}

// ProfileUpdateRequest carries inline-edit field overwrites. Absent fields
// are left as stored.
type ProfileUpdateRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	DOB         *string `json:"dob"`
	City        *string `json:"city"`
	District    *string `json:"district"`
	Province    *string `json:"province"`
	Country     *string `json:"country"`
}

// ProfileListResponse is a single page of the record list.
type ProfileListResponse struct {
	Items      []ProfileResponse `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	TotalItems int               `json:"total_items"`
	HasPrev    bool              `json:"has_prev"`
	HasNext    bool              `json:"has_next"`
}

// CountriesResponse lists selectable country names.
type CountriesResponse struct {
	Countries []string `json:"countries"`
}
