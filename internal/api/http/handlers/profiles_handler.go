package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/profile-registry/internal/api/dto"
	"github.com/spec-kit/profile-registry/internal/service"
	apperrors "github.com/spec-kit/profile-registry/pkg/util/errorutil"
)

// ProfilesHandler manages the submission, listing, edit, delete, and detail
// endpoints.
type ProfilesHandler struct {
	service *service.ProfileService
}

// NewProfilesHandler constructs handler.
func NewProfilesHandler(profileService *service.ProfileService) *ProfilesHandler {
	return &ProfilesHandler{service: profileService}
}

// Create POST /profiles. Accepts multipart form fields plus an optional
// profilePicture file.
func (h *ProfilesHandler) Create(c *fiber.Ctx) error {
	input := service.ProfileInput{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		PhoneNumber: c.FormValue("phoneNumber"),
		DOB:         c.FormValue("dob"),
		City:        c.FormValue("city"),
		District:    c.FormValue("district"),
		Province:    c.FormValue("province"),
		Country:     c.FormValue("country"),
	}

	var image *service.ImageInput
	if header, err := c.FormFile("profilePicture"); err == nil && header != nil {
		file, err := header.Open()
		if err != nil {
			return apperrors.NewUploadFailed(err)
		}
		defer file.Close()
		image = &service.ImageInput{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}
	}

	profile, err := h.service.Submit(c.UserContext(), input, image)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromProfile(profile)})
}

// List GET /profiles?page=N.
func (h *ProfilesHandler) List(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)

	result, err := h.service.List(c.UserContext(), page)
	if err != nil {
		return err
	}

	items := make([]dto.ProfileResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.FromProfile(&result.Items[i]))
	}
	return c.JSON(fiber.Map{"data": dto.ProfileListResponse{
		Items:      items,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		TotalItems: result.TotalItems,
		HasPrev:    result.HasPrev,
		HasNext:    result.HasNext,
	}})
}

// Get GET /profiles/:id.
func (h *ProfilesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	profile, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProfile(profile)})
}

// Update PATCH /profiles/:id.
func (h *ProfilesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, err := h.service.Update(c.UserContext(), id, service.UpdateInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		DOB:         req.DOB,
		City:        req.City,
		District:    req.District,
		Province:    req.Province,
		Country:     req.Country,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProfile(profile)})
}

// Delete DELETE /profiles/:id.
func (h *ProfilesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id, "deleted": true}})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid profile id", nil)
	}
	return id, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
