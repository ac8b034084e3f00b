package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-registry/internal/blob"
	"github.com/spec-kit/profile-registry/internal/config"
	"github.com/spec-kit/profile-registry/internal/domain"
	"github.com/spec-kit/profile-registry/internal/events"
	"github.com/spec-kit/profile-registry/internal/repository"
	apperrors "github.com/spec-kit/profile-registry/pkg/util/errorutil"
)

// PageSize is the fixed number of records per listing page.
const PageSize = 5

// ProfileService coordinates the submission, listing, edit, delete, and
// detail workflows over the single persisted record list. Submission runs as
// three separate stages (validate, upload, persist) so a failure is always
// attributable to exactly one of them.
type ProfileService struct {
	profiles   repository.ProfileRepository
	uploader   blob.Uploader
	dispatcher events.Dispatcher
	logger     *zap.Logger
	upload     config.UploadConfig
}

// ProfileDependencies bundles collaborators for the profile service.
type ProfileDependencies struct {
	ProfileRepo repository.ProfileRepository
	Uploader    blob.Uploader
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Upload      config.UploadConfig
}

// ProfileInput carries user-entered field values for a submission.
type ProfileInput struct {
	Name        string
	Email       string
	PhoneNumber string
	DOB         string
	City        string
	District    string
	Province    string
	Country     string
}

// ImageInput describes an uploaded picture file.
type ImageInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UpdateInput carries inline-edit overwrites. Nil fields are untouched.
type UpdateInput struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	DOB         *string
	City        *string
	District    *string
	Province    *string
	Country     *string
}

// ProfilePage is one page of the record list.
type ProfilePage struct {
	Items      []domain.Profile
	Page       int
	TotalPages int
	TotalItems int
	HasPrev    bool
	HasNext    bool
}

// NewProfileService constructs the service.
func NewProfileService(deps ProfileDependencies) *ProfileService {
	return &ProfileService{
		profiles:   deps.ProfileRepo,
		uploader:   deps.Uploader,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		upload:     deps.Upload,
	}
}

// Submit validates the input, uploads the picture if one was provided, and
// appends the record. Nothing is persisted when any stage fails.
func (s *ProfileService) Submit(ctx context.Context, input ProfileInput, image *ImageInput) (*domain.Profile, error) {
	if fieldErrs := ValidateProfile(input); len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError("invalid profile", fieldDetails(fieldErrs))
	}

	pictureURL, err := s.uploadPicture(ctx, image)
	if err != nil {
		return nil, err
	}

	phone, err := strconv.ParseInt(input.PhoneNumber, 10, 64)
	if err != nil {
		// unreachable after validation, but never persist garbage
		return nil, apperrors.NewValidationError("invalid profile", map[string]any{
			"phoneNumber": "Phone number should only contain digits",
		})
	}

	profile := &domain.Profile{
		Name:           input.Name,
		Email:          input.Email,
		PhoneNumber:    phone,
		DOB:            input.DOB,
		City:           input.City,
		District:       input.District,
		Province:       input.Province,
		Country:        input.Country,
		ProfilePicture: pictureURL,
	}
	if err := s.profiles.Append(ctx, profile); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventProfileCreated,
		ProfileID: profile.ID,
		Payload: events.ProfileCreatedPayload{
			Name:       profile.Name,
			Country:    profile.Country,
			HasPicture: profile.ProfilePicture != "",
		},
	})
	return profile, nil
}

// List returns one page of the stored list, page size fixed at 5. The page
// number is clamped to the valid range; reading never mutates storage.
func (s *ProfileService) List(ctx context.Context, page int) (*ProfilePage, error) {
	records, err := s.profiles.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	total := len(records)
	totalPages := (total + PageSize - 1) / PageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &ProfilePage{
		Items:      records[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}, nil
}

// Get resolves a single record by identifier.
func (s *ProfileService) Get(ctx context.Context, id int64) (*domain.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("profile", map[string]any{"id": id})
	}
	return profile, err
}

// Update merges the edited fields into the stored record. The phone number is
// coerced to its numeric form and rejected when it contains non-digits.
func (s *ProfileService) Update(ctx context.Context, id int64, input UpdateInput) (*domain.Profile, error) {
	patch := domain.ProfilePatch{
		Name:     input.Name,
		Email:    input.Email,
		DOB:      input.DOB,
		City:     input.City,
		District: input.District,
		Province: input.Province,
		Country:  input.Country,
	}
	if input.PhoneNumber != nil {
		if !digitsPattern.MatchString(*input.PhoneNumber) {
			return nil, apperrors.NewValidationError("invalid profile", map[string]any{
				"phoneNumber": "Phone number should only contain digits",
			})
		}
		phone, err := strconv.ParseInt(*input.PhoneNumber, 10, 64)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid profile", map[string]any{
				"phoneNumber": "Phone number should only contain digits",
			})
		}
		patch.PhoneNumber = &phone
	}

	profile, err := s.profiles.Replace(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("profile", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventProfileUpdated,
		ProfileID: id,
		Payload:   events.ProfileUpdatedPayload{Fields: patchedFields(input)},
	})
	return profile, nil
}

// Delete removes the record by identifier. There is no undo.
func (s *ProfileService) Delete(ctx context.Context, id int64) error {
	removed, err := s.profiles.Remove(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("profile", map[string]any{"id": id})
	}
	if err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventProfileDeleted,
		ProfileID: id,
		Payload:   events.ProfileDeletedPayload{Name: removed.Name},
	})
	return nil
}

// uploadPicture runs the upload stage: size and type checks before the bytes
// leave the process, then the blob put. The storage key is the original
// filename namespaced with a random v4 UUID suffix.
func (s *ProfileService) uploadPicture(ctx context.Context, image *ImageInput) (string, error) {
	if image == nil {
		return "", nil
	}
	if image.Size > s.upload.MaxSizeBytes {
		return "", apperrors.NewFileTooLarge(s.upload.MaxSizeBytes)
	}
	if !strings.HasPrefix(image.ContentType, "image/") {
		return "", apperrors.NewUnsupportedFile(image.ContentType)
	}
	if s.uploader == nil {
		return "", apperrors.NewUploadFailed(errors.New("blob storage not configured"))
	}

	key := s.upload.KeyPrefix + image.FileName + uuid.NewString()
	url, err := s.uploader.Upload(ctx, key, image.ContentType, image.Body)
	if err != nil {
		return "", apperrors.NewUploadFailed(err)
	}
	return url, nil
}

func (s *ProfileService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.Error(err))
	}
}

func fieldDetails(fieldErrs map[string]string) map[string]any {
	details := make(map[string]any, len(fieldErrs))
	for field, msg := range fieldErrs {
		details[field] = msg
	}
	return details
}

func patchedFields(input UpdateInput) []string {
	var fields []string
	if input.Name != nil {
		fields = append(fields, "name")
	}
	if input.Email != nil {
		fields = append(fields, "email")
	}
	if input.PhoneNumber != nil {
		fields = append(fields, "phoneNumber")
	}
	if input.DOB != nil {
		fields = append(fields, "dob")
	}
	if input.City != nil {
		fields = append(fields, "city")
	}
	if input.District != nil {
		fields = append(fields, "district")
	}
	if input.Province != nil {
		fields = append(fields, "province")
	}
	if input.Country != nil {
		fields = append(fields, "country")
	}
	return fields
}
