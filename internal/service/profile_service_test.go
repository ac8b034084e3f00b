package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-registry/internal/config"
	"github.com/spec-kit/profile-registry/internal/domain"
	"github.com/spec-kit/profile-registry/internal/events"
	"github.com/spec-kit/profile-registry/internal/repository"
	apperrors "github.com/spec-kit/profile-registry/pkg/util/errorutil"
)

type fakeRepo struct {
	records []domain.Profile
	nextID  int64
}

func (f *fakeRepo) LoadAll(context.Context) ([]domain.Profile, error) {
	return append([]domain.Profile{}, f.records...), nil
}

func (f *fakeRepo) Append(_ context.Context, p *domain.Profile) error {
	f.nextID++
	p.ID = f.nextID
	f.records = append(f.records, *p)
	return nil
}

func (f *fakeRepo) Replace(_ context.Context, id int64, patch domain.ProfilePatch) (*domain.Profile, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			patch.Apply(&f.records[i])
			out := f.records[i]
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) Remove(_ context.Context, id int64) (*domain.Profile, error) {
	kept := f.records[:0]
	var removed *domain.Profile
	for _, r := range f.records {
		if r.ID == id {
			r := r
			removed = &r
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	if removed == nil {
		return nil, repository.ErrNotFound
	}
	return removed, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int64) (*domain.Profile, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			out := f.records[i]
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeUploader struct {
	calls   int
	lastKey string
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	f.calls++
	f.lastKey = key
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + key, nil
}

func newTestService(repo repository.ProfileRepository, uploader *fakeUploader) *ProfileService {
	return NewProfileService(ProfileDependencies{
		ProfileRepo: repo,
		Uploader:    uploader,
		Dispatcher:  events.NewInMemoryDispatcher(),
		Logger:      zap.NewNop(),
		Upload:      config.UploadConfig{MaxSizeBytes: 5000000, KeyPrefix: "profile/"},
	})
}

func testImage() *ImageInput {
	return &ImageInput{
		FileName:    "me.png",
		ContentType: "image/png",
		Size:        1024,
		Body:        strings.NewReader("png bytes"),
	}
}

func TestSubmitAppendsRecordWithNextID(t *testing.T) {
	repo := &fakeRepo{}
	uploader := &fakeUploader{}
	svc := newTestService(repo, uploader)
	ctx := context.Background()

	first, err := svc.Submit(ctx, validInput(), nil)
	require.NoError(t, err)
	second, err := svc.Submit(ctx, validInput(), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Len(t, repo.records, 2)
	assert.Equal(t, int64(9841234567), first.PhoneNumber)
	assert.Empty(t, first.ProfilePicture)
}

func TestSubmitUploadsPictureBeforePersisting(t *testing.T) {
	repo := &fakeRepo{}
	uploader := &fakeUploader{}
	svc := newTestService(repo, uploader)

	profile, err := svc.Submit(context.Background(), validInput(), testImage())
	require.NoError(t, err)

	assert.Equal(t, 1, uploader.calls)
	assert.True(t, strings.HasPrefix(uploader.lastKey, "profile/me.png"), "key %q should carry prefix and filename", uploader.lastKey)
	assert.Greater(t, len(uploader.lastKey), len("profile/me.png"), "key should carry a random suffix")
	assert.Equal(t, "https://cdn.example.com/"+uploader.lastKey, profile.ProfilePicture)
}

func TestSubmitRejectsShortNameWithoutPersisting(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeUploader{})

	in := validInput()
	in.Name = "Ana"
	_, err := svc.Submit(context.Background(), in, nil)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, "Name should be at least 5 characters", de.Details["name"])
	assert.Empty(t, repo.records)
}

func TestSubmitRejectsNonDigitPhoneWithoutPersisting(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeUploader{})

	in := validInput()
	in.PhoneNumber = "98412x4567"
	_, err := svc.Submit(context.Background(), in, nil)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, "Phone number should only contain digits", de.Details["phoneNumber"])
	assert.Empty(t, repo.records)
}

func TestSubmitRejectsOversizedImageBeforeUpload(t *testing.T) {
	repo := &fakeRepo{}
	uploader := &fakeUploader{}
	svc := newTestService(repo, uploader)

	image := testImage()
	image.Size = 5000001
	_, err := svc.Submit(context.Background(), validInput(), image)

	assert.Equal(t, "FILE_TOO_LARGE", apperrors.ToDomainError(err).Code)
	assert.Zero(t, uploader.calls)
	assert.Empty(t, repo.records)
}

func TestSubmitRejectsNonImageFile(t *testing.T) {
	repo := &fakeRepo{}
	uploader := &fakeUploader{}
	svc := newTestService(repo, uploader)

	image := testImage()
	image.ContentType = "application/pdf"
	_, err := svc.Submit(context.Background(), validInput(), image)

	assert.Equal(t, "UNSUPPORTED_FILE", apperrors.ToDomainError(err).Code)
	assert.Zero(t, uploader.calls)
	assert.Empty(t, repo.records)
}

func TestSubmitUploadFailureIsNotValidationFailure(t *testing.T) {
	repo := &fakeRepo{}
	uploader := &fakeUploader{err: errors.New("bucket offline")}
	svc := newTestService(repo, uploader)

	_, err := svc.Submit(context.Background(), validInput(), testImage())

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "UPLOAD_FAILED", de.Code)
	assert.Empty(t, repo.records)
}

func seedRecords(t *testing.T, svc *ProfileService, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.Submit(context.Background(), validInput(), nil)
		require.NoError(t, err)
	}
}

func TestListPaginatesTwelveRecordsIntoThreePages(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeUploader{})
	seedRecords(t, svc, 12)
	ctx := context.Background()

	page1, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, 12, page1.TotalItems)
	assert.Len(t, page1.Items, 5)
	assert.False(t, page1.HasPrev)
	assert.True(t, page1.HasNext)

	page3, err := svc.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, page3.Items, 2)
	assert.True(t, page3.HasPrev)
	assert.False(t, page3.HasNext)
	assert.Equal(t, int64(11), page3.Items[0].ID)
	assert.Equal(t, int64(12), page3.Items[1].ID)
}

func TestListClampsPageIntoValidRange(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeUploader{})
	seedRecords(t, svc, 12)
	ctx := context.Background()

	beyond, err := svc.List(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, beyond.Page)
	assert.Len(t, beyond.Items, 2)

	below, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, below.Page)
}

func TestListEmptyStore(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeUploader{})

	page, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalPages)
	assert.False(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestUpdateEditsExactlyOneField(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeUploader{})
	seedRecords(t, svc, 2)

	city := "Pokhara"
	updated, err := svc.Update(context.Background(), 1, UpdateInput{City: &city})
	require.NoError(t, err)

	assert.Equal(t, "Pokhara", updated.City)
	assert.Equal(t, "Alice Doe", updated.Name)
	assert.Equal(t, "Kathmandu", repo.records[1].City, "other record untouched")
}

func TestUpdateCoercesPhoneToNumeric(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeUploader{})
	seedRecords(t, svc, 1)

	phone := "0012345678"
	updated, err := svc.Update(context.Background(), 1, UpdateInput{PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, int64(12345678), updated.PhoneNumber)
}

func TestUpdateRejectsNonDigitPhone(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeUploader{})
	seedRecords(t, svc, 1)

	phone := "98-41-23"
	_, err := svc.Update(context.Background(), 1, UpdateInput{PhoneNumber: &phone})

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, "Phone number should only contain digits", de.Details["phoneNumber"])
	assert.Equal(t, int64(9841234567), repo.records[0].PhoneNumber)
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeUploader{})

	name := "Someone Else"
	_, err := svc.Update(context.Background(), 42, UpdateInput{Name: &name})
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestDeleteRemovesExactlyOneRecord(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeUploader{})
	seedRecords(t, svc, 5)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 3))

	assert.Len(t, repo.records, 4)
	for _, record := range repo.records {
		assert.NotEqual(t, int64(3), record.ID)
	}

	err := svc.Delete(ctx, 3)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestGetResolvesTriState(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeUploader{})
	seedRecords(t, svc, 7)
	ctx := context.Background()

	found, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Alice Doe", found.Name)

	_, err = svc.Get(ctx, 404)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
