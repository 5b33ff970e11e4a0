package service

import (
	"context"
	"errors"

	"coachhub/coaching-app/internal/repository"
	"coachhub/coaching-app/internal/storage"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
	ErrNoPhoto      = errors.New("user has no profile photo")
)

// --- Service Interface ---
type ProfileService interface {
	// RequestPhotoUpload returns a presigned PUT URL the client uploads the
	// photo to, plus the object key to confirm afterwards.
	RequestPhotoUpload(ctx context.Context, userID uuid.UUID, contentType string) (uploadURL, objectKey string, err error)
	// ConfirmPhoto stores the uploaded object key on the user's profile,
	// removing the previous photo from storage.
	ConfirmPhoto(ctx context.Context, userID uuid.UUID, objectKey string) error
	// GetPhotoURL returns a presigned GET URL for the user's photo.
	GetPhotoURL(ctx context.Context, userID uuid.UUID) (string, error)
}

// --- Service Implementation ---

// profileService implements the ProfileService interface.
type profileService struct {
	userRepo repository.UserRepository
	photos   storage.PhotoStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(userRepo repository.UserRepository, photos storage.PhotoStorage) ProfileService {
	return &profileService{
		userRepo: userRepo,
		photos:   photos,
	}
}

func (s *profileService) RequestPhotoUpload(ctx context.Context, userID uuid.UUID, contentType string) (string, string, error) {
	objectKey := storage.PhotoKey(userID)
	uploadURL, err := s.photos.PresignUpload(ctx, objectKey, storage.PhotoContentType(contentType), storage.DefaultURLExpiry)
	if err != nil {
		return "", "", err
	}
	return uploadURL, objectKey, nil
}

func (s *profileService) ConfirmPhoto(ctx context.Context, userID uuid.UUID, objectKey string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	previous := user.PhotoKey
	user.PhotoKey = objectKey
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// Best effort: the replaced object is orphaned otherwise.
	if previous != "" && previous != objectKey {
		_ = s.photos.Delete(ctx, previous)
	}
	return nil
}

func (s *profileService) GetPhotoURL(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.PhotoKey == "" {
		return "", ErrNoPhoto
	}
	return s.photos.PresignDownload(ctx, user.PhotoKey, storage.DefaultURLExpiry)
}
