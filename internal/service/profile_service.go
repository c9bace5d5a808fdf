package service

import (
	"strings"

	"alphabetquest/internal/models"
)

const defaultAvatar = "🧒"

// ProfileService handles child profile management. Creating a profile seeds
// a progress row for every (letter x applicable mode) pair.
type ProfileService struct {
	profiles ProfileStore
	progress ProgressStore
}

// NewProfileService creates a new profile service
func NewProfileService(profiles ProfileStore, progress ProgressStore) *ProfileService {
	return &ProfileService{profiles: profiles, progress: progress}
}

// ListProfiles returns all child profiles
func (s *ProfileService) ListProfiles() ([]models.Profile, error) {
	profiles, err := s.profiles.List()
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return profiles, nil
}

// CreateProfile creates a child profile and its default progress rows
func (s *ProfileService) CreateProfile(name, avatar string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationError{Field: "name", Message: "name is required"}
	}
	if avatar == "" {
		avatar = defaultAvatar
	}

	profile, err := s.profiles.Create(name, avatar)
	if err != nil {
		return nil, err
	}

	if err := s.progress.CreateForProfile(profile.ID); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile changes name and avatar, keeping current values for blank fields
func (s *ProfileService) UpdateProfile(id int64, name, avatar string) (*models.Profile, error) {
	existing, err := s.profiles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, NotFoundError{Resource: "profile", ID: id}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = existing.Name
	}
	if avatar == "" {
		avatar = existing.Avatar
	}

	if err := s.profiles.Update(id, name, avatar); err != nil {
		return nil, err
	}
	return s.profiles.GetByID(id)
}

// DeleteProfile removes a profile and, via cascade, its progress and
// sessions. The last remaining profile cannot be deleted.
func (s *ProfileService) DeleteProfile(id int64) error {
	count, err := s.profiles.Count()
	if err != nil {
		return err
	}
	if count <= 1 {
		return ValidationError{Field: "id", Message: "cannot delete the last profile"}
	}

	existing, err := s.profiles.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return NotFoundError{Resource: "profile", ID: id}
	}

	return s.profiles.Delete(id)
}
