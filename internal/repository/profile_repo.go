package repository

import (
	"database/sql"
	"fmt"

	"alphabetquest/internal/database"
	"alphabetquest/internal/models"
)

// ProfileRepository handles child profile database operations
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new child profile
func (r *ProfileRepository) Create(name, avatar string) (*models.Profile, error) {
	id, err := r.db.ExecReturningID("INSERT INTO profiles (name, avatar) VALUES (?, ?)", name, avatar)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return r.GetByID(id)
}

// GetByID retrieves a profile by ID, or nil if none exists
func (r *ProfileRepository) GetByID(id int64) (*models.Profile, error) {
	profile := &models.Profile{}
	err := r.db.QueryRow(
		"SELECT id, name, avatar, created_at FROM profiles WHERE id = ?", id,
	).Scan(&profile.ID, &profile.Name, &profile.Avatar, &profile.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// List returns all profiles in creation order
func (r *ProfileRepository) List() ([]models.Profile, error) {
	rows, err := r.db.Query("SELECT id, name, avatar, created_at FROM profiles ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var profile models.Profile
		if err := rows.Scan(&profile.ID, &profile.Name, &profile.Avatar, &profile.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// Update changes a profile's name and avatar
func (r *ProfileRepository) Update(id int64, name, avatar string) error {
	_, err := r.db.Exec("UPDATE profiles SET name = ?, avatar = ? WHERE id = ?", name, avatar, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// Delete removes a profile; progress and sessions cascade
func (r *ProfileRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// Count returns the number of profiles
func (r *ProfileRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// Exists reports whether a profile with the given id exists
func (r *ProfileRepository) Exists(id int64) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM profiles WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check profile: %w", err)
	}
	return count > 0, nil
}
