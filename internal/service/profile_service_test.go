package service

import (
	"errors"
	"testing"
)

func TestCreateProfileSeedsProgress(t *testing.T) {
	progress := newFakeProgressStore()
	s := NewProfileService(newFakeProfileStore(), progress)

	profile, err := s.CreateProfile("  Maya  ", "")
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	if profile.Name != "Maya" {
		t.Errorf("Name = %q, want trimmed", profile.Name)
	}
	if profile.Avatar != defaultAvatar {
		t.Errorf("Avatar = %q, want default", profile.Avatar)
	}
	if len(progress.seededKids) != 1 || progress.seededKids[0] != profile.ID {
		t.Errorf("progress rows not seeded for profile %d: %v", profile.ID, progress.seededKids)
	}
}

func TestCreateProfileRequiresName(t *testing.T) {
	s := NewProfileService(newFakeProfileStore(), newFakeProgressStore())

	_, err := s.CreateProfile("   ", "🦊")
	var validation ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestUpdateProfileKeepsBlankFields(t *testing.T) {
	profiles := newFakeProfileStore(1)
	s := NewProfileService(profiles, newFakeProgressStore())

	updated, err := s.UpdateProfile(1, "", "🦊")
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	if updated.Name != "kid-1" {
		t.Errorf("Name = %q, want existing name kept", updated.Name)
	}
	if updated.Avatar != "🦊" {
		t.Errorf("Avatar = %q, want 🦊", updated.Avatar)
	}
}

func TestUpdateProfileMissing(t *testing.T) {
	s := NewProfileService(newFakeProfileStore(1), newFakeProgressStore())

	_, err := s.UpdateProfile(99, "New", "")
	var notFound NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestDeleteProfile(t *testing.T) {
	profiles := newFakeProfileStore(1, 2)
	s := NewProfileService(profiles, newFakeProgressStore())

	if err := s.DeleteProfile(2); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}
	if exists, _ := profiles.Exists(2); exists {
		t.Error("profile 2 still exists")
	}
}

func TestDeleteLastProfileRejected(t *testing.T) {
	s := NewProfileService(newFakeProfileStore(1), newFakeProgressStore())

	err := s.DeleteProfile(1)
	var validation ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("got %v, want ValidationError protecting the last profile", err)
	}
}

func TestDeleteProfileMissing(t *testing.T) {
	s := NewProfileService(newFakeProfileStore(1, 2), newFakeProgressStore())

	err := s.DeleteProfile(99)
	var notFound NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}
