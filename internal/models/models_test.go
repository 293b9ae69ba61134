package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name    string
		expires time.Time
		want    bool
	}{
		{"future expiry", time.Now().Add(time.Hour), false},
		{"past expiry", time.Now().Add(-time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{ID: "abc", UserID: 1, ExpiresAt: tt.expires}
			if got := s.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := User{Role: "admin"}
	user := User{Role: "user"}

	if !admin.IsAdmin() {
		t.Error("admin role should report IsAdmin")
	}
	if user.IsAdmin() {
		t.Error("user role should not report IsAdmin")
	}
}

func TestUserProfileImage(t *testing.T) {
	u := User{}
	if got := u.ProfileImage(); got != DefaultProfileImage {
		t.Errorf("ProfileImage() = %q, want default icon", got)
	}

	u.ProfileImageURL = "/uploads/abc.png"
	if got := u.ProfileImage(); got != "/uploads/abc.png" {
		t.Errorf("ProfileImage() = %q, want custom URL", got)
	}
}

func TestValidGame(t *testing.T) {
	if !ValidGame(GameRealVsAI) || !ValidGame(GameQuiz) {
		t.Error("known game IDs should be valid")
	}
	if ValidGame("chess") {
		t.Error("unknown game ID should be invalid")
	}
}

func TestValidImageType(t *testing.T) {
	if !ValidImageType(ImageTypeReal) || !ValidImageType(ImageTypeAI) {
		t.Error("known image types should be valid")
	}
	if ValidImageType("fake") {
		t.Error("unknown image type should be invalid")
	}
}
