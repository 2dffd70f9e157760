package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"bloodportal/internal/events"
	"bloodportal/internal/models"
	"bloodportal/internal/repositories"
)

func newTestAccounts() (AccountService, repositories.UserRepository, *recordingPublisher) {
	users := repositories.NewUserRepository()
	pub := &recordingPublisher{}
	return NewAccountService(users, pub, bcrypt.MinCost), users, pub
}

func TestRegisterHashesPasswordAndAuthenticates(t *testing.T) {
	svc, users, pub := newTestAccounts()
	ctx := context.Background()

	user, err := svc.Register(ctx, models.NewUser{Username: "asha", Password: "secret1", Name: "Asha", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.IsAdmin {
		t.Fatalf("new users must not be administrators")
	}
	stored, _ := users.Get(user.ID)
	if stored.Password == "secret1" {
		t.Fatalf("password stored in clear text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	got, err := svc.Authenticate("asha", "secret1")
	if err != nil || got.ID != user.ID {
		t.Fatalf("authenticate: %+v err=%v", got, err)
	}
	if _, err := svc.Authenticate("asha", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate("nobody", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	if got := pub.types(); len(got) != 1 || got[0] != events.UserRegistered {
		t.Fatalf("unexpected events %v", got)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAccounts()
	ctx := context.Background()
	if _, err := svc.Register(ctx, models.NewUser{Username: "dup", Password: "secret1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, models.NewUser{Username: "dup", Password: "other12"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestAccounts()
	ctx := context.Background()
	user, _ := svc.Register(ctx, models.NewUser{Username: "ravi", Password: "secret1", City: "Pune"})

	city := "Mumbai"
	password := "newpass"
	updated, err := svc.UpdateProfile(ctx, user.ID, models.UserPatch{City: &city, Password: &password})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.City != "Mumbai" || updated.Username != "ravi" {
		t.Fatalf("unexpected profile %+v", updated)
	}
	if _, err := svc.Authenticate("ravi", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted")
	}
	if _, err := svc.Authenticate("ravi", "newpass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, 99, models.UserPatch{City: &city}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.GetUser(99); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	svc, users, _ := newTestAccounts()
	ctx := context.Background()

	admin, err := svc.EnsureAdmin(ctx, "root", "rootpass")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if !admin.IsAdmin {
		t.Fatalf("expected administrator, got %+v", admin)
	}
	if _, err := svc.Authenticate("root", "rootpass"); err != nil {
		t.Fatalf("admin cannot log in: %v", err)
	}

	again, err := svc.EnsureAdmin(ctx, "root", "different")
	if err != nil || again.ID != admin.ID {
		t.Fatalf("second call should reuse the user: %+v err=%v", again, err)
	}
	if _, err := svc.Authenticate("root", "rootpass"); err != nil {
		t.Fatalf("existing admin password must be kept: %v", err)
	}
	if users.Count() != 1 {
		t.Fatalf("expected one user, got %d", users.Count())
	}

	donor, _ := svc.Register(ctx, models.NewUser{Username: "promote", Password: "secret1"})
	promoted, err := svc.EnsureAdmin(ctx, "promote", "ignored")
	if err != nil || promoted.ID != donor.ID || !promoted.IsAdmin {
		t.Fatalf("expected existing donor promoted: %+v err=%v", promoted, err)
	}
}
