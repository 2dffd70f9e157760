package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bloodportal/internal/events"
	"bloodportal/internal/models"
	"bloodportal/internal/repositories"
)

var (
	// ErrUsernameTaken is returned when registering or renaming to an existing username.
	ErrUsernameTaken = repositories.ErrUsernameTaken

	// ErrInvalidCredentials is returned for an unknown username and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AccountService registers donors and checks their credentials. Session
// handling lives in the auth package.
type AccountService interface {
	Register(ctx context.Context, user models.NewUser) (models.User, error)
	Authenticate(username, password string) (models.User, error)
	GetUser(id int64) (models.User, error)
	UpdateProfile(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
	EnsureAdmin(ctx context.Context, username, password string) (models.User, error)
}

type accountService struct {
	users      repositories.UserRepository
	publisher  events.Publisher
	bcryptCost int
	nowFn      func() time.Time
}

// NewAccountService uses bcrypt.DefaultCost when bcryptCost is 0.
func NewAccountService(users repositories.UserRepository, publisher events.Publisher, bcryptCost int) AccountService {
	if publisher == nil {
		publisher = events.NewLogPublisher()
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &accountService{
		users:      users,
		publisher:  publisher,
		bcryptCost: bcryptCost,
		nowFn:      func() time.Time { return time.Now().UTC() },
	}
}

// Register hashes the password and stores the user as a non-admin donor.
func (s *accountService) Register(ctx context.Context, in models.NewUser) (models.User, error) {
	hash, err := s.hash(in.Password)
	if err != nil {
		return models.User{}, err
	}
	in.Password = hash

	user, err := s.users.Create(in)
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			log.Printf("[WARN] Register: username %q already taken", in.Username)
		}
		return models.User{}, err
	}
	log.Printf("[INFO] Register: user %q registered (id=%d)", user.Username, user.ID)
	publishEvent(ctx, s.publisher, events.Event{
		Type:       events.UserRegistered,
		EntityID:   user.ID,
		OccurredAt: s.nowFn(),
	})
	return user, nil
}

func (s *accountService) Authenticate(username, password string) (models.User, error) {
	user, ok := s.users.GetByUsername(username)
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("[WARN] Authenticate: wrong password for user %d", user.ID)
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *accountService) GetUser(id int64) (models.User, error) {
	user, ok := s.users.Get(id)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile merges patch into the user, hashing a new password if one is given.
func (s *accountService) UpdateProfile(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	if patch.Password != nil {
		hash, err := s.hash(*patch.Password)
		if err != nil {
			return models.User{}, err
		}
		patch.Password = &hash
	}
	user, found, err := s.users.Update(id, patch)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	log.Printf("[INFO] UpdateProfile: user %d updated", user.ID)
	return user, nil
}

// EnsureAdmin makes sure an administrator with the given username exists,
// registering it first when needed. An existing user's password is left alone.
func (s *accountService) EnsureAdmin(ctx context.Context, username, password string) (models.User, error) {
	user, ok := s.users.GetByUsername(username)
	if !ok {
		created, err := s.Register(ctx, models.NewUser{
			Username: username,
			Password: password,
			Name:     "Administrator",
		})
		if err != nil {
			return models.User{}, fmt.Errorf("register admin: %w", err)
		}
		user = created
	}
	admin, ok := s.users.SetAdmin(user.ID, true)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	log.Printf("[INFO] EnsureAdmin: user %q (id=%d) is an administrator", admin.Username, admin.ID)
	return admin, nil
}

func (s *accountService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
