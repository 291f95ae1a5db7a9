package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/basaltlabs/basalt/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrUsernameTaken      = errors.New("username already taken")
)

type AuthUserRepository interface {
	CountUsers() (int64, error)
	ExistsByNormalizedUsername(username string) (bool, error)
	FindByNormalizedUsername(username string) (models.User, error)
	FindByID(userID string) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

type NewUserParams struct {
	Username    string
	DisplayName *string
	Password    string
	IsAdmin     bool
	IsDisabled  bool
}

func (service *AuthService) CreateUser(params NewUserParams) (models.User, error) {
	username := NormalizeUsername(params.Username)
	exists, err := service.users.ExistsByNormalizedUsername(username)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return models.User{}, ErrUsernameTaken
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:             uuid.NewString(),
		Username:       username,
		DisplayName:    params.DisplayName,
		HashedPassword: hash,
		IsAdmin:        params.IsAdmin,
		IsDisabled:     params.IsDisabled,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate resolves credentials to a user. Lookup and password failures
// collapse into ErrInvalidCredentials so responses cannot reveal which
// usernames exist.
func (service *AuthService) Authenticate(username string, password string) (models.User, error) {
	user, err := service.users.FindByNormalizedUsername(NormalizeUsername(username))
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if user.IsDisabled {
		return models.User{}, ErrAccountDisabled
	}
	return user, nil
}

func (service *AuthService) FindByID(userID string) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) SaveUser(user *models.User) error {
	return service.users.Save(user)
}

// EnsureFirstUser seeds an admin account on an empty database so a fresh
// deployment can log in without manual SQL.
func (service *AuthService) EnsureFirstUser(username string, password string) error {
	if username == "" || password == "" {
		return nil
	}

	count, err := service.users.CountUsers()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	user, err := service.CreateUser(NewUserParams{
		Username: username,
		Password: password,
		IsAdmin:  true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap first user: %w", err)
	}
	log.Printf("auth: bootstrapped admin user %q", user.Username)
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
