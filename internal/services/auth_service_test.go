package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/basaltlabs/basalt/internal/models"
)

type stubAuthUserRepository struct {
	users    map[string]models.User
	countErr error
}

func newStubAuthUserRepository() *stubAuthUserRepository {
	return &stubAuthUserRepository{users: make(map[string]models.User)}
}

func (stub *stubAuthUserRepository) CountUsers() (int64, error) {
	if stub.countErr != nil {
		return 0, stub.countErr
	}
	return int64(len(stub.users)), nil
}

func (stub *stubAuthUserRepository) ExistsByNormalizedUsername(username string) (bool, error) {
	_, ok := stub.users[username]
	return ok, nil
}

func (stub *stubAuthUserRepository) FindByNormalizedUsername(username string) (models.User, error) {
	user, ok := stub.users[username]
	if !ok {
		return models.User{}, errors.New("record not found")
	}
	return user, nil
}

func (stub *stubAuthUserRepository) FindByID(userID string) (models.User, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, errors.New("record not found")
}

func (stub *stubAuthUserRepository) Create(user *models.User) error {
	stub.users[user.Username] = *user
	return nil
}

func (stub *stubAuthUserRepository) Save(user *models.User) error {
	stub.users[user.Username] = *user
	return nil
}

func TestCreateUserNormalizesUsernameAndHashesPassword(t *testing.T) {
	repo := newStubAuthUserRepository()
	service := NewAuthService(repo)

	user, err := service.CreateUser(NewUserParams{Username: "  MarA ", Password: "correct horse"})
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if user.Username != "mara" {
		t.Fatalf("expected normalized username mara, got %q", user.Username)
	}
	if user.ID == "" {
		t.Fatalf("expected a generated user id")
	}
	if user.HashedPassword == "correct horse" {
		t.Fatalf("expected the password to be hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("correct horse")) != nil {
		t.Fatalf("expected hash to verify against the original password")
	}
	if _, ok := repo.users["mara"]; !ok {
		t.Fatalf("expected the user stored under the normalized username")
	}
}

func TestCreateUserRejectsTakenUsername(t *testing.T) {
	repo := newStubAuthUserRepository()
	repo.users["mara"] = models.User{ID: "existing", Username: "mara"}
	service := NewAuthService(repo)

	_, err := service.CreateUser(NewUserParams{Username: "Mara", Password: "whatever"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthenticateCollapsesLookupAndPasswordFailures(t *testing.T) {
	repo := newStubAuthUserRepository()
	service := NewAuthService(repo)

	if _, err := service.Authenticate("ghost", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	if _, err := service.CreateUser(NewUserParams{Username: "mara", Password: "right one"}); err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if _, err := service.Authenticate("mara", "wrong one"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestAuthenticateRejectsDisabledAccount(t *testing.T) {
	repo := newStubAuthUserRepository()
	service := NewAuthService(repo)

	if _, err := service.CreateUser(NewUserParams{Username: "mara", Password: "right one", IsDisabled: true}); err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}

	if _, err := service.Authenticate("mara", "right one"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthenticateReturnsMatchingUser(t *testing.T) {
	repo := newStubAuthUserRepository()
	service := NewAuthService(repo)

	created, err := service.CreateUser(NewUserParams{Username: "Mara", Password: "right one"})
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}

	user, err := service.Authenticate(" mara ", "right one")
	if err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %s, got %s", created.ID, user.ID)
	}
}

func TestEnsureFirstUserSeedsOnlyEmptyDatabases(t *testing.T) {
	repo := newStubAuthUserRepository()
	service := NewAuthService(repo)

	if err := service.EnsureFirstUser("", ""); err != nil {
		t.Fatalf("EnsureFirstUser() with blank config: %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected no bootstrap without configured credentials")
	}

	if err := service.EnsureFirstUser("admin", "changeme"); err != nil {
		t.Fatalf("EnsureFirstUser() unexpected error: %v", err)
	}
	admin, ok := repo.users["admin"]
	if !ok {
		t.Fatalf("expected the bootstrap user to be created")
	}
	if !admin.IsAdmin {
		t.Fatalf("expected the bootstrap user to be an admin")
	}

	if err := service.EnsureFirstUser("another", "changeme"); err != nil {
		t.Fatalf("EnsureFirstUser() on populated database: %v", err)
	}
	if _, ok := repo.users["another"]; ok {
		t.Fatalf("expected no second bootstrap once users exist")
	}
}
