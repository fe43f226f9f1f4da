package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"askmira/internal/auth_service/store"
	"askmira/internal/models"
)

// fakeUserStore keeps users in memory.
type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) CreateUser(user *models.User) error {
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserStore) GetUserByUsername(username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) UpdateUser(user *models.User) error {
	f.users[user.Username] = user
	return nil
}

// fakeRevoker records revoked jtis.
type fakeRevoker struct {
	revoked map[string]bool
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: make(map[string]bool)}
}

func (f *fakeRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	f.revoked[jti] = true
	return nil
}

func (f *fakeRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return f.revoked[jti], nil
}

func newTestService() (*Service, *fakeUserStore, *fakeRevoker) {
	users := newFakeUserStore()
	revoker := newFakeRevoker()
	return NewService(users, revoker, "test-secret", time.Hour), users, revoker
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users, _ := newTestService()

	user, err := svc.Register("alice", "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Password == "s3cret-pass" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-pass")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}

	token, err := svc.Login("alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims["username"] != "alice" {
		t.Errorf("username claim = %v", claims["username"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Error("token has no jti")
	}

	exp, _ := claims["exp"].(float64)
	iat, _ := claims["iat"].(float64)
	if got := exp - iat; got != 3600 {
		t.Errorf("token lifetime = %vs, want 3600", got)
	}

	if users.users["alice"].LastLoginAt == nil {
		t.Error("LastLoginAt not recorded")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Register("bob", "bob@example.com", "pw"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register("bob", "other@example.com", "pw2")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("got %v, want ErrUserExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Register("carol", "carol@example.com", "right"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login("carol", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, revoker := newTestService()

	if _, err := svc.Register("dave", "dave@example.com", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := svc.Login("dave", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	claims, _ := svc.ParseToken(token)
	jti, _ := claims["jti"].(string)
	if !revoker.revoked[jti] {
		t.Error("jti not added to the denylist")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	users := newFakeUserStore()
	svc := NewService(users, nil, "test-secret", time.Hour)

	token, err := svc.generateJWT("eve", time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("generateJWT: %v", err)
	}

	if _, err := svc.ParseToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	svcA := NewService(newFakeUserStore(), nil, "secret-a", time.Hour)
	svcB := NewService(newFakeUserStore(), nil, "secret-b", time.Hour)

	token, err := svcA.generateJWT("mallory", time.Now())
	if err != nil {
		t.Fatalf("generateJWT: %v", err)
	}
	if _, err := svcB.ParseToken(token); err == nil {
		t.Fatal("token with wrong signature accepted")
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Register("frank", "frank@example.com", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.CurrentUser("frank")
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if user.Email != "frank@example.com" {
		t.Errorf("email = %q", user.Email)
	}

	if _, err := svc.CurrentUser("ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}
