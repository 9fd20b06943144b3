package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/loinx/user-management/internal/core/domain"
)

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "u" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

type stubLastLogin struct {
	mu      sync.Mutex
	touched map[string]time.Time
}

func newStubLastLogin() *stubLastLogin {
	return &stubLastLogin{touched: make(map[string]time.Time)}
}

func (s *stubLastLogin) Touch(_ context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched[userID] = at
	return nil
}

func (s *stubLastLogin) Get(_ context.Context, userID string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.touched[userID]
	return at, ok, nil
}

func newAuthService(repo *stubUserRepo, lastLogin *stubLastLogin) *AuthService {
	tokens := NewTokenService("secret", time.Hour)
	if lastLogin == nil {
		return NewAuthService(repo, tokens, nil, zerolog.Nop())
	}
	return NewAuthService(repo, tokens, lastLogin, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	token, user, err := svc.Register(context.Background(), "alice@example.com", "longpassword1", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.PasswordHash == "longpassword1" {
		t.Fatalf("password stored in plaintext")
	}
	if !VerifyPassword("longpassword1", user.PasswordHash) {
		t.Fatalf("stored hash does not verify against the password")
	}
	if !user.HasRole(domain.RoleUser) || user.HasRole(domain.RoleAdmin) {
		t.Fatalf("expected default role set {USER}, got %v", user.Roles)
	}
	if !user.Enabled {
		t.Fatalf("new users should be enabled")
	}

	sub, err := NewTokenService("secret", time.Hour).ExtractSubject(token)
	if err != nil || sub != "alice@example.com" {
		t.Fatalf("token subject = %q, err = %v", sub, err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	if _, _, err := svc.Register(context.Background(), "bob@example.com", "longpassword1", "Bob"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "bob@example.com", "otherpassword", "Bobby"); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	repo := newStubUserRepo()
	lastLogin := newStubLastLogin()
	svc := newAuthService(repo, lastLogin)

	_, created, err := svc.Register(context.Background(), "carol@example.com", "s3cretpass", "Carol")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || user.ID != created.ID {
		t.Fatalf("unexpected login result: token=%q user=%+v", token, user)
	}
	if _, ok, _ := lastLogin.Get(context.Background(), created.ID); !ok {
		t.Fatalf("expected last-login touch after successful login")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	_, _, _ = svc.Register(context.Background(), "dave@example.com", "goodpassword", "Dave")
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpassword"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	// Unknown emails must not be distinguishable from bad passwords.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Disabled(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	_, created, err := svc.Register(context.Background(), "eve@example.com", "goodpassword", "Eve")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	stored := repo.users[created.ID]
	stored.Enabled = false

	if _, _, err := svc.Login(context.Background(), "eve@example.com", "goodpassword"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for disabled user, got %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	_, user, err := svc.Register(context.Background(), "frank@example.com", "longpassword1", "Frank")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Refresh(context.Background(), user)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !NewTokenService("secret", time.Hour).Validate(token, user) {
		t.Fatalf("refreshed token should validate for the caller")
	}
}

func TestConcurrentRegister_SameEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Register(context.Background(), "race@example.com", "longpassword1", "Racer")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrEmailExists):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != n-1 {
		t.Fatalf("expected exactly one success, got %d successes and %d duplicates", ok, dup)
	}
}
