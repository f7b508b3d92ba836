package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
	"github.com/beatbridge/beatbridge-api/internal/core/otp"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
	"github.com/beatbridge/beatbridge-api/internal/core/token"
)

type stubUserRepo struct {
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
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, usernameOrEmail string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == usernameOrEmail || u.Email == usernameOrEmail {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByGoogleID(_ context.Context, googleID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.GoogleID == googleID && googleID != "" {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByVerificationCode(_ context.Context, code string) (*domain.User, error) {
	for _, u := range r.users {
		if u.PendingVerificationCode == code && code != "" {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	var taken []string
	for _, u := range r.users {
		if u.Username == user.Username {
			taken = append(taken, "username")
		}
		if u.Email == user.Email {
			taken = append(taken, "email")
		}
	}
	if len(taken) > 0 {
		return nil, &domain.ConflictError{Fields: taken}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = "u" + strconv.Itoa(r.nextID)
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

type stubTicketStore struct {
	tickets map[string]*domain.ResetTicket
}

func newStubTicketStore() *stubTicketStore {
	return &stubTicketStore{tickets: make(map[string]*domain.ResetTicket)}
}

func (s *stubTicketStore) Put(_ context.Context, ticket *domain.ResetTicket) error {
	clone := *ticket
	s.tickets[ticket.Email] = &clone
	return nil
}

func (s *stubTicketStore) Get(_ context.Context, email string) (*domain.ResetTicket, error) {
	if t, ok := s.tickets[email]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrTicketNotFound
}

func (s *stubTicketStore) Delete(_ context.Context, email string) error {
	delete(s.tickets, email)
	return nil
}

type stubNotifier struct {
	sent chan string
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{sent: make(chan string, 8)}
}

func (n *stubNotifier) Send(_ context.Context, to, _, body string) error {
	n.sent <- to + "|" + body
	return nil
}

func newAuthService(repo *stubUserRepo, tickets *stubTicketStore, notifier ports.Notifier, autoVerify bool) *AuthService {
	tokens := token.NewService("test-secret", time.Hour)
	return NewAuthService(repo, tickets, tokens, notifier, autoVerify, zerolog.Nop())
}

func register(t *testing.T, svc *AuthService, username, email, password string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:     username,
		Email:        email,
		Password:     password,
		Confirmation: password,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return user
}

func TestAuthService_Register_AutoVerify(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubTicketStore(), nil, true)

	user := register(t, svc, "alice", "alice@example.com", "pass12345")

	if !user.IsVerified {
		t.Fatalf("expected account to be auto-verified without a notifier")
	}
	if user.PendingVerificationCode != "" {
		t.Fatalf("expected no pending code, got %q", user.PendingVerificationCode)
	}
	if user.PasswordHash == "pass12345" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass12345")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_IssuesVerificationCode(t *testing.T) {
	repo := newStubUserRepo()
	notifier := newStubNotifier()
	svc := newAuthService(repo, newStubTicketStore(), notifier, true)

	user := register(t, svc, "alice", "alice@example.com", "pass12345")

	if user.IsVerified {
		t.Fatalf("expected account to start unverified")
	}
	if len(user.PendingVerificationCode) != otp.CodeLength {
		t.Fatalf("expected %d-digit code, got %q", otp.CodeLength, user.PendingVerificationCode)
	}

	select {
	case msg := <-notifier.sent:
		if msg != "alice@example.com|Your BeatBridge verification code is "+user.PendingVerificationCode+"." {
			t.Fatalf("unexpected mail: %s", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("verification email was never sent")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubTicketStore(), nil, true)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:     "",
		Email:        "",
		Password:     "pass12345",
		Confirmation: "different",
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"username", "email", "confirmation"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Fatalf("expected %s in validation fields, got %v", field, ve.Fields)
		}
	}
}

func TestAuthService_Register_ReportsBothConflicts(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubTicketStore(), nil, true)
	register(t, svc, "alice", "alice@example.com", "pass12345")

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:     "alice",
		Email:        "alice@example.com",
		Password:     "pass12345",
		Confirmation: "pass12345",
	})

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(conflict.Fields) != 2 {
		t.Fatalf("expected both fields reported, got %v", conflict.Fields)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubTicketStore(), nil, true)
	created := register(t, svc, "alice", "alice@example.com", "pass12345")

	for _, identifier := range []string{"alice", "alice@example.com"} {
		tok, user, err := svc.Login(context.Background(), identifier, "pass12345")
		if err != nil {
			t.Fatalf("Login(%s) returned error: %v", identifier, err)
		}
		if tok == "" {
			t.Fatalf("expected a token")
		}
		if user.ID != created.ID {
			t.Fatalf("expected user %s, got %s", created.ID, user.ID)
		}
	}
}

func TestAuthService_Login_UniformInvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubTicketStore(), nil, true)
	register(t, svc, "alice", "alice@example.com", "pass12345")

	// Unknown account and wrong password must be indistinguishable.
	for _, tc := range []struct{ identifier, password string }{
		{"nobody", "pass12345"},
		{"alice", "wrongpass"},
	} {
		_, _, err := svc.Login(context.Background(), tc.identifier, tc.password)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("Login(%s): expected ErrInvalidCredentials, got %v", tc.identifier, err)
		}
	}
}

func TestAuthService_Login_Unverified(t *testing.T) {
	repo := newStubUserRepo()
	notifier := newStubNotifier()
	svc := newAuthService(repo, newStubTicketStore(), notifier, true)
	register(t, svc, "alice", "alice@example.com", "pass12345")

	_, _, err := svc.Login(context.Background(), "alice", "pass12345")
	if !errors.Is(err, domain.ErrNotVerified) {
		t.Fatalf("expected ErrNotVerified, got %v", err)
	}
}

func TestAuthService_Login_GoogleOnlyAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubTicketStore(), nil, true)
	if _, err := repo.Create(context.Background(), &domain.User{
		Username:   "gina",
		Email:      "gina@example.com",
		GoogleID:   "google-123",
		IsVerified: true,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "gina", "anything")
	if !errors.Is(err, domain.ErrGoogleOnlyAccount) {
		t.Fatalf("expected ErrGoogleOnlyAccount, got %v", err)
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	repo := newStubUserRepo()
	notifier := newStubNotifier()
	svc := newAuthService(repo, newStubTicketStore(), notifier, true)
	user := register(t, svc, "alice", "alice@example.com", "pass12345")
	code := user.PendingVerificationCode

	verified, err := svc.VerifyEmail(context.Background(), code)
	if err != nil {
		t.Fatalf("VerifyEmail returned error: %v", err)
	}
	if !verified.IsVerified {
		t.Fatalf("expected account to be verified")
	}

	// Single use: replaying the same code must fail.
	if _, err := svc.VerifyEmail(context.Background(), code); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound on replay, got %v", err)
	}
}

func TestAuthService_VerifyEmail_UnknownCode(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubTicketStore(), nil, true)

	if _, err := svc.VerifyEmail(context.Background(), "000000"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubTicketStore(), nil, true)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ResetPasswordFlow(t *testing.T) {
	repo := newStubUserRepo()
	tickets := newStubTicketStore()
	svc := newAuthService(repo, tickets, nil, true)
	register(t, svc, "alice", "alice@example.com", "pass12345")

	if err := svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	ticket, err := tickets.Get(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("expected a stored ticket: %v", err)
	}
	if ticket.Status != domain.TicketIssued {
		t.Fatalf("expected issued ticket, got %s", ticket.Status)
	}

	// Resetting before the OTP is verified must be refused.
	if err := svc.ResetPassword(context.Background(), "alice@example.com", "newpass123"); !errors.Is(err, domain.ErrOTPNotVerified) {
		t.Fatalf("expected ErrOTPNotVerified, got %v", err)
	}

	// A wrong code leaves the ticket in its issued state.
	wrong := "000000"
	if wrong == ticket.Code {
		wrong = "000001"
	}
	if err := svc.VerifyOTP(context.Background(), "alice@example.com", wrong); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
	stored, _ := tickets.Get(context.Background(), "alice@example.com")
	if stored.Status != domain.TicketIssued {
		t.Fatalf("wrong code must not advance the ticket, got %s", stored.Status)
	}

	if err := svc.VerifyOTP(context.Background(), "alice@example.com", ticket.Code); err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if err := svc.ResetPassword(context.Background(), "alice@example.com", "newpass123"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	// Ticket is consumed and the new password works.
	if _, err := tickets.Get(context.Background(), "alice@example.com"); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("expected consumed ticket, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice", "newpass123"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice", "pass12345"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
}

func TestAuthService_VerifyOTP_NoTicket(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubTicketStore(), nil, true)

	if err := svc.VerifyOTP(context.Background(), "alice@example.com", "123456"); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}

func TestAuthService_SetPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubTicketStore(), nil, true)
	created, err := repo.Create(context.Background(), &domain.User{
		Username:   "gina",
		Email:      "gina@example.com",
		GoogleID:   "google-123",
		IsVerified: true,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := svc.SetPassword(context.Background(), created.ID, "newpass123"); err != nil {
		t.Fatalf("SetPassword returned error: %v", err)
	}

	tok, user, err := svc.Login(context.Background(), "gina", "newpass123")
	if err != nil {
		t.Fatalf("login after SetPassword failed: %v", err)
	}
	if tok == "" || user.GoogleID != "google-123" {
		t.Fatalf("expected token and preserved google link, got %q %q", tok, user.GoogleID)
	}
}
