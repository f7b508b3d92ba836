package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
	"github.com/beatbridge/beatbridge-api/internal/core/otp"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
	"github.com/beatbridge/beatbridge-api/internal/core/token"
	"github.com/beatbridge/beatbridge-api/internal/pkg/metrics"
)

const mailTimeout = 10 * time.Second

// AuthService implements registration, login, email verification and the
// password-reset flow.
type AuthService struct {
	users   ports.UserRepository
	tickets ports.ResetTicketStore
	tokens  *token.Service
	// notifier may be nil when SMTP is not configured; see autoVerify.
	notifier ports.Notifier
	// autoVerify marks new accounts verified when no notifier is available.
	// Degraded-mode policy choice, not a correctness requirement.
	autoVerify bool
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tickets ports.ResetTicketStore,
	tokens *token.Service,
	notifier ports.Notifier,
	autoVerify bool,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		tickets:    tickets,
		tokens:     tokens,
		notifier:   notifier,
		autoVerify: autoVerify,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	fields := map[string]string{}
	if in.Username == "" {
		fields["username"] = "please provide a username"
	}
	if in.Email == "" {
		fields["email"] = "please provide an email"
	}
	if in.Password == "" {
		fields["password"] = "password is required to continue"
	}
	if in.Password != in.Confirmation {
		fields["confirmation"] = "passwords do not match"
	}
	if len(fields) > 0 {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, &domain.ValidationError{Fields: fields}
	}

	// Friendly pre-check so both collisions are reported together. The
	// unique indexes behind Create remain the race-free authority.
	var taken []string
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		taken = append(taken, "username")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		taken = append(taken, "email")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if len(taken) > 0 {
		metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		return nil, &domain.ConflictError{Fields: taken}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var code string
	if s.notifier == nil && s.autoVerify {
		user.IsVerified = true
	} else {
		code, err = otp.Issue()
		if err != nil {
			return nil, err
		}
		user.PendingVerificationCode = code
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		}
		return nil, err
	}

	if code != "" && s.notifier != nil {
		s.sendAsync("signup", created.Email, "Verify your email",
			fmt.Sprintf("Your BeatBridge verification code is %s.", code))
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (string, *domain.User, error) {
	if usernameOrEmail == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	// Google-only accounts have no password hash; reject before any
	// comparison so no submitted plaintext can ever match.
	if !user.HasPassword() {
		if user.GoogleID != "" {
			metrics.LoginsTotal.WithLabelValues("google_only").Inc()
			return "", nil, domain.ErrGoogleOnlyAccount
		}
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.IsVerified {
		metrics.LoginsTotal.WithLabelValues("unverified").Inc()
		return "", nil, domain.ErrNotVerified
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return tok, user, nil
}

// VerifyEmail confirms an account by its outstanding sign-up code. The code
// is single use: it is cleared on success, so a replay fails.
func (s *AuthService) VerifyEmail(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, domain.NewValidationError("code", "verification code is required")
	}

	user, err := s.users.FindByVerificationCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}
	if !otp.Matches(code, user.PendingVerificationCode) {
		return nil, domain.ErrCodeNotFound
	}

	user.IsVerified = true
	user.PendingVerificationCode = ""
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("email verified")
	return user, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return domain.NewValidationError("email", "email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := otp.Issue()
	if err != nil {
		return err
	}

	ticket := &domain.ResetTicket{
		Email:  user.Email,
		Code:   code,
		Status: domain.TicketIssued,
	}
	if err := s.tickets.Put(ctx, ticket); err != nil {
		return err
	}

	if s.notifier != nil {
		s.sendAsync("reset", user.Email, "Your password reset code",
			fmt.Sprintf("Your BeatBridge password reset code is %s.", code))
	}
	return nil
}

// VerifyOTP proves control of the email behind a reset ticket. A wrong code
// leaves the ticket in its issued state.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return domain.ErrInvalidOTP
	}

	ticket, err := s.tickets.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return domain.ErrInvalidOTP
		}
		return err
	}
	if !otp.Matches(code, ticket.Code) {
		return domain.ErrInvalidOTP
	}

	ticket.Status = domain.TicketVerified
	return s.tickets.Put(ctx, ticket)
}

// ResetPassword is the recovery path: no bearer token, but the reset ticket
// must have been verified first. The ticket is consumed on success.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	fields := map[string]string{}
	if email == "" {
		fields["email"] = "email is required"
	}
	if newPassword == "" {
		fields["password"] = "new password is required"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	ticket, err := s.tickets.Get(ctx, email)
	if err != nil {
		return err
	}
	if ticket.Status != domain.TicketVerified {
		return domain.ErrOTPNotVerified
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if err := s.tickets.Delete(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to consume reset ticket")
	}

	metrics.PasswordResetsTotal.Inc()
	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

// SetPassword stores a real password for an authenticated account. After
// this, a Google-created account can also log in conventionally.
func (s *AuthService) SetPassword(ctx context.Context, userID, newPassword string) error {
	if newPassword == "" {
		return domain.NewValidationError("new_password", "new password is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

// sendAsync delivers mail without blocking the request that triggered it.
// Failures are logged and counted; the flow has already succeeded.
func (s *AuthService) sendAsync(purpose, to, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()

		if err := s.notifier.Send(ctx, to, subject, body); err != nil {
			metrics.VerificationEmailsTotal.WithLabelValues(purpose, "error").Inc()
			s.log.Error().Err(err).Str("to", to).Str("purpose", purpose).Msg("email delivery failed")
			return
		}
		metrics.VerificationEmailsTotal.WithLabelValues(purpose, "sent").Inc()
	}()
}
