package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
	"github.com/beatbridge/beatbridge-api/internal/core/token"
	"github.com/beatbridge/beatbridge-api/internal/pkg/metrics"
)

// FederatedService reconciles Google login assertions against the
// credential store: reuse an already-linked account, link by email, or
// create a fresh verified account.
type FederatedService struct {
	users    ports.UserRepository
	tokens   *token.Service
	provider ports.IdentityProvider
	log      zerolog.Logger
}

func NewFederatedService(
	users ports.UserRepository,
	tokens *token.Service,
	provider ports.IdentityProvider,
	log zerolog.Logger,
) *FederatedService {
	return &FederatedService{users: users, tokens: tokens, provider: provider, log: log}
}

func (s *FederatedService) AuthURL(state string) string {
	return s.provider.AuthURL(state)
}

func (s *FederatedService) HandleCallback(ctx context.Context, code string) (string, *domain.User, error) {
	if code == "" {
		metrics.FederatedLoginsTotal.WithLabelValues("failed").Inc()
		return "", nil, domain.ErrProviderFailure
	}

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		metrics.FederatedLoginsTotal.WithLabelValues("failed").Inc()
		s.log.Error().Err(err).Msg("google code exchange failed")
		return "", nil, domain.ErrProviderFailure
	}

	user, outcome, err := s.reconcile(ctx, identity)
	if err != nil {
		metrics.FederatedLoginsTotal.WithLabelValues("failed").Inc()
		return "", nil, err
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.FederatedLoginsTotal.WithLabelValues(outcome).Inc()
	s.log.Info().
		Str("user_id", user.ID).
		Str("outcome", outcome).
		Msg("google login")
	return tok, user, nil
}

// reconcile merges the assertion with zero, one, or an already-linked
// account. Linking by email keeps the account's existing password intact.
func (s *FederatedService) reconcile(ctx context.Context, identity *ports.GoogleIdentity) (*domain.User, string, error) {
	user, err := s.users.FindByGoogleID(ctx, identity.GoogleID)
	if err == nil {
		return user, "reused", nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	user, err = s.users.FindByEmail(ctx, identity.Email)
	if err == nil {
		if user.GoogleID == "" {
			user.GoogleID = identity.GoogleID
			user.UpdatedAt = time.Now().UTC()
			if err := s.users.Update(ctx, user); err != nil {
				return nil, "", err
			}
		}
		return user, "linked", nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	username, err := s.makeUniqueUsername(ctx, identity.DisplayName, identity.Email)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username: username,
		Email:    identity.Email,
		// Google already verified this email; no password until the owner
		// sets one.
		IsVerified: true,
		GoogleID:   identity.GoogleID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, "", err
	}
	return created, "created", nil
}

// makeUniqueUsername derives a username from the Google display name by
// stripping whitespace, then appends the first free numeric suffix:
// "Jane Doe" -> JaneDoe, JaneDoe1, JaneDoe2, ...
func (s *FederatedService) makeUniqueUsername(ctx context.Context, displayName, email string) (string, error) {
	base := strings.Join(strings.Fields(displayName), "")
	if base == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			base = email[:at]
		} else {
			base = "user"
		}
	}

	for i := 0; ; i++ {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}
		_, err := s.users.FindByUsername(ctx, candidate)
		if errors.Is(err, domain.ErrUserNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
}
