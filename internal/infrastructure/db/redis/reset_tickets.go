package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

const defaultTicketTTL = 15 * time.Minute

// ResetTicketStore keeps password-reset tickets in Redis.
// Key format: reset:<email>, value is the JSON-encoded ticket; Redis TTL is
// the ticket expiry, so stale tickets vanish without a sweeper.
type ResetTicketStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResetTicketStore creates a store wrapping the given Redis client.
// A non-positive ttl falls back to 15 minutes.
func NewResetTicketStore(client *redis.Client, ttl time.Duration) *ResetTicketStore {
	if ttl <= 0 {
		ttl = defaultTicketTTL
	}
	return &ResetTicketStore{client: client, ttl: ttl}
}

func (s *ResetTicketStore) Put(ctx context.Context, ticket *domain.ResetTicket) error {
	payload, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("encode reset ticket: %w", err)
	}
	if err := s.client.Set(ctx, s.key(ticket.Email), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store reset ticket: %w", err)
	}
	return nil
}

func (s *ResetTicketStore) Get(ctx context.Context, email string) (*domain.ResetTicket, error) {
	payload, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reset ticket: %w", err)
	}

	var ticket domain.ResetTicket
	if err := json.Unmarshal(payload, &ticket); err != nil {
		return nil, fmt.Errorf("decode reset ticket: %w", err)
	}
	return &ticket, nil
}

func (s *ResetTicketStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("delete reset ticket: %w", err)
	}
	return nil
}

func (s *ResetTicketStore) key(email string) string {
	return "reset:" + email
}
