package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository is the Mongo-backed credential store. Uniqueness of
// username, email and google_id is enforced by unique indexes, so the
// check-then-insert in the service layer is never the last line of defense.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique indexes Create depends on. Call once at
// startup.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("username_1").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_1").SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "google_id", Value: 1}},
			Options: options.Index().SetName("google_id_1").SetUnique(true).
				SetPartialFilterExpression(bson.M{"google_id": bson.M{"$type": "string"}}),
		},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

type mongoUser struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty"`
	Username                string             `bson:"username"`
	Email                   string             `bson:"email"`
	PasswordHash            string             `bson:"password_hash,omitempty"`
	IsVerified              bool               `bson:"is_verified"`
	PendingVerificationCode string             `bson:"pending_verification_code,omitempty"`
	GoogleID                *string            `bson:"google_id,omitempty"`
	CreatedAt               int64              `bson:"created_at"`
	UpdatedAt               int64              `bson:"updated_at"`
}

func toDoc(u *domain.User) mongoUser {
	doc := mongoUser{
		Username:                u.Username,
		Email:                   u.Email,
		PasswordHash:            u.PasswordHash,
		IsVerified:              u.IsVerified,
		PendingVerificationCode: u.PendingVerificationCode,
		CreatedAt:               u.CreatedAt.Unix(),
		UpdatedAt:               u.UpdatedAt.Unix(),
	}
	if u.GoogleID != "" {
		id := u.GoogleID
		doc.GoogleID = &id
	}
	return doc
}

func toDomain(mu mongoUser) *domain.User {
	u := &domain.User{
		ID:                      mu.ID.Hex(),
		Username:                mu.Username,
		Email:                   mu.Email,
		PasswordHash:            mu.PasswordHash,
		IsVerified:              mu.IsVerified,
		PendingVerificationCode: mu.PendingVerificationCode,
		CreatedAt:               unixToTime(mu.CreatedAt),
		UpdatedAt:               unixToTime(mu.UpdatedAt),
	}
	if mu.GoogleID != nil {
		u.GoogleID = *mu.GoogleID
	}
	return u
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	res, err := r.coll.InsertOne(ctx, toDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.ConflictError{Fields: conflictFields(err)}
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// conflictFields extracts which unique index a duplicate-key error hit. The
// driver exposes the index name only inside the server message.
func conflictFields(err error) []string {
	msg := err.Error()
	for _, field := range []string{"username", "email", "google_id"} {
		if strings.Contains(msg, field+"_1") {
			return []string{field}
		}
	}
	return []string{"username"}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"username": usernameOrEmail},
		bson.M{"email": usernameOrEmail},
	}})
}

func (r *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"google_id": googleID})
}

func (r *UserRepository) FindByVerificationCode(ctx context.Context, code string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"pending_verification_code": code})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(mu), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	set := bson.M{
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"is_verified":   user.IsVerified,
		"updated_at":    user.UpdatedAt.Unix(),
	}
	update := bson.M{"$set": set}
	if user.GoogleID != "" {
		set["google_id"] = user.GoogleID
	}
	if user.PendingVerificationCode != "" {
		set["pending_verification_code"] = user.PendingVerificationCode
	} else {
		update["$unset"] = bson.M{"pending_verification_code": ""}
	}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ConflictError{Fields: conflictFields(err)}
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
