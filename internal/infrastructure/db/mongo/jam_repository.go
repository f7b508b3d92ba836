package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

const jamSessionsCollection = "jam_sessions"

// JamSessionRepository persists jam sessions. A compound unique index on
// (user_id, title) makes the per-owner title constraint race-free.
type JamSessionRepository struct {
	coll *mongo.Collection
}

func NewJamSessionRepository(db *mongo.Database) *JamSessionRepository {
	return &JamSessionRepository{coll: db.Collection(jamSessionsCollection)}
}

func (r *JamSessionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "title", Value: 1}},
		Options: options.Index().SetName("user_title_1").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create jam session indexes: %w", err)
	}
	return nil
}

type mongoJamSession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Tempo       int                `bson:"tempo"`
	Pattern     string             `bson:"pattern"`
	Genre       string             `bson:"genre,omitempty"`
	IsPublic    bool               `bson:"is_public"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (mj mongoJamSession) toDomain() domain.JamSession {
	return domain.JamSession{
		ID:          mj.ID.Hex(),
		UserID:      mj.UserID,
		Title:       mj.Title,
		Description: mj.Description,
		Tempo:       mj.Tempo,
		Pattern:     mj.Pattern,
		Genre:       mj.Genre,
		IsPublic:    mj.IsPublic,
		CreatedAt:   unixToTime(mj.CreatedAt),
		UpdatedAt:   unixToTime(mj.UpdatedAt),
	}
}

func (r *JamSessionRepository) Insert(ctx context.Context, jam *domain.JamSession) (*domain.JamSession, error) {
	doc := mongoJamSession{
		UserID:      jam.UserID,
		Title:       jam.Title,
		Description: jam.Description,
		Tempo:       jam.Tempo,
		Pattern:     jam.Pattern,
		Genre:       jam.Genre,
		IsPublic:    jam.IsPublic,
		CreatedAt:   jam.CreatedAt.Unix(),
		UpdatedAt:   jam.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrJamTitleTaken
		}
		return nil, fmt.Errorf("insert jam session: %w", err)
	}

	created := *jam
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *JamSessionRepository) FindByID(ctx context.Context, id string) (*domain.JamSession, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJamNotFound
	}

	var mj mongoJamSession
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mj); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrJamNotFound
		}
		return nil, fmt.Errorf("find jam session: %w", err)
	}

	jam := mj.toDomain()
	return &jam, nil
}

func (r *JamSessionRepository) ListByUser(ctx context.Context, userID string) ([]domain.JamSession, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *JamSessionRepository) ListPublic(ctx context.Context) ([]domain.JamSession, error) {
	return r.list(ctx, bson.M{"is_public": true})
}

func (r *JamSessionRepository) list(ctx context.Context, filter bson.M) ([]domain.JamSession, error) {
	cur, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list jam sessions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoJamSession
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jam sessions: %w", err)
	}

	jams := make([]domain.JamSession, 0, len(docs))
	for _, d := range docs {
		jams = append(jams, d.toDomain())
	}
	return jams, nil
}

func (r *JamSessionRepository) Update(ctx context.Context, jam *domain.JamSession) error {
	oid, err := primitive.ObjectIDFromHex(jam.ID)
	if err != nil {
		return domain.ErrJamNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":       jam.Title,
		"description": jam.Description,
		"tempo":       jam.Tempo,
		"pattern":     jam.Pattern,
		"genre":       jam.Genre,
		"is_public":   jam.IsPublic,
		"updated_at":  jam.UpdatedAt.Unix(),
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrJamTitleTaken
		}
		return fmt.Errorf("update jam session: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJamNotFound
	}
	return nil
}

func (r *JamSessionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJamNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete jam session: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJamNotFound
	}
	return nil
}
