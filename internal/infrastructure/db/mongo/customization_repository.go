package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

const customizationsCollection = "customizations"

// CustomizationRepository stores one practice profile per user, keyed by
// user_id.
type CustomizationRepository struct {
	coll *mongo.Collection
}

func NewCustomizationRepository(db *mongo.Database) *CustomizationRepository {
	return &CustomizationRepository{coll: db.Collection(customizationsCollection)}
}

type mongoCustomization struct {
	UserID               string   `bson:"user_id"`
	SkillLevel           string   `bson:"skill_level"`
	PracticeFrequency    string   `bson:"practice_frequency"`
	FavoriteGenres       []string `bson:"favorite_genres,omitempty"`
	ChapterProgress      int      `bson:"chapter_progress,omitempty"`
	Chapter0PageProgress int      `bson:"chapter0_page_progress,omitempty"`
	Chapter1PageProgress int      `bson:"chapter1_page_progress,omitempty"`
	UpdatedAt            int64    `bson:"updated_at"`
}

// Upsert sets only the practice-profile fields so the chapter progress on the
// same record survives a re-save.
func (r *CustomizationRepository) Upsert(ctx context.Context, c *domain.Customization) error {
	update := bson.M{"$set": bson.M{
		"skill_level":        c.SkillLevel,
		"practice_frequency": c.PracticeFrequency,
		"favorite_genres":    c.FavoriteGenres,
		"updated_at":         c.UpdatedAt.Unix(),
	}}

	_, err := r.coll.UpdateOne(ctx, bson.M{"user_id": c.UserID}, update,
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert customization: %w", err)
	}
	return nil
}

func (r *CustomizationRepository) FindByUser(ctx context.Context, userID string) (*domain.Customization, error) {
	var mc mongoCustomization
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNoCustomization
		}
		return nil, fmt.Errorf("find customization: %w", err)
	}

	return &domain.Customization{
		UserID:               mc.UserID,
		SkillLevel:           mc.SkillLevel,
		PracticeFrequency:    mc.PracticeFrequency,
		FavoriteGenres:       mc.FavoriteGenres,
		ChapterProgress:      mc.ChapterProgress,
		Chapter0PageProgress: mc.Chapter0PageProgress,
		Chapter1PageProgress: mc.Chapter1PageProgress,
		UpdatedAt:            unixToTime(mc.UpdatedAt),
	}, nil
}

// AdvanceProgress bumps the stored chapter progress with $max so concurrent
// submissions can only ever move it forward.
func (r *CustomizationRepository) AdvanceProgress(ctx context.Context, userID string, p domain.ChapterProgress) (*domain.ChapterProgress, error) {
	update := bson.M{"$max": bson.M{
		"chapter_progress":       p.Chapter,
		"chapter0_page_progress": p.Chapter0Page,
		"chapter1_page_progress": p.Chapter1Page,
	}}

	var mc mongoCustomization
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Decode(&mc)
	if err != nil {
		return nil, fmt.Errorf("advance chapter progress: %w", err)
	}

	result := domain.ChapterProgress{
		Chapter:      mc.ChapterProgress,
		Chapter0Page: mc.Chapter0PageProgress,
		Chapter1Page: mc.Chapter1PageProgress,
	}.Normalize()
	return &result, nil
}
