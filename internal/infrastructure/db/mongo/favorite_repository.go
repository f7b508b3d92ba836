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

const favoritesCollection = "favorites"

type FavoriteRepository struct {
	coll *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{coll: db.Collection(favoritesCollection)}
}

type mongoFavorite struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	UserID           string             `bson:"user_id"`
	SongName         string             `bson:"song_name"`
	ArtistName       string             `bson:"artist_name"`
	AlbumName        string             `bson:"album_name,omitempty"`
	SongURL          string             `bson:"song_url"`
	Duration         int                `bson:"duration,omitempty"`
	AlbumImage       string             `bson:"album_image,omitempty"`
	RhythmComplexity int                `bson:"rhythm_complexity,omitempty"`
	TempoRating      int                `bson:"tempo_rating,omitempty"`
	SkillLevel       string             `bson:"skill_level,omitempty"`
	Tags             []string           `bson:"tags,omitempty"`
	CreatedAt        int64              `bson:"created_at"`
}

func (mf mongoFavorite) toDomain() domain.Favorite {
	return domain.Favorite{
		ID:               mf.ID.Hex(),
		UserID:           mf.UserID,
		SongName:         mf.SongName,
		ArtistName:       mf.ArtistName,
		AlbumName:        mf.AlbumName,
		SongURL:          mf.SongURL,
		Duration:         mf.Duration,
		AlbumImage:       mf.AlbumImage,
		RhythmComplexity: mf.RhythmComplexity,
		TempoRating:      mf.TempoRating,
		SkillLevel:       mf.SkillLevel,
		Tags:             mf.Tags,
		CreatedAt:        unixToTime(mf.CreatedAt),
	}
}

func (r *FavoriteRepository) Insert(ctx context.Context, fav *domain.Favorite) (*domain.Favorite, error) {
	doc := mongoFavorite{
		UserID:           fav.UserID,
		SongName:         fav.SongName,
		ArtistName:       fav.ArtistName,
		AlbumName:        fav.AlbumName,
		SongURL:          fav.SongURL,
		Duration:         fav.Duration,
		AlbumImage:       fav.AlbumImage,
		RhythmComplexity: fav.RhythmComplexity,
		TempoRating:      fav.TempoRating,
		SkillLevel:       fav.SkillLevel,
		Tags:             fav.Tags,
		CreatedAt:        fav.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert favorite: %w", err)
	}

	created := *fav
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoFavorite
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}

	favorites := make([]domain.Favorite, 0, len(docs))
	for _, d := range docs {
		favorites = append(favorites, d.toDomain())
	}
	return favorites, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, userID, favoriteID string) error {
	oid, err := primitive.ObjectIDFromHex(favoriteID)
	if err != nil {
		return domain.ErrFavoriteNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
