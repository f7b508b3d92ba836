package domain

import "time"

// Favorite is a song a user saved, together with the practice metadata the
// frontend collects.
type Favorite struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	UserID           string    `json:"-" bson:"user_id"`
	SongName         string    `json:"song_name" bson:"song_name"`
	ArtistName       string    `json:"artist_name" bson:"artist_name"`
	AlbumName        string    `json:"album_name,omitempty" bson:"album_name,omitempty"`
	SongURL          string    `json:"song_url" bson:"song_url"`
	Duration         int       `json:"duration,omitempty" bson:"duration,omitempty"`
	AlbumImage       string    `json:"album_image,omitempty" bson:"album_image,omitempty"`
	RhythmComplexity int       `json:"rhythm_complexity,omitempty" bson:"rhythm_complexity,omitempty"`
	TempoRating      int       `json:"tempo_rating,omitempty" bson:"tempo_rating,omitempty"`
	SkillLevel       string    `json:"skill_level,omitempty" bson:"skill_level,omitempty"`
	Tags             []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}
