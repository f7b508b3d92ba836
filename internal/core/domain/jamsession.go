package domain

import "time"

// JamSession is a shareable rhythm pattern a user composed. Titles are
// unique per owner; public sessions appear in the explore feed.
type JamSession struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Tempo       int       `json:"tempo" bson:"tempo"`
	Pattern     string    `json:"pattern" bson:"pattern"`
	Genre       string    `json:"genre,omitempty" bson:"genre,omitempty"`
	IsPublic    bool      `json:"is_public" bson:"is_public"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
