package domain

import "time"

// Customization stores a user's practice profile, consumed by the song
// recommendation flow, plus their rhythm-trainer chapter progress.
type Customization struct {
	UserID            string   `json:"-" bson:"user_id"`
	SkillLevel        string   `json:"skill_level" bson:"skill_level"`
	PracticeFrequency string   `json:"practice_frequency" bson:"practice_frequency"`
	FavoriteGenres    []string `json:"favorite_genres" bson:"favorite_genres"`

	ChapterProgress      int `json:"chapter_progress" bson:"chapter_progress"`
	Chapter0PageProgress int `json:"chapter0_page_progress" bson:"chapter0_page_progress"`
	Chapter1PageProgress int `json:"chapter1_page_progress" bson:"chapter1_page_progress"`

	UpdatedAt time.Time `json:"-" bson:"updated_at"`
}

// ChapterProgress tracks how far a user got in the rhythm trainer. All
// values start at 1 and only ever move forward; a lower submitted value
// never overwrites a higher stored one.
type ChapterProgress struct {
	Chapter      int `json:"chapter_progress" bson:"chapter_progress"`
	Chapter0Page int `json:"chapter0_page_progress" bson:"chapter0_page_progress"`
	Chapter1Page int `json:"chapter1_page_progress" bson:"chapter1_page_progress"`
}

// Normalize lifts unset fields to the starting position.
func (p ChapterProgress) Normalize() ChapterProgress {
	if p.Chapter < 1 {
		p.Chapter = 1
	}
	if p.Chapter0Page < 1 {
		p.Chapter0Page = 1
	}
	if p.Chapter1Page < 1 {
		p.Chapter1Page = 1
	}
	return p
}
