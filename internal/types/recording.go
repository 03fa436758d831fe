package types

import "time"

// Recording is one annotated voice diary entry.
type Recording struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	Content   string `json:"content"`
	// Keywords are stored comma-joined.
	Keywords []string `json:"keywords"`
	// Emotion is the canonical display name of the emotion label.
	Emotion    string    `json:"emotion"`
	AudioFile  string    `json:"audio_file"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
