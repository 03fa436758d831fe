package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/easeaico/voice-diary/internal/types"
)

const keywordSeparator = ","

// recordingModel maps to the recordings table.
type recordingModel struct {
	ID      int
	UserID  int    `gorm:"index"`
	Content string `gorm:"type:text;not null"`
	// Keywords is the comma-joined keyword list.
	Keywords   string `gorm:"size:500"`
	Emotion    string `gorm:"size:20;not null"`
	AudioFile  string `gorm:"size:255"`
	RecordedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (recordingModel) TableName() string {
	return "recordings"
}

// RecordingRepo accesses diary recordings.
type RecordingRepo struct {
	db *gorm.DB
}

// NewRecordingRepo returns a RecordingRepo.
func NewRecordingRepo(db *gorm.DB) *RecordingRepo {
	return &RecordingRepo{db: db}
}

// Migrate creates or updates the recordings table.
func (r *RecordingRepo) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&recordingModel{}); err != nil {
		return fmt.Errorf("failed to migrate recordings: %w", err)
	}
	return nil
}

// Create inserts rec and fills its generated fields.
func (r *RecordingRepo) Create(ctx context.Context, rec *types.Recording) error {
	record := recordingToModel(*rec)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert recording: %w", err)
	}
	*rec = recordingFromModel(record)
	return nil
}

// ListByUser returns the newest recordings of a user first.
func (r *RecordingRepo) ListByUser(ctx context.Context, userID int, limit int) ([]types.Recording, error) {
	var records []recordingModel
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query recordings: %w", err)
	}

	results := make([]types.Recording, 0, len(records))
	for _, record := range records {
		results = append(results, recordingFromModel(record))
	}
	return results, nil
}

type emotionCount struct {
	Emotion string
	Count   int
}

// CountByEmotion returns how many recordings of a user carry each emotion
// display name.
func (r *RecordingRepo) CountByEmotion(ctx context.Context, userID int) (map[string]int, error) {
	var rows []emotionCount
	if err := r.db.WithContext(ctx).
		Model(&recordingModel{}).
		Select("emotion, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("emotion").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count emotions: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Emotion] = row.Count
	}
	return counts, nil
}

func recordingToModel(rec types.Recording) recordingModel {
	recordedAt := rec.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	return recordingModel{
		ID:         rec.ID,
		UserID:     rec.UserID,
		Content:    rec.Content,
		Keywords:   joinKeywords(rec.Keywords),
		Emotion:    rec.Emotion,
		AudioFile:  rec.AudioFile,
		RecordedAt: recordedAt,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func recordingFromModel(model recordingModel) types.Recording {
	return types.Recording{
		ID:         model.ID,
		UserID:     model.UserID,
		Content:    model.Content,
		Keywords:   splitKeywords(model.Keywords),
		Emotion:    model.Emotion,
		AudioFile:  model.AudioFile,
		RecordedAt: model.RecordedAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// joinKeywords drops separators inside keywords so the stored list splits back cleanly.
func joinKeywords(keywords []string) string {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(strings.ReplaceAll(kw, keywordSeparator, " "))
		if kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	return strings.Join(cleaned, keywordSeparator)
}

func splitKeywords(stored string) []string {
	if strings.TrimSpace(stored) == "" {
		return []string{}
	}
	parts := strings.Split(stored, keywordSeparator)
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			keywords = append(keywords, part)
		}
	}
	return keywords
}
