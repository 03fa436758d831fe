// Package diary annotates voice diary transcripts and stores them as recordings.
package diary

import (
	"context"
	"fmt"
	"time"

	"github.com/easeaico/voice-diary/internal/emotion"
	"github.com/easeaico/voice-diary/internal/types"
)

// Annotator produces the emotion and keywords for a transcript.
type Annotator interface {
	Analyze(ctx context.Context, transcript string) emotion.Result
}

// RecordingRepo persists annotated recordings.
type RecordingRepo interface {
	Create(ctx context.Context, rec *types.Recording) error
	ListByUser(ctx context.Context, userID int, limit int) ([]types.Recording, error)
	CountByEmotion(ctx context.Context, userID int) (map[string]int, error)
}

// Service annotates and stores diary recordings.
type Service struct {
	annotator  Annotator
	recordings RecordingRepo
	nowFunc    func() time.Time
}

// NewService returns a diary Service.
func NewService(annotator Annotator, recordings RecordingRepo) *Service {
	return &Service{
		annotator:  annotator,
		recordings: recordings,
		nowFunc:    time.Now,
	}
}

// Record annotates transcript and stores it for userID.
func (s *Service) Record(ctx context.Context, userID int, transcript, audioFile string) (*types.Recording, error) {
	if s == nil || s.annotator == nil {
		return nil, fmt.Errorf("diary service not configured")
	}
	if s.recordings == nil {
		return nil, fmt.Errorf("recording repo is nil")
	}

	result := s.annotator.Analyze(ctx, transcript)
	rec := &types.Recording{
		UserID:     userID,
		Content:    transcript,
		Keywords:   result.Keywords,
		Emotion:    result.Emotion.Display(),
		AudioFile:  audioFile,
		RecordedAt: s.nowFunc().UTC(),
	}
	if err := s.recordings.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save recording: %w", err)
	}
	return rec, nil
}

// Recent returns up to limit recordings of userID, newest first.
func (s *Service) Recent(ctx context.Context, userID int, limit int) ([]types.Recording, error) {
	if s == nil || s.recordings == nil {
		return nil, fmt.Errorf("recording repo is nil")
	}
	return s.recordings.ListByUser(ctx, userID, limit)
}

// EmotionStats returns the number of recordings per emotion display name for
// userID. Every label is present, with zero when unused.
func (s *Service) EmotionStats(ctx context.Context, userID int) (map[string]int, error) {
	if s == nil || s.recordings == nil {
		return nil, fmt.Errorf("recording repo is nil")
	}
	counts, err := s.recordings.CountByEmotion(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int, len(emotion.Labels))
	for _, label := range emotion.Labels {
		stats[label.Display()] = counts[label.Display()]
	}
	return stats, nil
}
