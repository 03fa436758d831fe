// Package main annotates a voice diary transcript with an emotion and keywords.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/easeaico/voice-diary/internal/config"
	"github.com/easeaico/voice-diary/internal/diary"
	"github.com/easeaico/voice-diary/internal/emotion"
	"github.com/easeaico/voice-diary/internal/repository"
)

type output struct {
	Emotion      string   `json:"emotion"`
	EmotionLabel string   `json:"emotion_label"`
	Keywords     []string `json:"keywords"`
	RecordingID  int      `json:"recording_id,omitempty"`
}

type historyEntry struct {
	ID         int       `json:"id"`
	Content    string    `json:"content"`
	Emotion    string    `json:"emotion"`
	Keywords   []string  `json:"keywords"`
	AudioFile  string    `json:"audio_file,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// logOutput receives slog records; stdout stays reserved for JSON.
var logOutput io.Writer = os.Stderr

type flags struct {
	topics    []string
	save      bool
	userID    int
	audioFile string
	limit     int
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:          "annotate [transcript]",
		Short:        "Annotate a diary transcript with an emotion and keywords",
		Long:         "Reads the transcript from the arguments, or from stdin when none are given, and prints the annotation as JSON.",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args, f)
		},
	}
	root.Flags().StringSliceVar(&f.topics, "topics", nil, "restrict locally extracted keywords to these topics")
	root.Flags().BoolVar(&f.save, "save", false, "store the annotated recording in the database")
	root.Flags().StringVar(&f.audioFile, "audio-file", "", "audio file the transcript came from")
	root.PersistentFlags().IntVar(&f.userID, "user-id", 0, "owner of the stored recordings")

	history := &cobra.Command{
		Use:   "history",
		Short: "List the newest stored recordings of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, service *diary.Service) error {
				recs, err := service.Recent(ctx, f.userID, f.limit)
				if err != nil {
					return err
				}
				entries := make([]historyEntry, 0, len(recs))
				for _, rec := range recs {
					entries = append(entries, historyEntry{
						ID:         rec.ID,
						Content:    rec.Content,
						Emotion:    rec.Emotion,
						Keywords:   rec.Keywords,
						AudioFile:  rec.AudioFile,
						RecordedAt: rec.RecordedAt,
					})
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			})
		},
	}
	history.Flags().IntVar(&f.limit, "limit", 10, "maximum number of recordings, 0 for all")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count stored recordings of a user per emotion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, service *diary.Service) error {
				counts, err := service.EmotionStats(ctx, f.userID)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), counts)
			})
		},
	}

	root.AddCommand(history, stats)
	return root
}

func run(ctx context.Context, in io.Reader, out io.Writer, args []string, f flags) error {
	cfg := loadConfig()
	if len(f.topics) > 0 {
		cfg.Topics = f.topics
	}

	transcript, err := readTranscript(in, args)
	if err != nil {
		return err
	}

	analyzer := emotion.NewAnalyzerFromConfig(cfg)

	if !f.save {
		result := analyzer.Analyze(ctx, transcript)
		return writeJSON(out, output{
			Emotion:      string(result.Emotion),
			EmotionLabel: result.Emotion.Display(),
			Keywords:     result.Keywords,
		})
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := diary.NewService(analyzer, store.Recordings).Record(ctx, f.userID, transcript, f.audioFile)
	if err != nil {
		return err
	}
	slog.Info("recording saved", "id", rec.ID, "user_id", rec.UserID, "emotion", rec.Emotion)

	return writeJSON(out, output{
		Emotion:      string(emotion.MapLabel(rec.Emotion)),
		EmotionLabel: rec.Emotion,
		Keywords:     rec.Keywords,
		RecordingID:  rec.ID,
	})
}

// withService opens the store for read-only subcommands. No annotator is
// needed to read recordings back.
func withService(ctx context.Context, fn func(context.Context, *diary.Service) error) error {
	cfg := loadConfig()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(ctx, diary.NewService(nil, store.Recordings))
}

func loadConfig() config.Config {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: cfg.LogLevel})))
	return cfg
}

func openStore(ctx context.Context, cfg config.Config) (*repository.Store, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	store, err := repository.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := store.Recordings.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func readTranscript(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
