package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"reflect"
	"strings"
	"testing"
)

func clearCredentials(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LLM_PROVIDER", "LLM_API_KEY", "OPENAI_API_KEY", "KEYWORD_TOPICS", "DATABASE_URL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestReadTranscript(t *testing.T) {
	got, err := readTranscript(strings.NewReader("ignored"), []string{"바다", "모래"})
	if err != nil || got != "바다 모래" {
		t.Fatalf("unexpected transcript from args: %q, %v", got, err)
	}
	got, err = readTranscript(strings.NewReader("  오늘 바다에 갔다\n"), nil)
	if err != nil || got != "오늘 바다에 갔다" {
		t.Fatalf("unexpected transcript from stdin: %q, %v", got, err)
	}
}

func TestRunLocalPath(t *testing.T) {
	clearCredentials(t)

	var out bytes.Buffer
	in := strings.NewReader("오늘 성북동에 갔는데 아기고양이를 봤다 기분이 좋아졌다")
	if err := run(context.Background(), in, &out, nil, flags{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var got output
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid json output %q: %v", out.String(), err)
	}
	if got.Emotion != "Surprise" || got.EmotionLabel != "놀람" {
		t.Fatalf("unexpected emotion: %#v", got)
	}
	if !reflect.DeepEqual(got.Keywords, []string{"성북동", "아기고양이"}) {
		t.Fatalf("unexpected keywords: %v", got.Keywords)
	}
}

func TestRunTopicsFlag(t *testing.T) {
	clearCredentials(t)

	var out bytes.Buffer
	args := []string{"오늘 성북동에 갔는데 아기고양이를 봤다"}
	if err := run(context.Background(), strings.NewReader(""), &out, args, flags{topics: []string{"아기고양이"}}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var got output
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if !reflect.DeepEqual(got.Keywords, []string{"아기고양이"}) {
		t.Fatalf("unexpected keywords: %v", got.Keywords)
	}
}

func TestRunSaveRequiresDatabase(t *testing.T) {
	clearCredentials(t)

	var out bytes.Buffer
	if err := run(context.Background(), strings.NewReader(""), &out, []string{"바다"}, flags{save: true}); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestRootCmdRoutesTranscriptArgs(t *testing.T) {
	clearCredentials(t)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"바다", "모래", "바다"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var got output
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if !reflect.DeepEqual(got.Keywords, []string{"바다", "모래"}) {
		t.Fatalf("unexpected keywords: %v", got.Keywords)
	}
}

func TestStatsRequiresDatabase(t *testing.T) {
	clearCredentials(t)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"stats", "--user-id", "1"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestRunLogsMissingCredentialOnce(t *testing.T) {
	clearCredentials(t)
	var logs bytes.Buffer
	logOutput = &logs
	t.Cleanup(func() { logOutput = os.Stderr })

	if err := run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, []string{"바다"}, flags{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n := strings.Count(logs.String(), "no completion credential"); n != 1 {
		t.Fatalf("expected one credential log line, got %d:\n%s", n, logs.String())
	}
}
