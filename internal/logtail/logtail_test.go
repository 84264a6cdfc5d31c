package logtail

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parsed  bool
		level   slog.Level
		message string
		attrs   []Attr
	}{
		{
			name:    "warn with quoted attrs",
			input:   `time=2025-10-08T21:01:05.000Z level=WARN msg="remote create item failed" error="create item: dial tcp: refused"`,
			parsed:  true,
			level:   slog.LevelWarn,
			message: "remote create item failed",
			attrs:   []Attr{{Key: "error", Value: "create item: dial tcp: refused"}},
		},
		{
			name:    "info bare values",
			input:   `time=2025-10-08T21:01:05.000Z level=INFO msg=startup driver=sqlite`,
			parsed:  true,
			level:   slog.LevelInfo,
			message: "startup",
			attrs:   []Attr{{Key: "driver", Value: "sqlite"}},
		},
		{
			name:    "escaped quotes",
			input:   `level=ERROR msg="order status migrated" from="say \"hi\""`,
			parsed:  true,
			level:   slog.LevelError,
			message: "order status migrated",
			attrs:   []Attr{{Key: "from", Value: `say "hi"`}},
		},
		{
			name:    "plain text",
			input:   "panic: something went wrong",
			message: "panic: something went wrong",
			level:   slog.LevelInfo,
		},
		{
			name:    "pairs without level",
			input:   "a=1 b=2",
			message: "a=1 b=2",
			level:   slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got.Parsed != tt.parsed {
				t.Fatalf("Parsed = %v, want %v", got.Parsed, tt.parsed)
			}
			if got.Level != tt.level {
				t.Fatalf("Level = %v, want %v", got.Level, tt.level)
			}
			if got.Message != tt.message {
				t.Fatalf("Message = %q, want %q", got.Message, tt.message)
			}
			if !reflect.DeepEqual(got.Attrs, tt.attrs) {
				t.Fatalf("Attrs = %#v, want %#v", got.Attrs, tt.attrs)
			}
		})
	}
}

func TestParse_RoundTripsTextHandler(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Warn("local store write failed", "key", "cart", "error", "disk full")

	got := Parse(strings.TrimSpace(buf.String()))
	if !got.Parsed || got.Level != slog.LevelWarn || got.Message != "local store write failed" {
		t.Fatalf("entry = %#v", got)
	}
	want := []Attr{{Key: "key", Value: "cart"}, {Key: "error", Value: "disk full"}}
	if !reflect.DeepEqual(got.Attrs, want) {
		t.Fatalf("Attrs = %#v, want %#v", got.Attrs, want)
	}
}

func TestFilter(t *testing.T) {
	entries := ParseLines([]string{
		"level=DEBUG msg=a",
		"",
		"level=INFO msg=b",
		"level=WARN msg=c",
		"not structured",
		"level=ERROR msg=d",
	})
	got := Filter(entries, slog.LevelWarn)
	var messages []string
	for _, e := range got {
		messages = append(messages, e.Message)
	}
	want := []string{"c", "not structured", "d"}
	if !reflect.DeepEqual(messages, want) {
		t.Fatalf("messages = %v, want %v", messages, want)
	}
}
