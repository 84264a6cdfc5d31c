package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Attr is one key=value pair from a record.
type Attr struct {
	Key   string
	Value string
}

// Entry is a parsed slog text record.
type Entry struct {
	Time    string
	Level   slog.Level
	Message string
	Attrs   []Attr
	// Raw is the original line, kept for lines that did not parse.
	Raw    string
	Parsed bool
}

// Parse reads a line written by slog.TextHandler. Lines in any other shape
// come back with Parsed false and the text in Raw and Message.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Message: line, Level: slog.LevelInfo}
	pairs, ok := splitPairs(line)
	if !ok || len(pairs) == 0 {
		return entry
	}
	hasLevel, hasMsg := false, false
	for _, p := range pairs {
		switch p.Key {
		case slog.TimeKey:
			entry.Time = p.Value
		case slog.LevelKey:
			if err := entry.Level.UnmarshalText([]byte(p.Value)); err == nil {
				hasLevel = true
			}
		case slog.MessageKey:
			entry.Message = p.Value
			hasMsg = true
		default:
			entry.Attrs = append(entry.Attrs, p)
		}
	}
	if !hasLevel || !hasMsg {
		return Entry{Raw: line, Message: line, Level: slog.LevelInfo}
	}
	entry.Parsed = true
	return entry
}

// ParseLines parses every line, dropping blank ones.
func ParseLines(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries
}

// Filter keeps entries at or above min. Unparsed lines are always kept.
func Filter(entries []Entry, min slog.Level) []Entry {
	var out []Entry
	for _, e := range entries {
		if !e.Parsed || e.Level >= min {
			out = append(out, e)
		}
	}
	return out
}

// splitPairs tokenizes key=value pairs where values may be Go-quoted.
func splitPairs(line string) ([]Attr, bool) {
	var pairs []Attr
	rest := strings.TrimSpace(line)
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 || strings.ContainsAny(rest[:eq], " \t\"") {
			return nil, false
		}
		key := rest[:eq]
		rest = rest[eq+1:]

		var value string
		if strings.HasPrefix(rest, `"`) {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, false
			}
			value, err = strconv.Unquote(quoted)
			if err != nil {
				return nil, false
			}
			rest = rest[len(quoted):]
		} else {
			end := strings.IndexByte(rest, ' ')
			if end < 0 {
				end = len(rest)
			}
			value = rest[:end]
			rest = rest[end:]
		}
		pairs = append(pairs, Attr{Key: key, Value: value})
		rest = strings.TrimLeft(rest, " ")
	}
	return pairs, true
}
