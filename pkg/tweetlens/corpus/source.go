package corpus

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
)

// Source supplies a finite corpus of tweets. Ids must be unique within a
// run; when they are not, the phrase matrix keeps the last text seen.
type Source interface {
	Tweets(ctx context.Context) ([]Tweet, error)
}

// Formats understood by Open.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Open returns a file source for path. An empty format is inferred from
// the extension (".jsonl" and ".ndjson" are line-delimited, anything else
// is a single JSON document).
func Open(path, format string, logger *slog.Logger) (Source, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: corpus path is required", internalerr.ErrInvalidConfig)
	}
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".jsonl", ".ndjson":
			format = FormatJSONL
		default:
			format = FormatJSON
		}
	}
	switch format {
	case FormatJSON:
		return &JSONFile{Path: path, Logger: logger}, nil
	case FormatJSONL:
		return &JSONLFile{Path: path, Logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: unknown corpus format %q", internalerr.ErrInvalidConfig, format)
	}
}

// JSONFile reads the export format {"tweets": [...]}.
type JSONFile struct {
	Path   string
	Logger *slog.Logger
}

// Tweets implements Source.
func (f *JSONFile) Tweets(ctx context.Context) ([]Tweet, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", f.Path, err)
	}

	var doc struct {
		Tweets []Tweet `json:"tweets"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", f.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return prepare(doc.Tweets, f.Path, loggerOr(f.Logger)), nil
}

// JSONLFile reads one tweet object per line. Malformed lines are skipped
// with a warning.
type JSONLFile struct {
	Path   string
	Logger *slog.Logger
}

// Tweets implements Source.
func (f *JSONLFile) Tweets(ctx context.Context) ([]Tweet, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", f.Path, err)
	}
	defer file.Close()

	logger := loggerOr(f.Logger)
	var tweets []Tweet
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var t Tweet
		if err := json.Unmarshal([]byte(text), &t); err != nil {
			logger.Warn("skipping malformed tweet", "path", f.Path, "line", line, "error", err)
			continue
		}
		tweets = append(tweets, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus %s: %w", f.Path, err)
	}

	return prepare(tweets, f.Path, logger), nil
}

// prepare drops tweets without id and cleans text in place.
func prepare(tweets []Tweet, path string, logger *slog.Logger) []Tweet {
	out := tweets[:0]
	skipped := 0
	for _, t := range tweets {
		if err := t.Validate(); err != nil {
			skipped++
			continue
		}
		t.Text = CleanText(t.Text)
		out = append(out, t)
	}
	if skipped > 0 {
		logger.Warn("skipped tweets without id", "path", path, "count", skipped)
	}
	return out
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default().With("component", "corpus")
}
