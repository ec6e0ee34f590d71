package ingest

import (
	"fmt"
	"strings"

	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
)

// Document is the unit counted by the phrase matrix: an opaque id, unique
// within a run, and its raw text. Any other per-tweet attribute belongs to
// the statistics side.
type Document struct {
	ID   string
	Text string
}

// Validate checks if the document has required fields. Empty text is
// allowed; it simply contributes no phrases.
func (d Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: document id is required", internalerr.ErrInvalidInput)
	}
	return nil
}
