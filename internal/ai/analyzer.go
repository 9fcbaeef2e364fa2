package ai

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"github.com/spigell/transferability/internal/metrics"
)

const pdfMimeType = "application/pdf"

// Posting is a job posting acquired from a file, a URL or hh.ru.
type Posting struct {
	Title  string
	Source string
	Text   string
	PDF    []byte
}

// MimeType reports the payload type sent to the model.
func (p *Posting) MimeType() string {
	if len(p.PDF) > 0 {
		return pdfMimeType
	}
	return "text/plain"
}

// Validate checks that there is something to analyze.
func (p *Posting) Validate() error {
	if p == nil {
		return fmt.Errorf("posting is required")
	}
	if len(p.PDF) == 0 && strings.TrimSpace(p.Text) == "" {
		return fmt.Errorf("posting %q has no content", p.Source)
	}
	return nil
}

// Usage is the token accounting of a single model call.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Analyzer labels the tasks and skills of a posting.
type Analyzer interface {
	Analyze(ctx context.Context, posting *Posting) (*metrics.RawReport, error)
}

//go:embed prompt.md
var systemInstruction string

// SystemInstruction returns the labeling instructions shared by all providers.
func SystemInstruction() string {
	return strings.TrimSpace(systemInstruction)
}

// UserMessage is the text part accompanying a posting.
func UserMessage(p *Posting) string {
	if len(p.PDF) > 0 {
		return "Analyze this job description PDF."
	}

	var b strings.Builder
	if title := strings.TrimSpace(p.Title); title != "" {
		b.WriteString("Job title: ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.TrimSpace(p.Text))
	return b.String()
}
