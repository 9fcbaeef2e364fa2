package gemini

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/spigell/transferability/internal/ai"
	"github.com/spigell/transferability/internal/logger"
	"github.com/spigell/transferability/internal/metrics"
	"github.com/spigell/transferability/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultMaxLogLength = 200

type contentGenerator interface {
	Generate(ctx context.Context, req *Request) (string, ai.Usage, error)
	Model() string
}

// Analyzer labels job postings with Gemini.
type Analyzer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAnalyzer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Analyzer{
		generator: generator,
		logger:    logger.WithCommonFields(log, "gemini", generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, posting *ai.Posting) (*metrics.RawReport, error) {
	if err := posting.Validate(); err != nil {
		return nil, err
	}

	message := ai.UserMessage(posting)
	parts := make([]*genai.Part, 0, 2)
	if len(posting.PDF) > 0 {
		parts = append(parts, genai.NewPartFromBytes(posting.PDF, posting.MimeType()))
	}
	parts = append(parts, genai.NewPartFromText(message))

	a.logger.Debug("gemini generate content request",
		zap.String("source", posting.Source),
		zap.String("mime_type", posting.MimeType()),
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("message_preview", utils.TruncateForLog(message, a.maxLogLen)),
	)

	raw, usage, err := a.generator.Generate(ctx, &Request{
		SystemInstruction: ai.SystemInstruction(),
		Parts:             parts,
		Schema:            reportSchema(),
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.String("source", posting.Source),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
		zap.Int64("input_tokens", usage.InputTokens),
		zap.Int64("output_tokens", usage.OutputTokens),
	)

	report, err := ai.ParseReport(raw)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	return report, nil
}
