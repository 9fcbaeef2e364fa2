// Package anthropic labels job postings with Claude models.
package anthropic

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/spigell/transferability/internal/ai"
	"github.com/spigell/transferability/internal/logger"
	"github.com/spigell/transferability/internal/metrics"
	"github.com/spigell/transferability/internal/utils"
)

const (
	defaultModel        = "claude-sonnet-4-5"
	defaultMaxTokens    = 8192
	defaultMaxLogLength = 200
)

type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type Analyzer struct {
	messages  messageCreator
	model     string
	maxTokens int64
	logger    *zap.Logger
	maxLogLen int
}

type Config struct {
	APIKey       string
	Model        string
	MaxTokens    int64
	MaxRetries   int
	MaxLogLength int
}

// New builds an Analyzer backed by the Anthropic Messages API.
func New(cfg Config, log *zap.Logger) (*Analyzer, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}
	client := anthropic.NewClient(opts...)

	return newAnalyzer(&client.Messages, cfg, log), nil
}

func newAnalyzer(messages messageCreator, cfg Config, log *zap.Logger) *Analyzer {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Analyzer{
		messages:  messages,
		model:     model,
		maxTokens: maxTokens,
		logger:    logger.WithCommonFields(log, "anthropic", model),
		maxLogLen: maxLogLen,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, posting *ai.Posting) (*metrics.RawReport, error) {
	if err := posting.Validate(); err != nil {
		return nil, err
	}

	message := ai.UserMessage(posting)
	blocks := make([]anthropic.ContentBlockParamUnion, 0, 2)
	if len(posting.PDF) > 0 {
		blocks = append(blocks, anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
			Data: base64.StdEncoding.EncodeToString(posting.PDF),
		}))
	}
	blocks = append(blocks, anthropic.NewTextBlock(message))

	a.logger.Debug("anthropic messages request",
		zap.String("source", posting.Source),
		zap.String("mime_type", posting.MimeType()),
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("message_preview", utils.TruncateForLog(message, a.maxLogLen)),
	)

	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: ai.SystemInstruction(), CacheControl: anthropic.NewCacheControlEphemeralParam()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	raw := responseText(resp)

	a.logger.Debug("anthropic messages response",
		zap.String("source", posting.Source),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)

	report, err := ai.ParseReport(raw)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	return report, nil
}

func (a *Analyzer) Model() string {
	return a.model
}

func responseText(resp *anthropic.Message) string {
	if resp == nil {
		return ""
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(block.Text)
	}
	return strings.TrimSpace(b.String())
}
