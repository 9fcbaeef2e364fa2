package anthropic

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/spigell/transferability/internal/ai"
	"github.com/spigell/transferability/internal/metrics"
)

const analysisJSON = `{"jobTitle": "Nurse", "executiveSummary": "Hands-on care.", "riskCategory": "Low",
"tasks": [{"description": "Administer medication", "exposureLevel": "E0", "augmentationPotential": "Low", "rationale": "physical"}],
"skills": [{"name": "Patient care", "classification": "S0", "rationale": "manual"}],
"recommendations": {"roleRedesign": [], "reskillingPriorities": [], "techIntegration": ["Charting assistant"]}}`

type stubMessages struct {
	resp *anthropic.Message
	err  error
	last anthropic.MessageNewParams
}

func (s *stubMessages) New(_ context.Context, body anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	s.last = body
	return s.resp, s.err
}

func textMessage(texts ...string) *anthropic.Message {
	msg := &anthropic.Message{Usage: anthropic.Usage{InputTokens: 100, OutputTokens: 20}}
	for _, text := range texts {
		msg.Content = append(msg.Content, anthropic.ContentBlockUnion{Type: "text", Text: text})
	}
	return msg
}

func TestAnalyzerAnalyze(t *testing.T) {
	stub := &stubMessages{resp: textMessage("```json\n" + analysisJSON + "\n```")}
	analyzer := newAnalyzer(stub, Config{Model: "claude-test"}, zap.NewNop())

	report, err := analyzer.Analyze(context.Background(), &ai.Posting{Text: "Care for patients."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.RiskCategory != metrics.RiskLow {
		t.Fatalf("unexpected risk category: %s", report.RiskCategory)
	}

	if string(stub.last.Model) != "claude-test" {
		t.Fatalf("unexpected model: %s", stub.last.Model)
	}
	if stub.last.MaxTokens != defaultMaxTokens {
		t.Fatalf("unexpected max tokens: %d", stub.last.MaxTokens)
	}
	if len(stub.last.System) != 1 || stub.last.System[0].Text != ai.SystemInstruction() {
		t.Fatalf("expected system instruction")
	}
	if len(stub.last.Messages) != 1 || len(stub.last.Messages[0].Content) != 1 {
		t.Fatalf("expected single text block: %+v", stub.last.Messages)
	}
}

func TestAnalyzerPDFDocumentBlock(t *testing.T) {
	stub := &stubMessages{resp: textMessage(analysisJSON)}
	analyzer := newAnalyzer(stub, Config{}, zap.NewNop())

	if _, err := analyzer.Analyze(context.Background(), &ai.Posting{PDF: []byte("%PDF-1.7")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := stub.last.Messages[0].Content
	if len(content) != 2 {
		t.Fatalf("expected document and text blocks, got %d", len(content))
	}
	if content[0].OfDocument == nil {
		t.Fatalf("expected document block first")
	}
	if analyzer.Model() != defaultModel {
		t.Fatalf("unexpected default model: %s", analyzer.Model())
	}
}

func TestAnalyzerErrors(t *testing.T) {
	stub := &stubMessages{err: errors.New("overloaded")}
	analyzer := newAnalyzer(stub, Config{}, zap.NewNop())
	if _, err := analyzer.Analyze(context.Background(), &ai.Posting{Text: "x"}); err == nil {
		t.Fatal("expected api error")
	}

	stub = &stubMessages{resp: textMessage()}
	analyzer = newAnalyzer(stub, Config{}, zap.NewNop())
	_, err := analyzer.Analyze(context.Background(), &ai.Posting{Text: "x"})
	if !errors.Is(err, ai.ErrEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(Config{APIKey: "  "}, zap.NewNop()); err == nil {
		t.Fatal("expected error without api key")
	}
}
