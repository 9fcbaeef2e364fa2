// Package posting acquires job postings from files, web pages, inline text or hh.ru.
package posting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/transferability/internal/ai"
	"github.com/spigell/transferability/internal/headhunter"
	"github.com/spigell/transferability/internal/utils"
)

const (
	userAgent = "spigell/transferability (spigelly@gmail.com)"
	// Postings are small. Anything bigger is not a job description.
	defaultMaxBodySize = 10 << 20
)

var (
	ErrNoSource       = errors.New("one of file, url, text or vacancy is required")
	ErrManySources    = errors.New("only one of file, url, text or vacancy can be set")
	ErrEmptyPosting   = errors.New("posting has no text")
	ErrNoHeadhunter   = errors.New("headhunter client is not configured")
	ErrTooLarge       = errors.New("posting is too large")
	errUnsupportedURL = errors.New("only http and https urls are supported")
)

// Ref points at a posting. Exactly one field must be set.
type Ref struct {
	File      string
	URL       string
	Text      string
	VacancyID string
}

func (r Ref) validate() error {
	set := 0
	for _, v := range []string{r.File, r.URL, r.Text, r.VacancyID} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}

	switch {
	case set == 0:
		return ErrNoSource
	case set > 1:
		return ErrManySources
	}
	return nil
}

type Loader struct {
	HH         *headhunter.Client
	HTTPClient *http.Client
	UserAgent  string
	// MaxBodySize caps downloaded pages. Bigger pages are rejected, not truncated.
	MaxBodySize int64
	logger      *zap.Logger
}

// NewLoader creates a loader. hh may be nil when vacancies are not used.
func NewLoader(hh *headhunter.Client, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		HH: hh,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		UserAgent:   userAgent,
		MaxBodySize: defaultMaxBodySize,
		logger:      logger,
	}
}

// Load resolves ref into a posting ready for analysis.
func (l *Loader) Load(ctx context.Context, ref Ref) (*ai.Posting, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}

	var (
		posting *ai.Posting
		err     error
	)

	switch {
	case strings.TrimSpace(ref.File) != "":
		posting, err = loadFile(strings.TrimSpace(ref.File))
	case strings.TrimSpace(ref.URL) != "":
		posting, err = l.loadURL(ctx, strings.TrimSpace(ref.URL))
	case strings.TrimSpace(ref.Text) != "":
		posting = &ai.Posting{Source: "inline text", Text: strings.TrimSpace(ref.Text)}
	default:
		posting, err = l.loadVacancy(strings.TrimSpace(ref.VacancyID))
	}
	if err != nil {
		return nil, err
	}

	if len(posting.PDF) == 0 && strings.TrimSpace(posting.Text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPosting, posting.Source)
	}

	l.logger.Debug("posting loaded",
		zap.String("source", posting.Source),
		zap.String("mime_type", posting.MimeType()),
		zap.Int("text_length", len(posting.Text)),
		zap.Int("pdf_size", len(posting.PDF)),
	)

	return posting, nil
}

func loadFile(path string) (*ai.Posting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read posting file: %w", err)
	}

	posting := &ai.Posting{
		Title:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Source: path,
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		posting.PDF = data
	case ".html", ".htm":
		posting.Text = utils.HTMLToText(string(data))
	default:
		posting.Text = strings.TrimSpace(string(data))
	}

	return posting, nil
}

func (l *Loader) loadURL(ctx context.Context, rawURL string) (*ai.Posting, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", errUnsupportedURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", l.UserAgent)

	l.logger.Debug("make request", zap.String("url", u.String()))

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch posting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch posting: bad status: %s", resp.Status)
	}

	limit := l.MaxBodySize
	if limit <= 0 {
		limit = defaultMaxBodySize
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read posting: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrTooLarge, u.String(), limit)
	}

	posting := &ai.Posting{Source: u.String()}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/pdf":
		posting.PDF = body
	case mediaType == "text/plain":
		posting.Text = strings.TrimSpace(string(body))
	default:
		posting.Text = utils.HTMLToText(string(body))
	}

	return posting, nil
}

func (l *Loader) loadVacancy(id string) (*ai.Posting, error) {
	if l.HH == nil {
		return nil, ErrNoHeadhunter
	}

	vacancy, err := l.HH.GetVacancy(id)
	if err != nil {
		return nil, err
	}

	return vacancy.Posting(), nil
}
