package headhunter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	SearchPath = "/vacancies"
)

type SearchParams struct {
	Text     string `mapstructure:"text"`
	Areas    []int  `mapstructure:"areas"`
	PerPage  string `mapstructure:"per-page"`
	MaxPages int    `mapstructure:"max-pages"`
}

func (c *Client) search(params *SearchParams) (*Vacancies, error) {
	if params == nil || strings.TrimSpace(params.Text) == "" {
		return nil, fmt.Errorf("search text is required")
	}

	// Set per_page max as possible. It should be faster.
	if params.PerPage == "" {
		params.PerPage = perPage
	}

	apiURLSearch := fmt.Sprintf("%s%s", c.APIURL, SearchPath)

	items, err := c.GetItems(apiURLSearch, buildParams(params), params.MaxPages)
	if err != nil {
		return nil, err
	}

	var vacancies []*Vacancy
	cfg := &mapstructure.DecoderConfig{
		Result:  &vacancies,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode vacancies: %w", err)
	}

	return &Vacancies{
		Items: vacancies,
	}, nil
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	q.Set("text", strings.TrimSpace(params.Text))
	q.Set("per_page", params.PerPage)
	for _, area := range params.Areas {
		q.Add("area", strconv.Itoa(area))
	}
	return q
}
