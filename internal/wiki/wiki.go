// Package wiki fetches a short descriptive summary for a city from the
// Wikipedia REST API. It is strictly cosmetic enrichment: every failure
// degrades to a locally synthesized description built from the city record
// itself, so callers never see an error and game flow is never blocked.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cartopolis/api/internal/catalog"
)

// Fact is the descriptive text shown after a round is decided.
type Fact struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	URL     string `json:"url,omitempty"`
}

type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// summaryResponse mirrors the fields we use from
// /api/rest_v1/page/summary/{title}.
type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Summary returns Wikipedia's summary for the city, or the synthesized
// fallback on any failure (network, non-200, decode, empty extract).
func (c *Client) Summary(ctx context.Context, city catalog.City) Fact {
	u := c.baseURL + "/api/rest_v1/page/summary/" + url.PathEscape(city.Name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Fallback(city)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("wikipedia fetch failed", "city", city.Name, "error", err)
		return Fallback(city)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("wikipedia fetch failed", "city", city.Name, "status", resp.StatusCode)
		return Fallback(city)
	}

	var sum summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		c.logger.Debug("wikipedia decode failed", "city", city.Name, "error", err)
		return Fallback(city)
	}
	if sum.Extract == "" {
		return Fallback(city)
	}

	fact := Fact{Title: sum.Title, Extract: sum.Extract, URL: sum.ContentURLs.Desktop.Page}
	if fact.Title == "" {
		fact.Title = city.Name
	}
	return fact
}

// Fallback builds a description from the city record's own fields.
func Fallback(city catalog.City) Fact {
	return Fact{
		Title: city.Name,
		Extract: fmt.Sprintf(
			"%s is a major city in %s, located in %s. With a population of approximately %s, it's one of the significant urban centers in the region.",
			city.Name, city.Country, city.Continent, formatPopulation(city.Population),
		),
	}
}

// formatPopulation groups digits in threes: 8336000 -> "8,336,000".
func formatPopulation(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return string(out)
}
