package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/textutil"
)

const arxivBaseURL = "http://export.arxiv.org/api/query"

// Arxiv searches the arXiv export API. Unlike the other sources this one
// speaks Atom XML rather than JSON.
type Arxiv struct {
	client  *Client
	baseURL string
}

// NewArxiv creates an arXiv adapter
func NewArxiv(client *Client) *Arxiv {
	return &Arxiv{client: client, baseURL: arxivBaseURL}
}

// Name returns the adapter name
func (a *Arxiv) Name() string {
	return "arXiv"
}

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
	ID      string `xml:"id"` // The entry id is the abs page URL
}

// Search queries arXiv across all fields and returns at most limit candidates
func (a *Arxiv) Search(ctx context.Context, query string, limit int) ([]model.Candidate, error) {
	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(limit))

	body, err := a.client.Get(ctx, a.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decode Atom feed: %w", err)
	}

	var candidates []model.Candidate
	for _, entry := range feed.Entries {
		if len(candidates) >= limit {
			break
		}

		title := textutil.Clean(entry.Title)
		abstract := textutil.Clean(entry.Summary)
		if title == "" && abstract == "" {
			continue
		}

		candidates = append(candidates, model.Candidate{
			Title:    title,
			Abstract: abstract,
			URL:      strings.TrimSpace(entry.ID),
			Source:   a.Name(),
		})
	}

	return candidates, nil
}
