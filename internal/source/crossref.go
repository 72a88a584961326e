package source

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/textutil"
)

const crossrefBaseURL = "https://api.crossref.org/works"

// Crossref searches the Crossref works API for broad literature coverage.
// Crossref abstracts arrive as JATS fragments; textutil.Clean strips them.
type Crossref struct {
	client  *Client
	baseURL string
}

// NewCrossref creates a Crossref adapter
func NewCrossref(client *Client) *Crossref {
	return &Crossref{client: client, baseURL: crossrefBaseURL}
}

// Name returns the adapter name
func (a *Crossref) Name() string {
	return "Crossref"
}

type crossrefResponse struct {
	Message struct {
		Items []crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefItem struct {
	Title    []string `json:"title"` // Crossref titles are arrays
	Abstract string   `json:"abstract"`
	URL      string   `json:"URL"`
}

// Search queries Crossref and returns at most limit candidates
func (a *Crossref) Search(ctx context.Context, query string, limit int) ([]model.Candidate, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("rows", strconv.Itoa(limit))

	var resp crossrefResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	var candidates []model.Candidate
	for _, item := range resp.Message.Items {
		if len(candidates) >= limit {
			break
		}

		var title string
		if len(item.Title) > 0 {
			title = textutil.Clean(item.Title[0])
		}
		abstract := textutil.Clean(item.Abstract)
		if title == "" && abstract == "" {
			continue
		}

		candidates = append(candidates, model.Candidate{
			Title:    title,
			Abstract: abstract,
			URL:      item.URL,
			Source:   a.Name(),
		})
	}

	return candidates, nil
}
