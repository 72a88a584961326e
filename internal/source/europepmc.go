package source

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/textutil"
)

const europePMCBaseURL = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

// EuropePMC searches the Europe PMC REST API for biomedical papers
type EuropePMC struct {
	client  *Client
	baseURL string
}

// NewEuropePMC creates a Europe PMC adapter
func NewEuropePMC(client *Client) *EuropePMC {
	return &EuropePMC{client: client, baseURL: europePMCBaseURL}
}

// Name returns the adapter name
func (a *EuropePMC) Name() string {
	return "EuropePMC"
}

type europePMCResponse struct {
	ResultList struct {
		Result []europePMCResult `json:"result"`
	} `json:"resultList"`
}

type europePMCResult struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Title        string `json:"title"`
	AbstractText string `json:"abstractText"`
	Description  string `json:"description"`
}

// Search queries Europe PMC and returns at most limit candidates
func (a *EuropePMC) Search(ctx context.Context, query string, limit int) ([]model.Candidate, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")
	params.Set("pageSize", strconv.Itoa(limit))

	var resp europePMCResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	var candidates []model.Candidate
	for _, item := range resp.ResultList.Result {
		if len(candidates) >= limit {
			break
		}

		title := textutil.Clean(item.Title)
		abstract := textutil.Clean(item.AbstractText)
		if abstract == "" {
			abstract = textutil.Clean(item.Description)
		}
		if title == "" && abstract == "" {
			continue
		}

		// Europe PMC articles are addressable by (source, id)
		var link string
		if item.Source != "" && item.ID != "" {
			link = fmt.Sprintf("https://europepmc.org/article/%s/%s", item.Source, item.ID)
		}

		candidates = append(candidates, model.Candidate{
			Title:    title,
			Abstract: abstract,
			URL:      link,
			Source:   a.Name(),
		})
	}

	return candidates, nil
}
