package source

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/textutil"
)

const openAlexBaseURL = "https://api.openalex.org/works"

// maxAbstractPositions bounds inverted-index reconstruction; an index
// claiming a larger position is treated as malformed.
const maxAbstractPositions = 20000

// OpenAlex searches the OpenAlex works API. OpenAlex stores abstracts as an
// inverted index (word -> positions) which must be reconstructed into text;
// records without a reconstructable abstract are skipped since the title
// alone is not enough context for judgment.
type OpenAlex struct {
	client  *Client
	baseURL string
}

// NewOpenAlex creates an OpenAlex adapter
func NewOpenAlex(client *Client) *OpenAlex {
	return &OpenAlex{client: client, baseURL: openAlexBaseURL}
}

// Name returns the adapter name
func (a *OpenAlex) Name() string {
	return "OpenAlex"
}

type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID                    string           `json:"id"`
	DisplayName           string           `json:"display_name"`
	DOI                   string           `json:"doi"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
	PrimaryLocation       *struct {
		Source *struct {
			URLForLandingPage string `json:"url_for_landing_page"`
		} `json:"source"`
	} `json:"primary_location"`
}

// Search queries OpenAlex and returns at most limit candidates
func (a *OpenAlex) Search(ctx context.Context, query string, limit int) ([]model.Candidate, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("per-page", strconv.Itoa(limit))

	var resp openAlexResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	var candidates []model.Candidate
	for _, work := range resp.Results {
		if len(candidates) >= limit {
			break
		}

		abstract := decodeInvertedAbstract(work.AbstractInvertedIndex)
		if abstract == "" {
			continue
		}

		candidates = append(candidates, model.Candidate{
			Title:    textutil.Clean(work.DisplayName),
			Abstract: abstract,
			URL:      a.workURL(work),
			Source:   a.Name(),
		})
	}

	return candidates, nil
}

// workURL builds the best available link: DOI, then landing page, then the
// OpenAlex id (itself a URL).
func (a *OpenAlex) workURL(work openAlexWork) string {
	if work.DOI != "" {
		return "https://doi.org/" + work.DOI
	}
	if work.PrimaryLocation != nil && work.PrimaryLocation.Source != nil &&
		work.PrimaryLocation.Source.URLForLandingPage != "" {
		return work.PrimaryLocation.Source.URLForLandingPage
	}
	return work.ID
}

// decodeInvertedAbstract rebuilds abstract text from an inverted index. Each
// word maps to the positions it occupies; emitting words in position order
// recovers the original sequence. Positions never assigned a word render as
// empty strings and are collapsed away by whitespace normalization. An empty
// or malformed index yields "".
func decodeInvertedAbstract(inv map[string][]int) string {
	if len(inv) == 0 {
		return ""
	}

	posToWord := make(map[int]string)
	maxPos := -1
	for word, positions := range inv {
		for _, pos := range positions {
			if pos < 0 || pos >= maxAbstractPositions {
				return ""
			}
			posToWord[pos] = word
			if pos > maxPos {
				maxPos = pos
			}
		}
	}
	if maxPos < 0 {
		return ""
	}

	words := make([]string, maxPos+1)
	for pos, word := range posToWord {
		words[pos] = word
	}

	return textutil.Clean(strings.Join(words, " "))
}
