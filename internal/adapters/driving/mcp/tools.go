package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query   string `json:"query" jsonschema:"the search query; typos are tolerated"`
	Page    int    `json:"page,omitempty" jsonschema:"1-based result page (default 1)"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"results per page (default from configuration)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Outcome    string         `json:"outcome"`
	Words      []string       `json:"words"`
	Total      int            `json:"total"`
	Strict     int            `json:"strict"`
	Loose      int            `json:"loose"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Results    []ResultOutput `json:"results"`
	Pager      PaginateOutput `json:"pager"`
}

// ResultOutput represents a single ranked record.
type ResultOutput struct {
	ID             string            `json:"id"`
	Tier           string            `json:"tier"`
	Score          float64           `json:"score"`
	FullMatch      bool              `json:"full_match"`
	MatchedCount   int               `json:"matched_count"`
	MatchedInTitle bool              `json:"matched_in_title"`
	Fields         map[string]string `json:"fields"`
	Excerpt        string            `json:"excerpt,omitempty"`
}

// PaginateInput is the input schema for the paginate tool.
type PaginateInput struct {
	Current int `json:"current" jsonschema:"the current 1-based page"`
	Total   int `json:"total" jsonschema:"the total number of pages"`
}

// PaginateOutput is the output schema for the paginate tool.
type PaginateOutput struct {
	Entries []PageOutput `json:"entries"`
	Next    bool         `json:"next"`
	Prev    bool         `json:"prev"`
}

// PageOutput is one pager entry: a page number or an ellipsis.
type PageOutput struct {
	Kind    string `json:"kind"`
	Page    int    `json:"page,omitempty"`
	Current bool   `json:"current,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Fuzzy search over all records, ranked by how many query words match",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "paginate",
		Description: "Compute the compact page-button layout for a page out of a total",
	}, s.handlePaginate)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{Page: input.Page, PerPage: input.PerPage}
	resp, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("search: %w", err)
	}

	marker := s.ports.marker()
	output := SearchOutput{
		Outcome:    resp.Outcome.String(),
		Words:      resp.Words,
		Total:      resp.Total,
		Strict:     resp.Strict,
		Loose:      resp.Loose,
		Page:       resp.Page,
		TotalPages: resp.TotalPages,
		Results:    make([]ResultOutput, len(resp.Hits)),
		Pager:      layoutOutput(resp.Layout),
	}
	if output.Words == nil {
		output.Words = []string{}
	}

	for i, hit := range resp.Hits {
		fields := make(map[string]string, len(hit.Fields))
		for name, text := range hit.Fields {
			fields[name] = text.Render(marker)
		}
		output.Results[i] = ResultOutput{
			ID:             hit.Record.ID,
			Tier:           string(hit.Tier),
			Score:          hit.AverageScore,
			FullMatch:      hit.FullMatch,
			MatchedCount:   hit.MatchedCount,
			MatchedInTitle: hit.MatchedInTitle,
			Fields:         fields,
		}
		if hit.Excerpt != nil {
			output.Results[i].Excerpt = hit.Excerpt.Render(marker)
		}
	}

	return nil, output, nil
}

// handlePaginate handles the paginate tool invocation.
func (s *Server) handlePaginate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PaginateInput,
) (*mcp.CallToolResult, PaginateOutput, error) {
	if input.Total < 0 {
		return nil, PaginateOutput{}, fmt.Errorf("total must not be negative: %w", domain.ErrInvalidInput)
	}
	return nil, layoutOutput(s.ports.Search.Layout(input.Current, input.Total)), nil
}

func layoutOutput(layout domain.PageLayout) PaginateOutput {
	out := PaginateOutput{
		Entries: make([]PageOutput, len(layout.Entries)),
		Next:    layout.NextVisible,
		Prev:    layout.PrevVisible,
	}
	for i, e := range layout.Entries {
		out.Entries[i] = PageOutput{Kind: string(e.Kind), Page: e.Value, Current: e.Current}
	}
	return out
}
