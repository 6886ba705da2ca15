package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/tmc/langchaingo/tools"
)

var (
	_ output.ToolPort = (*AttractionsTool)(nil)
	_ tools.Tool      = (*AttractionsTool)(nil)
)

const (
	DefaultAttractionResults = 8
	noResultsMessage         = "No good search results were found"
)

// AttractionsTool forwards the destination to the search provider as-is.
// The "top attractions" intent lives in the description, not in the query.
type AttractionsTool struct {
	search output.SearchPort
	logger output.LoggerPort
	limit  int
}

func NewAttractionsTool(search output.SearchPort, logger output.LoggerPort, limit int) *AttractionsTool {
	if limit <= 0 {
		limit = DefaultAttractionResults
	}
	return &AttractionsTool{search: search, logger: logger, limit: limit}
}

func (t *AttractionsTool) Name() string { return entity.ToolSearchAttractions.String() }

func (t *AttractionsTool) Description() string {
	return "Searches the web (DuckDuckGo) for top attractions in a city. " +
		"Input should be the destination name, e.g., 'Paris' or 'Tokyo'. " +
		fmt.Sprintf("Returns up to %d results with title, snippet, and link.", t.limit)
}

func (t *AttractionsTool) Parameters() *jsonschema.Schema {
	return destinationSchema("Destination name, e.g. Paris or Tokyo")
}

func (t *AttractionsTool) Call(ctx context.Context, input string) (string, error) {
	return t.Invoke(ctx, input).Output, nil
}

func (t *AttractionsTool) Invoke(ctx context.Context, input string) entity.ToolResult {
	start := time.Now()
	destination := parseDestination(input)
	if destination == "" {
		return entity.Failure(entity.ToolSearchAttractions, input, entity.ToolError{
			Kind:    entity.ToolErrorInvalidInput,
			Message: "destination must not be empty",
		}).WithTiming(start)
	}

	results, err := t.search.Search(ctx, destination, t.limit)
	if err != nil {
		t.logger.Warn("Attraction search failed", "destination", destination, "error", err)
		return entity.Failure(entity.ToolSearchAttractions, destination, entity.ToolError{
			Kind:    entity.ToolErrorUnexpected,
			Message: err.Error(),
		}).WithTiming(start)
	}
	if len(results) > t.limit {
		results = results[:t.limit]
	}

	result := entity.Success(entity.ToolSearchAttractions, destination, FormatResults(results))
	result.Attractions = results
	return result.WithTiming(start)
}

// FormatResults renders results as Title/Snippet/Link blocks separated by blank lines.
func FormatResults(results []entity.SearchResult) string {
	if len(results) == 0 {
		return noResultsMessage
	}
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Title: %s\nSnippet: %s\nLink: %s\n", r.Title, r.Snippet, r.Link)
	}
	return sb.String()
}
