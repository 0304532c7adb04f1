package confluence

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/foomo/confluence-gateway/confluence/vo"
)

const (
	defaultBatchSize   = 25
	defaultSearchLimit = 100

	// maxSearchHops bounds how many next links the accumulator follows. An
	// upstream that keeps returning the same next link with an empty results
	// page would otherwise loop forever.
	maxSearchHops = 50
)

type searchOptions struct {
	batchSize int
	limit     int
	expand    []string
}

// search runs a CQL query and follows next links until either the limit is
// reached or the upstream stops paginating. Results keep upstream order and
// are truncated to exactly the limit; the merged listing's size always equals
// the length of its results.
func (c *client) search(ctx context.Context, cql string, opts searchOptions) (*searchListing, error) {
	if opts.batchSize <= 0 {
		opts.batchSize = defaultBatchSize
	}
	if opts.limit <= 0 {
		opts.limit = defaultSearchLimit
	}

	params := url.Values{}
	params.Set("cql", cql)
	params.Set("limit", strconv.Itoa(min(opts.batchSize, opts.limit)))
	if len(opts.expand) > 0 {
		params.Set("expand", strings.Join(opts.expand, ","))
	}

	var page searchListing
	if err := c.get(ctx, "rest/api/search", params, &page); err != nil {
		return nil, err
	}

	merged := page
	results := page.Results

	for hop := 0; page.Links.Next != "" && len(results) < opts.limit; hop++ {
		if hop >= maxSearchHops {
			return nil, fmt.Errorf("aborting search pagination after %d pages, upstream keeps returning a next link", maxSearchHops)
		}
		next := c.resolveNextLink(page.Links.Next)
		page = searchListing{}
		if err := c.get(ctx, next, nil, &page); err != nil {
			return nil, err
		}
		results = append(results, page.Results...)
	}

	if len(results) > opts.limit {
		results = results[:opts.limit]
	}
	merged.Results = results
	merged.Size = len(results)
	return &merged, nil
}

// resolveNextLink rewrites a relative next link against the configured base
// URL. Absolute links are used unchanged.
func (c *client) resolveNextLink(next string) string {
	if strings.HasPrefix(next, "/") {
		return strings.TrimSuffix(c.settings.BaseURL, "/") + next
	}
	return next
}

// Search exposes raw CQL search over the accumulator.
func (c *client) Search(ctx context.Context, cql string, limit int) (*vo.SearchResult, error) {
	listing, err := c.search(ctx, cql, searchOptions{limit: limit})
	if err != nil {
		return nil, err
	}

	result := &vo.SearchResult{Results: make([]vo.SearchItem, 0, len(listing.Results))}
	for _, entry := range listing.Results {
		item := vo.SearchItem{
			Title:        entry.Title,
			Excerpt:      entry.Excerpt,
			LastModified: entry.FriendlyLastModified,
			URL:          entry.URL,
		}
		if entry.Content != nil {
			item.ID = entry.Content.ID
		}
		if entry.URL != "" && listing.Links.Base != "" {
			item.URL = listing.Links.Base + entry.URL
		}
		result.Results = append(result.Results, item)
	}
	result.Size = len(result.Results)
	return result, nil
}
