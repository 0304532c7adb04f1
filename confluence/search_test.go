package confluence

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func searchPage(titles []string, next string) string {
	entries := make([]string, len(titles))
	for i, title := range titles {
		entries[i] = fmt.Sprintf(`{"title":%q,"url":"/display/DOCS/%s","content":{"id":"%d","title":%q}}`, title, title, i+1, title)
	}
	links := `{"base":"https://wiki.example.com"`
	if next != "" {
		links += fmt.Sprintf(`,"next":%q`, next)
	}
	links += `}`
	return fmt.Sprintf(`{"results":[%s],"size":%d,"_links":%s}`, strings.Join(entries, ","), len(titles), links)
}

func TestSearchFollowsRelativeNextLinks(t *testing.T) {
	var paths []string
	c := newTestClient(t, Settings{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.RequestURI())
		switch {
		case r.URL.Query().Get("cursor") == "page2":
			fmt.Fprint(w, searchPage([]string{"Third", "Fourth"}, ""))
		default:
			fmt.Fprint(w, searchPage([]string{"First", "Second"}, "/rest/api/search?cursor=page2"))
		}
	}))

	listing, err := c.search(context.Background(), "space=DOCS", searchOptions{batchSize: 2, limit: 10})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	require.Equal(t, "/rest/api/search?cursor=page2", paths[1])

	titles := make([]string, len(listing.Results))
	for i, entry := range listing.Results {
		titles[i] = entry.Title
	}
	require.Equal(t, []string{"First", "Second", "Third", "Fourth"}, titles)
	require.Equal(t, 4, listing.Size)
}

func TestSearchUsesAbsoluteNextLinkUnchanged(t *testing.T) {
	mux := http.NewServeMux()
	var nextURL string
	mux.HandleFunc("/rest/api/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchPage([]string{"First"}, nextURL))
	})
	var sawAbsolute bool
	mux.HandleFunc("/absolute/next", func(w http.ResponseWriter, r *http.Request) {
		sawAbsolute = true
		fmt.Fprint(w, searchPage([]string{"Second"}, ""))
	})

	c := newTestClient(t, Settings{}, mux)
	nextURL = c.settings.BaseURL + "absolute/next"

	listing, err := c.search(context.Background(), "space=DOCS", searchOptions{limit: 10})
	require.NoError(t, err)
	require.True(t, sawAbsolute)
	require.Equal(t, 2, listing.Size)
}

func TestSearchTruncatesToLimitWithoutFollowingNext(t *testing.T) {
	requests := 0
	titles := make([]string, 25)
	for i := range titles {
		titles[i] = fmt.Sprintf("Page %02d", i)
	}
	c := newTestClient(t, Settings{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		fmt.Fprint(w, searchPage(titles, "/rest/api/search?cursor=more"))
	}))

	listing, err := c.search(context.Background(), "space=DOCS and type=page", searchOptions{batchSize: 25, limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, requests, "the next link must not be followed once the limit is reached")
	require.Len(t, listing.Results, 10)
	require.Equal(t, 10, listing.Size)
	require.Equal(t, "Page 00", listing.Results[0].Title)
	require.Equal(t, "Page 09", listing.Results[9].Title)
}

func TestSearchEmptyResult(t *testing.T) {
	c := newTestClient(t, Settings{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchPage(nil, ""))
	}))

	listing, err := c.search(context.Background(), "space=EMPTY", searchOptions{})
	require.NoError(t, err)
	require.Empty(t, listing.Results)
	require.Equal(t, 0, listing.Size)
}

func TestSearchAbortsOnRepeatedNextLink(t *testing.T) {
	requests := 0
	c := newTestClient(t, Settings{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		// empty results page that keeps advertising the same next link
		fmt.Fprint(w, searchPage(nil, "/rest/api/search?cursor=stuck"))
	}))

	_, err := c.search(context.Background(), "space=DOCS", searchOptions{limit: 10})
	require.Error(t, err)
	require.Contains(t, err.Error(), "pagination")
	require.LessOrEqual(t, requests, maxSearchHops+1)
}

func TestSearchAbortsOnUpstreamFailure(t *testing.T) {
	c := newTestClient(t, Settings{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cursor") == "page2" {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, "upstream exploded")
			return
		}
		fmt.Fprint(w, searchPage([]string{"First"}, "/rest/api/search?cursor=page2"))
	}))

	_, err := c.search(context.Background(), "space=DOCS", searchOptions{limit: 10})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "upstream exploded", apiErr.Body)
}

func TestSearchMapsEntries(t *testing.T) {
	c := newTestClient(t, Settings{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"results":[{"title":"Guide","url":"/display/DOCS/Guide","friendlyLastModified":"yesterday","excerpt":"a guide","content":{"id":"123","title":"Guide"}}],
			"size":1,
			"_links":{"base":"https://wiki.example.com"}
		}`)
	}))

	result, err := c.Search(context.Background(), "space=DOCS", 0)
	require.NoError(t, err)
	require.Equal(t, 1, result.Size)
	item := result.Results[0]
	require.Equal(t, "123", item.ID)
	require.Equal(t, "Guide", item.Title)
	require.Equal(t, "https://wiki.example.com/display/DOCS/Guide", item.URL)
	require.Equal(t, "yesterday", item.LastModified)
	require.Equal(t, "a guide", item.Excerpt)
}
