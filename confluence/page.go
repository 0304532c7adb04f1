package confluence

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/foomo/confluence-gateway/confluence/vo"
	"github.com/foomo/confluence-gateway/convert"
)

const (
	listPagesLimit = 1000

	// maxChildDepth bounds recursive child fetching, levels below it are not
	// descended into.
	maxChildDepth = 25
)

// getContent fetches a page with its storage body and version, used by the
// update path.
func (c *client) getContent(ctx context.Context, pageID string) (*apiContent, error) {
	params := url.Values{}
	params.Set("expand", "body.storage,version")
	var content apiContent
	if err := c.get(ctx, "rest/api/content/"+pageID, params, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// pageFromContent maps an upstream content record onto a vo.Page, converting
// the export view body to markdown. base is the upstream's webui base URL.
func pageFromContent(content *apiContent, base string) (*vo.Page, error) {
	page := &vo.Page{
		ID:    content.ID,
		Title: content.Title,
		URL:   base + content.Links.WebUI,
	}
	if content.Body != nil && content.Body.ExportView != nil {
		markdown, err := convert.ToMarkdown(content.Body.ExportView.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to convert page %s: %w", content.ID, err)
		}
		page.Content = markdown
	}
	if content.Version != nil {
		page.LastModified = content.Version.FriendlyWhen
	}
	if len(content.Ancestors) > 0 {
		parent := content.Ancestors[len(content.Ancestors)-1]
		page.ParentPageID = parent.ID
		page.ParentPageTitle = parent.Title
	}
	return page, nil
}

func (c *client) GetPageSummary(ctx context.Context, pageID string, includeChildren bool) (*vo.Page, error) {
	params := url.Values{}
	params.Set("expand", "body.export_view,ancestors,version")
	var content apiContent
	if err := c.get(ctx, "rest/api/content/"+pageID, params, &content); err != nil {
		return nil, err
	}

	page, err := pageFromContent(&content, content.Links.Base)
	if err != nil {
		return nil, err
	}
	if content.Version != nil && content.Version.By != nil {
		page.Modifier = content.Version.By.DisplayName
	}
	if includeChildren {
		children, err := c.childrenRecursive(ctx, pageID, 0)
		if err != nil {
			return nil, err
		}
		page.Children = children
	}
	return page, nil
}

func (c *client) childrenRecursive(ctx context.Context, pageID string, depth int) ([]vo.Page, error) {
	if depth >= maxChildDepth {
		return nil, nil
	}
	params := url.Values{}
	params.Set("expand", "body.export_view,ancestors,version")
	var listing childListing
	if err := c.get(ctx, "rest/api/content/"+pageID+"/child/page", params, &listing); err != nil {
		return nil, err
	}

	var children []vo.Page
	for i := range listing.Results {
		child, err := pageFromContent(&listing.Results[i], listing.Links.Base)
		if err != nil {
			return nil, err
		}
		descendants, err := c.childrenRecursive(ctx, child.ID, depth+1)
		if err != nil {
			return nil, err
		}
		child.Children = descendants
		children = append(children, *child)
	}
	return children, nil
}

func (c *client) ListPages(ctx context.Context) ([]vo.Page, error) {
	cql := fmt.Sprintf("space=%s and type=page", c.settings.SpaceKey)
	if c.settings.ScopeRoot != "" {
		cql += fmt.Sprintf(" and ancestor=%s", c.settings.ScopeRoot)
	}
	listing, err := c.search(ctx, cql, searchOptions{
		limit:  listPagesLimit,
		expand: []string{"title", "url", "content.body.export_view", "content.ancestors"},
	})
	if err != nil {
		return nil, err
	}

	pages := make([]vo.Page, 0, len(listing.Results))
	for _, entry := range listing.Results {
		// entries without an expanded content record cannot be mapped
		if entry.Title == "" || entry.Content == nil {
			continue
		}
		page, err := pageFromContent(entry.Content, listing.Links.Base)
		if err != nil {
			return nil, err
		}
		page.Title = entry.Title
		page.URL = listing.Links.Base + entry.URL
		page.LastModified = entry.FriendlyLastModified
		pages = append(pages, *page)
	}
	return pages, nil
}

func (c *client) CreatePage(ctx context.Context, title, content, parentID string) (*vo.PageRef, error) {
	if parentID == "" {
		parentID = c.settings.ScopeRoot
	}
	if c.settings.ScopeRoot != "" {
		if err := c.ensureAllowed(ctx, parentID); err != nil {
			return nil, err
		}
	}

	payload := createPagePayload{
		Type:  "page",
		Title: title,
		Space: spaceRef{Key: c.settings.SpaceKey},
		Body: bodyPayload{Storage: storagePayload{
			Value:          content,
			Representation: "storage",
		}},
	}
	if parentID != "" {
		payload.Ancestors = []ancestorRef{{ID: parentID}}
	}

	var created apiContent
	if err := c.request(ctx, http.MethodPost, "rest/api/content", nil, payload, &created); err != nil {
		return nil, err
	}
	return pageRefFromContent(&created), nil
}

func (c *client) UpdatePage(ctx context.Context, pageID, title, content string) (*vo.PageRef, error) {
	if err := c.ensureAllowed(ctx, pageID); err != nil {
		return nil, err
	}

	current, err := c.getContent(ctx, pageID)
	if err != nil {
		return nil, err
	}
	version := 1
	if current.Version != nil {
		version = current.Version.Number
	}
	if title == "" {
		title = current.Title
	}
	if content == "" && current.Body != nil && current.Body.Storage != nil {
		content = current.Body.Storage.Value
	}

	payload := updatePagePayload{
		ID:      pageID,
		Type:    "page",
		Title:   title,
		Version: versionRef{Number: version + 1},
		Body: bodyPayload{Storage: storagePayload{
			Value:          content,
			Representation: "storage",
		}},
	}

	var updated apiContent
	if err := c.request(ctx, http.MethodPut, "rest/api/content/"+pageID, nil, payload, &updated); err != nil {
		return nil, err
	}
	return pageRefFromContent(&updated), nil
}

func (c *client) DeletePage(ctx context.Context, pageID string) error {
	if err := c.ensureAllowed(ctx, pageID); err != nil {
		return err
	}
	return c.request(ctx, http.MethodDelete, "rest/api/content/"+pageID, nil, nil, nil)
}

func pageRefFromContent(content *apiContent) *vo.PageRef {
	ref := &vo.PageRef{
		ID:    content.ID,
		Title: content.Title,
	}
	if content.Links.WebUI != "" {
		ref.URL = strings.TrimSuffix(content.Links.Base, "/") + content.Links.WebUI
	}
	if content.Version != nil {
		ref.Version = content.Version.Number
	}
	return ref
}
