package vo

type Markdown string

// Page is the gateway's view of a Confluence page with its body converted
// to markdown. ParentPageID and ParentPageTitle are empty for root pages.
type Page struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Content         Markdown `json:"content"`
	URL             string   `json:"url"`
	LastModified    string   `json:"last_modified,omitempty"`
	ParentPageID    string   `json:"parent_page_id,omitempty"`
	ParentPageTitle string   `json:"parent_page_title,omitempty"`
	Modifier        string   `json:"modifier,omitempty"`
	Children        []Page   `json:"children,omitempty"` // populated on demand only
}

// PageRef identifies a page after a create or update without carrying its body.
type PageRef struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Version int    `json:"version,omitempty"`
}

type SearchItem struct {
	ID           string `json:"id,omitempty"`
	Title        string `json:"title"`
	URL          string `json:"url,omitempty"`
	Excerpt      string `json:"excerpt,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// SearchResult is the merged outcome of a paginated CQL search.
// Size always equals len(Results).
type SearchResult struct {
	Results []SearchItem `json:"results"`
	Size    int          `json:"size"`
}

// Comment is an inline or footer comment in storage representation.
type Comment struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body"`
}

type CommentList struct {
	Results []Comment `json:"results"`
	Size    int       `json:"size"`
}
