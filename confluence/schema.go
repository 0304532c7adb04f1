package confluence

import "encoding/json"

// Typed wire schemas for the upstream endpoints we consume. Keeping these
// explicit (instead of decoding into maps) makes upstream contract drift a
// compile or decode error rather than a silent nil.

type apiLinks struct {
	Base  string `json:"base,omitempty"`
	WebUI string `json:"webui,omitempty"`
	Next  string `json:"next,omitempty"`
}

type apiUser struct {
	DisplayName string `json:"displayName"`
}

type apiVersion struct {
	Number       int      `json:"number"`
	FriendlyWhen string   `json:"friendlyWhen,omitempty"`
	By           *apiUser `json:"by,omitempty"`
}

type apiBodyValue struct {
	Value          string `json:"value"`
	Representation string `json:"representation,omitempty"`
}

type apiBody struct {
	Storage    *apiBodyValue `json:"storage,omitempty"`
	ExportView *apiBodyValue `json:"export_view,omitempty"`
}

type apiAncestor struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// apiContent is the shape of rest/api/content/{id} and of the content entries
// embedded in search and child listings.
type apiContent struct {
	ID        string        `json:"id"`
	Type      string        `json:"type,omitempty"`
	Title     string        `json:"title"`
	Body      *apiBody      `json:"body,omitempty"`
	Version   *apiVersion   `json:"version,omitempty"`
	Ancestors []apiAncestor `json:"ancestors,omitempty"`
	Links     apiLinks      `json:"_links"`
}

type searchEntry struct {
	Title                string      `json:"title"`
	URL                  string      `json:"url,omitempty"`
	Excerpt              string      `json:"excerpt,omitempty"`
	FriendlyLastModified string      `json:"friendlyLastModified,omitempty"`
	Content              *apiContent `json:"content,omitempty"`
}

// searchListing is one page of rest/api/search results.
type searchListing struct {
	Results []searchEntry `json:"results"`
	Size    int           `json:"size"`
	Limit   int           `json:"limit,omitempty"`
	Links   apiLinks      `json:"_links"`
}

type childListing struct {
	Results []apiContent `json:"results"`
	Links   apiLinks     `json:"_links"`
}

// v2 comment endpoints serialize ids as numbers or strings depending on the
// deployment, hence json.Number.
type v2CommentBody struct {
	Storage *apiBodyValue `json:"storage,omitempty"`
}

type v2Comment struct {
	ID     json.Number    `json:"id"`
	Status string         `json:"status,omitempty"`
	Title  string         `json:"title,omitempty"`
	Body   *v2CommentBody `json:"body,omitempty"`
}

type v2CommentListing struct {
	Results []v2Comment `json:"results"`
	Links   apiLinks    `json:"_links"`
}

// write payloads

type spaceRef struct {
	Key string `json:"key"`
}

type ancestorRef struct {
	ID string `json:"id"`
}

type versionRef struct {
	Number int `json:"number"`
}

type storagePayload struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

type bodyPayload struct {
	Storage storagePayload `json:"storage"`
}

type createPagePayload struct {
	Type      string        `json:"type"`
	Title     string        `json:"title"`
	Space     spaceRef      `json:"space"`
	Body      bodyPayload   `json:"body"`
	Ancestors []ancestorRef `json:"ancestors,omitempty"`
}

type updatePagePayload struct {
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	Title   string      `json:"title"`
	Version versionRef  `json:"version"`
	Body    bodyPayload `json:"body"`
}

type replyCommentPayload struct {
	ParentCommentID string        `json:"parentCommentId"`
	Body            v2CommentBody `json:"body"`
}

type footerCommentPayload struct {
	PageID string        `json:"pageId"`
	Body   v2CommentBody `json:"body"`
}
