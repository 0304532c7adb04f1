package confluence

import (
	"context"
	"net/http"
	"net/url"

	"github.com/foomo/confluence-gateway/confluence/vo"
)

// Comment operations go through the v2 API, which addresses inline and footer
// comments per page and replies per comment.

func (c *client) InlineComments(ctx context.Context, pageID, bodyFormat string) (*vo.CommentList, error) {
	return c.listComments(ctx, "api/v2/pages/"+pageID+"/inline-comments", bodyFormat)
}

func (c *client) FooterComments(ctx context.Context, pageID, bodyFormat string) (*vo.CommentList, error) {
	return c.listComments(ctx, "api/v2/pages/"+pageID+"/footer-comments", bodyFormat)
}

func (c *client) listComments(ctx context.Context, endpoint, bodyFormat string) (*vo.CommentList, error) {
	var params url.Values
	if bodyFormat != "" {
		params = url.Values{}
		params.Set("body-format", bodyFormat)
	}
	var listing v2CommentListing
	if err := c.get(ctx, endpoint, params, &listing); err != nil {
		return nil, err
	}

	list := &vo.CommentList{Results: make([]vo.Comment, 0, len(listing.Results))}
	for _, entry := range listing.Results {
		list.Results = append(list.Results, commentFromEntry(entry))
	}
	list.Size = len(list.Results)
	return list, nil
}

func (c *client) ReplyInlineComment(ctx context.Context, commentID, body string) (*vo.Comment, error) {
	payload := replyCommentPayload{
		ParentCommentID: commentID,
		Body: v2CommentBody{Storage: &apiBodyValue{
			Value:          body,
			Representation: "storage",
		}},
	}
	var created v2Comment
	if err := c.request(ctx, http.MethodPost, "api/v2/inline-comments", nil, payload, &created); err != nil {
		return nil, err
	}
	comment := commentFromEntry(created)
	return &comment, nil
}

func (c *client) AddFooterComment(ctx context.Context, pageID, body string) (*vo.Comment, error) {
	payload := footerCommentPayload{
		PageID: pageID,
		Body: v2CommentBody{Storage: &apiBodyValue{
			Value:          body,
			Representation: "storage",
		}},
	}
	var created v2Comment
	if err := c.request(ctx, http.MethodPost, "api/v2/footer-comments", nil, payload, &created); err != nil {
		return nil, err
	}
	comment := commentFromEntry(created)
	return &comment, nil
}

func commentFromEntry(entry v2Comment) vo.Comment {
	comment := vo.Comment{
		ID:     entry.ID.String(),
		Status: entry.Status,
		Title:  entry.Title,
	}
	if entry.Body != nil && entry.Body.Storage != nil {
		comment.Body = entry.Body.Storage.Value
	}
	return comment
}
