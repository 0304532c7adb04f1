package server

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Inbound request payloads. Validation runs before any upstream call.

type PageCreate struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`
}

func (p PageCreate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Content, validation.Required),
	)
}

type PageUpdate struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

func (p PageUpdate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.When(p.Content == "").Error("either title or content must be set")),
	)
}

type CommentCreate struct {
	Body string `json:"body"`
}

func (c CommentCreate) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Body, validation.Required),
	)
}

type DeleteResponse struct {
	Status string `json:"status"`
}
