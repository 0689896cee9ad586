package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxDocumentTitleLen = 255

// DocumentKind is the builder a document belongs to.
type DocumentKind string

const (
	DocumentKindResume  DocumentKind = "resume"
	DocumentKindInvoice DocumentKind = "invoice"
	DocumentKindLetter  DocumentKind = "letter"
)

// Valid reports whether the document kind is supported.
func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentKindResume, DocumentKindInvoice, DocumentKindLetter:
		return true
	default:
		return false
	}
}

// ParseDocumentKind normalizes a kind string and reports whether it is supported.
func ParseDocumentKind(value string) (DocumentKind, bool) {
	k := DocumentKind(strings.ToLower(strings.TrimSpace(value)))
	if k.Valid() {
		return k, true
	}
	return "", false
}

// Document is a user-owned builder document. Content is the builder's form
// state, stored as an opaque JSON payload; the server never interprets it.
type Document struct {
	ID        string          `json:"id"         db:"id"`
	UserID    string          `json:"user_id"    db:"user_id"`
	Title     string          `json:"title"      db:"title"`
	Kind      DocumentKind    `json:"kind"       db:"kind"`
	Content   json.RawMessage `json:"content"    db:"content"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// CreateDocumentRequest represents parameters to create a Document.
// UserID is filled from the session, never from the request body.
type CreateDocumentRequest struct {
	UserID  string          `json:"-"`
	Title   string          `json:"title"`
	Kind    DocumentKind    `json:"kind"`
	Content json.RawMessage `json:"content"`
}

// UpdateDocumentRequest represents parameters to update a Document.
type UpdateDocumentRequest struct {
	Title   *string         `json:"title,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// Validate validates CreateDocumentRequest.
func (r *CreateDocumentRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxDocumentTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if !r.Kind.Valid() {
		return errors.New("kind must be one of resume, invoice, letter")
	}
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	if len(r.Content) > 0 && !json.Valid(r.Content) {
		return errors.New("content must be valid JSON")
	}
	return nil
}

// Validate validates UpdateDocumentRequest.
func (r *UpdateDocumentRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(title) > maxDocumentTitleLen {
			return errors.New("title cannot exceed 255 characters")
		}
	}
	if len(r.Content) > 0 && !json.Valid(r.Content) {
		return errors.New("content must be valid JSON")
	}
	return nil
}
