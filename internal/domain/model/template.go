package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTemplateNameLen = 255
	maxTemplateDescLen = 2000
	maxTemplateTags    = 10
)

// TemplateCategory is the marketplace category of a template.
type TemplateCategory string

const (
	TemplateCategoryResume   TemplateCategory = "Resume"
	TemplateCategoryInvoice  TemplateCategory = "Invoice"
	TemplateCategoryLetter   TemplateCategory = "Letter"
	TemplateCategoryProposal TemplateCategory = "Proposal"
	TemplateCategoryContract TemplateCategory = "Contract"
)

// Valid reports whether the category is one of the supported values.
func (c TemplateCategory) Valid() bool {
	switch c {
	case TemplateCategoryResume, TemplateCategoryInvoice, TemplateCategoryLetter,
		TemplateCategoryProposal, TemplateCategoryContract:
		return true
	default:
		return false
	}
}

// ParseTemplateCategory normalizes a category string (title case, trimmed)
// and reports whether it is supported.
func ParseTemplateCategory(value string) (TemplateCategory, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", false
	}
	c := TemplateCategory(strings.ToUpper(v[:1]) + strings.ToLower(v[1:]))
	if c.Valid() {
		return c, true
	}
	return "", false
}

// Template represents a marketplace template listing.
type Template struct {
	ID              string           `json:"id"                       db:"id"`
	Name            string           `json:"name"                     db:"name"`
	Description     string           `json:"description"              db:"description"`
	Category        TemplateCategory `json:"category"                 db:"category"`
	PreviewImage    *string          `json:"preview_image,omitempty"  db:"preview_image"`
	CreatorID       string           `json:"creator_id"               db:"creator_id"`
	CreatorName     *string          `json:"creator_name,omitempty"   db:"creator_name"`
	AverageRating   float64          `json:"average_rating"           db:"average_rating"`
	NumberOfRatings int              `json:"number_of_ratings"        db:"number_of_ratings"`
	Downloads       int              `json:"downloads"                db:"downloads"`
	Tags            []string         `json:"tags,omitempty"           db:"tags"`
	CreatedAt       time.Time        `json:"created_at"               db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"               db:"updated_at"`
}

// TemplatesListOptions controls paging and filtering for listing templates.
// Q matches name and description via ILIKE substring; Category and
// CreatorID match exactly.
type TemplatesListOptions struct {
	Limit     int
	Offset    int
	Q         *string
	Category  *TemplateCategory
	CreatorID *string
}

// CreateTemplateRequest represents parameters to create a Template.
type CreateTemplateRequest struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     TemplateCategory `json:"category"`
	PreviewImage *string          `json:"preview_image,omitempty"`
	CreatorID    string           `json:"creator_id"`
	CreatorName  *string          `json:"creator_name,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
}

// UpdateTemplateRequest represents parameters to update a Template.
type UpdateTemplateRequest struct {
	Name         *string           `json:"name,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Category     *TemplateCategory `json:"category,omitempty"`
	PreviewImage *string           `json:"preview_image,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
}

// Validate validates CreateTemplateRequest.
func (r *CreateTemplateRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxTemplateNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if utf8.RuneCountInString(r.Description) > maxTemplateDescLen {
		return errors.New("description cannot exceed 2000 characters")
	}
	if !r.Category.Valid() {
		return errors.New("category must be one of Resume, Invoice, Letter, Proposal, Contract")
	}
	if strings.TrimSpace(r.CreatorID) == "" {
		return errors.New("creator_id is required")
	}
	if len(r.Tags) > maxTemplateTags {
		return errors.New("at most 10 tags are allowed")
	}
	return nil
}

// Validate validates UpdateTemplateRequest.
func (r *UpdateTemplateRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxTemplateNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > maxTemplateDescLen {
		return errors.New("description cannot exceed 2000 characters")
	}
	if r.Category != nil && !r.Category.Valid() {
		return errors.New("category must be one of Resume, Invoice, Letter, Proposal, Contract")
	}
	if len(r.Tags) > maxTemplateTags {
		return errors.New("at most 10 tags are allowed")
	}
	return nil
}
