package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCreateTemplate() CreateTemplateRequest {
	return CreateTemplateRequest{
		Name:        "Modern Resume Template",
		Description: "A clean, modern resume layout.",
		Category:    TemplateCategoryResume,
		CreatorID:   "creator-1",
	}
}

func TestCreateTemplateRequest_Validate(t *testing.T) {
	req := validCreateTemplate()
	assert.NoError(t, req.Validate())
}

func TestCreateTemplateRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateTemplateRequest)
	}{
		{"empty name", func(r *CreateTemplateRequest) { r.Name = "  " }},
		{"long name", func(r *CreateTemplateRequest) { r.Name = strings.Repeat("x", 256) }},
		{"long description", func(r *CreateTemplateRequest) { r.Description = strings.Repeat("x", 2001) }},
		{"bad category", func(r *CreateTemplateRequest) { r.Category = "Poster" }},
		{"missing creator", func(r *CreateTemplateRequest) { r.CreatorID = "" }},
		{"too many tags", func(r *CreateTemplateRequest) { r.Tags = make([]string, 11) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateTemplate()
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestUpdateTemplateRequest_Validate(t *testing.T) {
	empty := ""
	bad := TemplateCategory("Poster")
	good := TemplateCategoryInvoice
	name := "Clean Invoice Layout"

	assert.NoError(t, (&UpdateTemplateRequest{}).Validate())
	assert.NoError(t, (&UpdateTemplateRequest{Name: &name, Category: &good}).Validate())
	assert.Error(t, (&UpdateTemplateRequest{Name: &empty}).Validate())
	assert.Error(t, (&UpdateTemplateRequest{Category: &bad}).Validate())
}

func TestParseTemplateCategory(t *testing.T) {
	tests := []struct {
		in   string
		want TemplateCategory
		ok   bool
	}{
		{"Resume", TemplateCategoryResume, true},
		{"resume", TemplateCategoryResume, true},
		{"INVOICE", TemplateCategoryInvoice, true},
		{" letter ", TemplateCategoryLetter, true},
		{"poster", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseTemplateCategory(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
