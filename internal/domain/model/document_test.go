package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDocumentKind(t *testing.T) {
	kind, ok := ParseDocumentKind(" Resume ")
	assert.True(t, ok)
	assert.Equal(t, DocumentKindResume, kind)

	_, ok = ParseDocumentKind("spreadsheet")
	assert.False(t, ok)
}

func TestCreateDocumentRequest_Validate(t *testing.T) {
	req := CreateDocumentRequest{
		UserID:  "user-1",
		Title:   "My Resume",
		Kind:    DocumentKindResume,
		Content: json.RawMessage(`{"sections":[]}`),
	}
	assert.NoError(t, req.Validate())

	req.Content = json.RawMessage(`{not json`)
	assert.Error(t, req.Validate())

	req.Content = nil
	req.Kind = "spreadsheet"
	assert.Error(t, req.Validate())

	req.Kind = DocumentKindInvoice
	req.UserID = ""
	assert.Error(t, req.Validate())

	req.UserID = "user-1"
	req.Title = ""
	assert.Error(t, req.Validate())
}

func TestUpdateDocumentRequest_Validate(t *testing.T) {
	title := "Updated"
	assert.NoError(t, (&UpdateDocumentRequest{Title: &title}).Validate())
	assert.NoError(t, (&UpdateDocumentRequest{}).Validate())

	empty := "  "
	assert.Error(t, (&UpdateDocumentRequest{Title: &empty}).Validate())
	assert.Error(t, (&UpdateDocumentRequest{Content: json.RawMessage(`{`)}).Validate())
}

func TestSubmitCreatorApplicationRequest_Validate(t *testing.T) {
	urlOK := "https://portfolio.example.com/work"
	urlBad := "not-a-url"

	assert.NoError(t, (&SubmitCreatorApplicationRequest{UserID: "u1"}).Validate())
	assert.NoError(t, (&SubmitCreatorApplicationRequest{UserID: "u1", PortfolioURL: &urlOK}).Validate())
	assert.Error(t, (&SubmitCreatorApplicationRequest{PortfolioURL: &urlOK}).Validate())
	assert.Error(t, (&SubmitCreatorApplicationRequest{UserID: "u1", PortfolioURL: &urlBad}).Validate())
	assert.Error(t, (&SubmitCreatorApplicationRequest{UserID: "u1", Specialties: make([]string, 6)}).Validate())
}
