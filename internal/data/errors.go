package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrTemplateNotFound is returned when a template is not found.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrTemplateNameExists is returned when a creator already has a template with the same name.
	ErrTemplateNameExists = errors.New("template name already exists for this creator")

	// ErrDocumentNotFound is returned when a document is not found.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrApplicationNotFound is returned when a creator application is not found.
	ErrApplicationNotFound = errors.New("creator application not found")
	// ErrApplicationExists is returned when the user already has a creator application.
	ErrApplicationExists = errors.New("creator application already exists for this user")
)
