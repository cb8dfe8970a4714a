package sickness

import "errors"

var (
	ErrDeclarationNotFound = errors.New("sickness declaration not found")
	ErrNotOwner            = errors.New("sickness declaration belongs to another user")
	ErrAdminCannotDeclare  = errors.New("admins cannot submit sickness declarations")
	ErrInvalidDateRange    = errors.New("end date must be on or after start date")
	ErrDocumentRequired    = errors.New("a PDF document is required")
	ErrDocumentNotPDF      = errors.New("only PDF documents are accepted")
	ErrDocumentTooLarge    = errors.New("document exceeds the maximum upload size")
	ErrDocumentMissing     = errors.New("declaration has no document attached")
	ErrEmailNotSent        = errors.New("notification email could not be sent")
)
