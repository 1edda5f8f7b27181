package services

import "errors"

var (
	// ErrMissingField is returned by strict normalization when a required field is absent or unparsable
	ErrMissingField = errors.New("required field missing")
	// ErrUnknownSource is returned for data sources other than pgm, unimed and sqlite
	ErrUnknownSource = errors.New("unknown data source")
	// ErrRecordNotFound is returned when no record in the current collection has the id
	ErrRecordNotFound = errors.New("record not found")
	// ErrUnknownDocumentType is returned by document generators for unsupported types
	ErrUnknownDocumentType = errors.New("unknown document type")
)
