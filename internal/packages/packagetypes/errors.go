package packagetypes

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// ConfigurationError is returned when required package options are missing or blank.
// It is always raised before any I/O happens.
type ConfigurationError struct {
	Errors field.ErrorList
}

func (e *ConfigurationError) Error() string {
	return "invalid package options: " + e.Errors.ToAggregate().Error()
}

// DecodeReason describes in short why an input could not be decoded.
type DecodeReason string

// Predefined decode reasons.
const (
	DecodeReasonSyntax               DecodeReason = "invalid syntax"
	DecodeReasonMissingPrimaryType   DecodeReason = "missing jcr:primaryType"
	DecodeReasonUnsupportedValue     DecodeReason = "unsupported property value"
	DecodeReasonUnknownType          DecodeReason = "unknown property type"
	DecodeReasonInvalidOptions       DecodeReason = "invalid options"
	DecodeReasonUnknownNamespace     DecodeReason = "unknown namespace prefix"
	DecodeReasonInvalidDocument      DecodeReason = "invalid document"
	DecodeReasonInvalidModel         DecodeReason = "invalid model"
	DecodeReasonUnsupportedExtension DecodeReason = "unsupported file extension"
)

// DecodeError is returned when an input document is malformed.
type DecodeError struct {
	Reason DecodeReason
	// Path of the offending node or property within the document, e.g. "jcr:content/title".
	Path    string
	Details string
	Err     error
}

func (e *DecodeError) Error() string {
	msg := string(e.Reason)
	if e.Path != "" {
		msg += fmt.Sprintf(" at %s", e.Path)
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ResourceNotFoundError is returned when a referenced resource can not be resolved.
type ResourceNotFoundError struct {
	Locator string
	Err     error
}

func (e *ResourceNotFoundError) Error() string {
	msg := "resource not found: " + e.Locator
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResourceNotFoundError) Unwrap() error {
	return e.Err
}

// IOError wraps failures writing, copying or deleting files.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// PackageError attaches package identity to a fatal packaging failure.
type PackageError struct {
	Group string
	Name  string
	Input string
	Err   error
}

func (e *PackageError) Error() string {
	id := e.Name
	if e.Group != "" {
		id = e.Group + ":" + e.Name
	}
	if id == "" {
		id = "<unnamed>"
	}
	return fmt.Sprintf("package %s from %s: %s", id, e.Input, e.Err)
}

func (e *PackageError) Unwrap() error {
	return e.Err
}
