package model

import "fmt"

// StructuredError is a located diagnostic. Strict analysis diagnostics and
// static compilation failures share this shape.
type StructuredError struct {
	Message  string `yaml:"message"`
	Filename string `yaml:"filename"`
	Line     int    `yaml:"line"`
	Column   int    `yaml:"column"`
}

func (e *StructuredError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

// NewStructuredError builds a StructuredError.
func NewStructuredError(message, filename string, line, column int) *StructuredError {
	return &StructuredError{Message: message, Filename: filename, Line: line, Column: column}
}
