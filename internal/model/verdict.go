package model

import "strata.dev/pkg/strata/internal/syntax"

// AnalysisVerdict is the strict analyzer's answer for one module. Tree and
// Symbols are the analyzer's own parse of the module, when it got that far.
type AnalysisVerdict struct {
	IsValid bool
	Errors  []StructuredError
	Tree    *syntax.Module
	Symbols *syntax.SymbolTable
}

// StrictValid reports whether the module passed: valid and no diagnostics.
func (v AnalysisVerdict) StrictValid() bool {
	return v.IsValid && len(v.Errors) == 0
}
