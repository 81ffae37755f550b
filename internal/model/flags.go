// Package model defines the data structures shared by the compilation
// driver, its collaborators and the CLI.
package model

// ModuleFlags records which tiers a module opted into.
type ModuleFlags struct {
	IsStrict bool
	IsStatic bool
}

// Merge combines scanned flags with an optional override. A true field on
// either side wins; a false override never clears a scanned flag.
func (f ModuleFlags) Merge(override *ModuleFlags) ModuleFlags {
	if override == nil {
		return f
	}

	return ModuleFlags{
		IsStrict: f.IsStrict || override.IsStrict,
		IsStatic: f.IsStatic || override.IsStatic,
	}
}
