package model

// Path represents a file system path.
type Path string

// ModuleReport is the persisted result of compiling one module in a batch.
type ModuleReport struct {
	Module        string            `yaml:"module"`
	Filename      string            `yaml:"filename,omitempty"`
	Tier          Tier              `yaml:"tier,omitempty"`
	Verdict       string            `yaml:"verdict"`
	IsValidStrict bool              `yaml:"valid_strict"`
	IsStatic      bool              `yaml:"static"`
	Digest        string            `yaml:"digest,omitempty"`
	Errors        []StructuredError `yaml:"errors,omitempty"`
}
