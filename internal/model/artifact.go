package model

// Tier is the compilation tier that produced an artifact.
type Tier string

// Compilation tiers.
const (
	TierBasic  Tier = "basic"
	TierStrict Tier = "strict"
	TierStatic Tier = "static"
)

// Instruction is one operation of a compiled unit.
type Instruction struct {
	Op   string `yaml:"op"`
	Arg  string `yaml:"arg,omitempty"`
	Line int    `yaml:"line"`
}

// Artifact is a compiled module.
type Artifact struct {
	Name         string        `yaml:"name"`
	Filename     string        `yaml:"filename"`
	Tier         Tier          `yaml:"tier"`
	Optimize     int           `yaml:"optimize"`
	Backend      string        `yaml:"backend"`
	Patchable    bool          `yaml:"patchable"`
	Instructions []Instruction `yaml:"instructions"`
	Digest       string        `yaml:"digest"`
}

// CompilationOutcome is the result of the direct compile entry point. A nil
// Artifact means the attempted tier failed without raising.
type CompilationOutcome struct {
	Artifact      *Artifact
	IsValidStrict bool
	IsStatic      bool
}
