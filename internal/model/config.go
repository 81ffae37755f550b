package model

// AllowList names the modules the strict analyzer may treat as strict
// eligible without analysing them.
type AllowList struct {
	Prefix []string
	Exact  []string
	Regex  []string
}

// AnalyzerConfig is what the driver forwards to its strict analyzer factory.
type AnalyzerConfig struct {
	SearchRoots     []string
	StubRoot        string
	SourceExt       string
	StubExt         string
	AllowList       AllowList
	Verbose         bool
	DisableAnalysis bool
}
