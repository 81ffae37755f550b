package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	m "strata.dev/pkg/strata/internal/model"
)

const (
	reportsFileName = "modules.yaml"
	reportsVersion  = 1
	artifactSuffix  = ".artifact.yaml"
)

// ReportStore persists batch compilation reports and compiled artifacts.
type ReportStore interface {
	SaveReports(ctx context.Context, dir m.Path, reports []m.ModuleReport) error
	LoadReports(ctx context.Context, dir m.Path) ([]m.ModuleReport, error)
	SaveArtifact(ctx context.Context, dir m.Path, artifact *m.Artifact) error
	LoadArtifact(ctx context.Context, dir m.Path, name string) (*m.Artifact, error)
}

type reportFile struct {
	Version int              `yaml:"version"`
	Modules []m.ModuleReport `yaml:"modules"`
}

type yamlReportStore struct {
	fs SourceFSAdapter
}

// NewReportStore returns a ReportStore that writes one YAML file per
// reports directory.
func NewReportStore(fs SourceFSAdapter) ReportStore {
	return &yamlReportStore{fs: fs}
}

func (s *yamlReportStore) SaveReports(ctx context.Context, dir m.Path, reports []m.ModuleReport) error {
	data, err := yaml.Marshal(reportFile{Version: reportsVersion, Modules: reports})
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}

	path := s.fs.JoinPath(ctx, string(dir), reportsFileName)
	if err := s.fs.WriteFile(ctx, path, data, 0o600); err != nil {
		slog.Error("Failed to write reports", "path", path, "error", err)
		return fmt.Errorf("failed to write reports: %w", err)
	}

	slog.Debug("saved reports", "path", path, "count", len(reports))

	return nil
}

func (s *yamlReportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.ModuleReport, error) {
	path := s.fs.JoinPath(ctx, string(dir), reportsFileName)

	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no reports found in %s", dir)
		}

		return nil, fmt.Errorf("failed to read reports: %w", err)
	}

	var file reportFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode reports %s: %w", path, err)
	}

	if file.Version != reportsVersion {
		return nil, fmt.Errorf("unsupported reports version %d in %s", file.Version, path)
	}

	return file.Modules, nil
}

func (s *yamlReportStore) SaveArtifact(ctx context.Context, dir m.Path, artifact *m.Artifact) error {
	data, err := yaml.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}

	path := s.fs.JoinPath(ctx, string(dir), artifact.Name+artifactSuffix)
	if err := s.fs.WriteFile(ctx, path, data, 0o600); err != nil {
		slog.Error("Failed to write artifact", "path", path, "error", err)
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	return nil
}

func (s *yamlReportStore) LoadArtifact(ctx context.Context, dir m.Path, name string) (*m.Artifact, error) {
	path := s.fs.JoinPath(ctx, string(dir), name+artifactSuffix)

	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var artifact m.Artifact
	if err := yaml.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s: %w", path, err)
	}

	return &artifact, nil
}
