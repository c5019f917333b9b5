package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klocke7-ford/pesterun/internal/domain"
)

// Save writes the run report to the configured JSON result file.
func (s *JSONStorage) Save(report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}

	path := s.cfg.GetResultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	return nil
}

// Load reads the last run report from the configured JSON result file.
func (s *JSONStorage) Load() (*domain.RunReport, error) {
	path := s.cfg.GetResultPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run report: %w", err)
	}
	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse run report: %w", err)
	}
	return &report, nil
}
