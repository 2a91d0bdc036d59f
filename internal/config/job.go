package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BoxFit/internal/model"
)

// SaveJob writes a job to a JSON file, creating parent directories.
func SaveJob(path string, job model.Job) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadJob reads a job file. Missing IDs and names are filled in and the
// result is validated.
func LoadJob(path string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, err
	}
	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return model.Job{}, fmt.Errorf("parse job %s: %w", path, err)
	}
	if job.Items == nil {
		job.Items = []model.Item{}
	}
	job.Normalize()
	if err := job.Validate(); err != nil {
		return model.Job{}, fmt.Errorf("job %s: %w", path, err)
	}
	return job, nil
}
