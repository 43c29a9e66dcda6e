package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/TatamiCut/internal/model"
)

// JobFileExt is the extension used for job files.
const JobFileExt = ".toml"

// LoadJob reads a job description from a TOML file. Values missing from the file
// fall back to cfg. Keys the job format does not know are returned as warnings.
func LoadJob(path string, cfg model.AppConfig) (model.Job, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return ParseJob(data, cfg)
}

// ParseJob decodes a TOML job description.
func ParseJob(data []byte, cfg model.AppConfig) (model.Job, []string, error) {
	var job model.Job
	cfg.ApplyToJob(&job)

	meta, err := toml.Decode(string(data), &job)
	if err != nil {
		return model.Job{}, nil, fmt.Errorf("failed to parse job file: %w", err)
	}

	var warnings []string
	for _, key := range meta.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("unknown key %q ignored", key.String()))
	}
	if job.Name == "" {
		job.Name = "Untitled"
	}
	return job, warnings, nil
}

// SaveJob writes a job description as TOML. It creates any missing parent
// directories and adds the job extension when the path has none.
func SaveJob(path string, job model.Job) (string, error) {
	if filepath.Ext(path) == "" {
		path += JobFileExt
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(job); err != nil {
		return "", fmt.Errorf("failed to encode job: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create job directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write job file: %w", err)
	}
	return path, nil
}

// JobFileName derives a file name from the job name.
func JobFileName(job model.Job) string {
	name := strings.ToLower(strings.TrimSpace(job.Name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
	if name == "" {
		name = "job-" + job.ID
	}
	return name + JobFileExt
}
