package main

import (
	"fmt"
	"os"

	"creativemastery/internal/model"

	"gopkg.in/yaml.v3"
)

// AnswerFile is the on-disk form of one quiz run
type AnswerFile struct {
	Pattern string                   `yaml:"pattern,omitempty"`
	Answers model.Answers            `yaml:"answers"`
	Mastery *model.MasterySelections `yaml:"mastery,omitempty"`
}

func readAnswerFile(path string) (*AnswerFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	var f AnswerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	if f.Answers == nil {
		f.Answers = model.Answers{}
	}
	return &f, nil
}

func writeAnswerFile(path string, f *AnswerFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write answers: %w", err)
	}
	return nil
}
