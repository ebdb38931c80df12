package rubric

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the YAML schema for customizing the built-in rubric. Criterion
// inspection rules are fixed Go functions; a rubric file adjusts the
// declarative parts: naming, weights, and the pass threshold.
type File struct {
	Name         string          `yaml:"name"`
	Description  string          `yaml:"description"`
	PassingGrade float64         `yaml:"passing_grade"`
	Criteria     []CriterionFile `yaml:"criteria"`
}

// CriterionFile overrides one built-in criterion, matched by id.
type CriterionFile struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Weight      float64 `yaml:"weight"`
}

// ParseFile decodes a rubric customization document. Unknown fields are
// rejected so typos surface as configuration errors.
func ParseFile(data []byte) (File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return File{}, fmt.Errorf("parse rubric: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse rubric: multiple YAML documents are not supported")
		}
		return File{}, fmt.Errorf("parse rubric: %w", err)
	}
	return file, nil
}

// Load returns the active rubric: the built-in Kedro rubric, optionally
// customized by the YAML file at path. The result is always validated;
// an invalid rubric is a configuration error and is never returned.
func Load(path string) (Rubric, error) {
	base := NewKedroML()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Rubric{}, fmt.Errorf("read rubric: %w", err)
		}
		file, err := ParseFile(data)
		if err != nil {
			return Rubric{}, err
		}
		if err := apply(&base, file); err != nil {
			return Rubric{}, err
		}
	}
	if err := Validate(&base); err != nil {
		return Rubric{}, err
	}
	return base, nil
}

func apply(r *Rubric, file File) error {
	if strings.TrimSpace(file.Name) != "" {
		r.Name = file.Name
	}
	if strings.TrimSpace(file.Description) != "" {
		r.Description = file.Description
	}
	if file.PassingGrade != 0 {
		r.PassingGrade = file.PassingGrade
	}
	for _, override := range file.Criteria {
		index := -1
		for i := range r.Criteria {
			if r.Criteria[i].ID == override.ID {
				index = i
				break
			}
		}
		if index < 0 {
			return fmt.Errorf("rubric override references unknown criterion %q", override.ID)
		}
		if strings.TrimSpace(override.Name) != "" {
			r.Criteria[index].Name = override.Name
		}
		if strings.TrimSpace(override.Description) != "" {
			r.Criteria[index].Description = override.Description
		}
		if override.Weight != 0 {
			r.Criteria[index].Weight = override.Weight
		}
	}
	return nil
}
