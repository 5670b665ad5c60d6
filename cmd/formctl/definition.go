package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/SAP-F-2025/form-builder-service/internal/builder"
	"github.com/SAP-F-2025/form-builder-service/internal/models"
	"gopkg.in/yaml.v2"
)

// Definition is a form described in YAML:
//
//	name: Customer survey
//	description: Tell us about your visit
//	banner: banner.png
//	questions:
//	  - name: How did you hear about us?
//	    type: single
//	    required: true
//	    options: [Friend, Advert]
//	  - name: Anything else?
//	    type: text
type Definition struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Banner      string          `yaml:"banner"`
	Questions   []QuestionEntry `yaml:"questions"`
}

type QuestionEntry struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Required bool     `yaml:"required"`
	Options  []string `yaml:"options"`
}

func LoadDefinition(r io.Reader) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var def Definition
	if err := yaml.UnmarshalStrict(data, &def); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	return &def, nil
}

// Apply fills the builder the way a user would: one editor operation at a
// time. Relative banner paths resolve against baseDir.
func (d *Definition) Apply(b *builder.Builder, baseDir string) error {
	b.SetName(d.Name)
	b.SetDescription(d.Description)

	e := b.Editor()
	for i, entry := range d.Questions {
		qType := models.QuestionSingle
		if entry.Type != "" {
			t, ok := models.ParseQuestionType(entry.Type)
			if !ok {
				return fmt.Errorf("question %d: unknown type %q", i+1, entry.Type)
			}
			qType = t
		}

		if _, err := e.AddQuestion(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		index := e.Len() - 1

		if err := e.SetQuestionName(index, entry.Name); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		if err := e.SetQuestionType(index, qType); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		if err := e.SetRequired(index, entry.Required); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		for j, option := range entry.Options {
			if j > 0 {
				if err := e.AddOption(index); err != nil {
					return fmt.Errorf("question %d: %w", i+1, err)
				}
			}
			if err := e.SetOption(index, j, option); err != nil {
				return fmt.Errorf("question %d: %w", i+1, err)
			}
		}
	}

	if d.Banner != "" {
		path := d.Banner
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open banner: %w", err)
		}
		defer f.Close()
		if err := b.SelectBanner(filepath.Base(path), f); err != nil {
			return fmt.Errorf("banner %s: %w", d.Banner, err)
		}
	}
	return nil
}
