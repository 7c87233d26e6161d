// Package schema loads goform field declarations from YAML or JSON
// documents, so form definitions can live next to configuration instead
// of in code.
//
// A document is a list of field declarations under a top-level "fields"
// key; declaration order becomes field order. Composite fields nest:
// "list" declarations carry a single template under "field", "form"
// declarations carry their own "fields" list.
package schema

import (
	"fmt"
	"io/fs"
	"math"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/goform"
	"github.com/reoring/goform/validators"
)

type document struct {
	Fields []fieldSpec `yaml:"fields" json:"fields"`
}

type fieldSpec struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Label       string `yaml:"label" json:"label"`
	ID          string `yaml:"id" json:"id"`
	Description string `yaml:"description" json:"description"`
	Default     any    `yaml:"default" json:"default"`

	Required  bool           `yaml:"required" json:"required"`
	Optional  bool           `yaml:"optional" json:"optional"`
	MinLength *int           `yaml:"min_length" json:"min_length"`
	MaxLength *int           `yaml:"max_length" json:"max_length"`
	Min       *float64       `yaml:"min" json:"min"`
	Max       *float64       `yaml:"max" json:"max"`
	Pattern   string         `yaml:"pattern" json:"pattern"`
	Choices   []choiceSpec   `yaml:"choices" json:"choices"`
	Places    *int           `yaml:"places" json:"places"`
	UseLocale bool           `yaml:"use_locale" json:"use_locale"`
	Layout    string         `yaml:"layout" json:"layout"`
	Separator string         `yaml:"separator" json:"separator"`

	// list declarations
	MinEntries int        `yaml:"min_entries" json:"min_entries"`
	MaxEntries int        `yaml:"max_entries" json:"max_entries"`
	Field      *fieldSpec `yaml:"field" json:"field"`

	// form declarations
	Fields []fieldSpec `yaml:"fields" json:"fields"`
}

type choiceSpec struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Load parses a YAML (or JSON, which YAML subsumes) document into a
// built Schema.
func Load(data []byte) (*goform.Schema, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("schema: document is empty")
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse document: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("schema: document declares no fields")
	}
	return buildSchema(doc.Fields)
}

// LoadFile reads one schema file from fsys.
func LoadFile(fsys fs.FS, path string) (*goform.Schema, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	s, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("schema: file %s: %w", path, err)
	}
	return s, nil
}

func buildSchema(specs []fieldSpec) (*goform.Schema, error) {
	b := goform.NewSchema()
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("schema: field declaration without a name")
		}
		field, err := buildField(spec)
		if err != nil {
			return nil, err
		}
		b.Field(spec.Name, field)
	}
	return b.Build()
}

func buildField(spec fieldSpec) (*goform.UnboundField, error) {
	opts, err := commonOptions(spec)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(spec.Type) {
	case "string", "text", "":
		return goform.String(opts...), nil
	case "textarea":
		return goform.TextArea(opts...), nil
	case "password":
		return goform.Password(opts...), nil
	case "hidden":
		return goform.Hidden(opts...), nil
	case "submit":
		return goform.Submit(opts...), nil
	case "boolean", "bool", "checkbox":
		return goform.Boolean(opts...), nil
	case "integer", "int":
		return goform.Integer(opts...), nil
	case "float":
		return goform.Float(opts...), nil
	case "decimal":
		if spec.Places != nil {
			opts = append(opts, goform.WithPlaces(*spec.Places))
		}
		if spec.UseLocale {
			opts = append(opts, goform.WithUseLocale())
		}
		return goform.Decimal(opts...), nil
	case "date":
		return goform.Date(opts...), nil
	case "time":
		return goform.Time(opts...), nil
	case "datetime":
		return goform.DateTime(opts...), nil
	case "file":
		return goform.File(opts...), nil
	case "files":
		return goform.MultipleFile(opts...), nil
	case "select":
		return goform.Select(opts...), nil
	case "radio":
		return goform.Radio(opts...), nil
	case "select_multiple", "multiselect":
		return goform.SelectMultiple(opts...), nil
	case "list":
		if spec.Field == nil {
			return nil, fmt.Errorf("schema: list field %q declares no template field", spec.Name)
		}
		if spec.Field.Name == "" {
			spec.Field.Name = spec.Name
		}
		inner, err := buildField(*spec.Field)
		if err != nil {
			return nil, err
		}
		if spec.MinEntries > 0 {
			opts = append(opts, goform.WithMinEntries(spec.MinEntries))
		}
		if spec.MaxEntries > 0 {
			opts = append(opts, goform.WithMaxEntries(spec.MaxEntries))
		}
		return goform.List(inner, opts...), nil
	case "form":
		if len(spec.Fields) == 0 {
			return nil, fmt.Errorf("schema: form field %q declares no enclosed fields", spec.Name)
		}
		nested, err := buildSchema(spec.Fields)
		if err != nil {
			return nil, err
		}
		return goform.SubForm(nested, opts...), nil
	default:
		return nil, fmt.Errorf("schema: field %q has unknown type %q", spec.Name, spec.Type)
	}
}

func commonOptions(spec fieldSpec) ([]goform.Option, error) {
	var opts []goform.Option
	if spec.Label != "" {
		opts = append(opts, goform.WithLabel(spec.Label))
	}
	if spec.ID != "" {
		opts = append(opts, goform.WithID(spec.ID))
	}
	if spec.Description != "" {
		opts = append(opts, goform.WithDescription(spec.Description))
	}
	if spec.Default != nil {
		opts = append(opts, goform.WithDefault(spec.Default))
	}
	if spec.Layout != "" {
		opts = append(opts, goform.WithLayout(spec.Layout))
	}
	if spec.Separator != "" {
		opts = append(opts, goform.WithSeparator(spec.Separator))
	}
	if len(spec.Choices) > 0 {
		choices := make([]goform.Choice, len(spec.Choices))
		for i, c := range spec.Choices {
			label := c.Label
			if label == "" {
				label = c.Value
			}
			choices[i] = goform.Choice{Value: c.Value, Label: label}
		}
		opts = append(opts, goform.WithChoices(choices...))
	}

	chain, err := validatorChain(spec)
	if err != nil {
		return nil, err
	}
	if len(chain) > 0 {
		opts = append(opts, goform.WithValidators(chain...))
	}
	return opts, nil
}

func validatorChain(spec fieldSpec) ([]goform.Validator, error) {
	var chain []goform.Validator
	if spec.Optional {
		chain = append(chain, validators.Optional())
	}
	if spec.Required {
		chain = append(chain, validators.DataRequired())
	}
	if spec.MinLength != nil || spec.MaxLength != nil {
		min, max := -1, -1
		if spec.MinLength != nil {
			min = *spec.MinLength
		}
		if spec.MaxLength != nil {
			max = *spec.MaxLength
		}
		if min == -1 && max == -1 {
			return nil, fmt.Errorf("schema: field %q declares empty length bounds", spec.Name)
		}
		chain = append(chain, validators.Length(min, max))
	}
	if spec.Min != nil || spec.Max != nil {
		min, max := math.Inf(-1), math.Inf(1)
		if spec.Min != nil {
			min = *spec.Min
		}
		if spec.Max != nil {
			max = *spec.Max
		}
		chain = append(chain, validators.NumberRange(min, max))
	}
	if spec.Pattern != "" {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("schema: field %q has an invalid pattern: %w", spec.Name, err)
		}
		chain = append(chain, validators.Regexp(re))
	}
	return chain, nil
}
