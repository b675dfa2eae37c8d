package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindProject
	KindProjectTemplate
)

func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindProjectTemplate:
		return "project-template"
	default:
		return "unknown"
	}
}

// Document is one entry of the top-level list of a Zuul config file.
// Exactly one of Project and ProjectTemplate is set for known kinds.
type Document struct {
	Kind Kind
	// Type is the top-level key as written, e.g. "job" or "pipeline"
	// for documents znoyder does not interpret.
	Type   string
	Line   int
	Source string

	Project         *Project
	ProjectTemplate *ProjectTemplate
}

func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	value = resolve(value)
	d.Line = value.Line
	// Ansible playbooks and other YAML share the tree with Zuul config;
	// anything that is not a single-key mapping is left unknown.
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		d.Kind = KindUnknown
		return nil
	}

	key, body := value.Content[0], value.Content[1]
	d.Type = key.Value
	d.Line = key.Line

	switch key.Value {
	case "project":
		var p Project
		if err := body.Decode(&p.Block); err != nil {
			return fmt.Errorf("line %d: project: %w", key.Line, err)
		}
		d.Kind = KindProject
		d.Project = &p
	case "project-template":
		var pt ProjectTemplate
		if err := body.Decode(&pt.Block); err != nil {
			return fmt.Errorf("line %d: project-template: %w", key.Line, err)
		}
		d.Kind = KindProjectTemplate
		d.ProjectTemplate = &pt
	default:
		d.Kind = KindUnknown
	}

	return nil
}
