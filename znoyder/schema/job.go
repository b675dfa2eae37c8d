package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// JobRef is a job listed under a pipeline. It is written either as a
// bare name or as a single-key mapping of the name to its overrides.
type JobRef struct {
	Name string
}

func (j *JobRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		j.Name = value.Value
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("line %d: job entry must have exactly one key, got %d", value.Line, len(value.Content)/2)
		}
		j.Name = value.Content[0].Value
	default:
		return fmt.Errorf("line %d: job entry must be a name or a mapping", value.Line)
	}

	if j.Name == "" {
		return fmt.Errorf("line %d: empty job name", value.Line)
	}
	return nil
}
