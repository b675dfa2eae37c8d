package schema

import (
	"fmt"

	"github.com/SoftKiwiGames/znoyder/znoyder/zuul"
	"gopkg.in/yaml.v3"
)

// Block is the body shared by project and project-template documents.
type Block struct {
	Name      string
	Templates []string
	// Pipelines holds every key that carries a jobs list, in declaration order.
	Pipelines []PipelineBlock

	bareKeys []string
}

type PipelineBlock struct {
	Name string
	Jobs []JobRef
}

type Project struct {
	Block
}

type ProjectTemplate struct {
	Block
}

type pipelineBody struct {
	Jobs *[]JobRef `yaml:"jobs"`
}

func (b *Block) UnmarshalYAML(value *yaml.Node) error {
	value = resolve(value)
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", value.Line)
	}

	for _, pair := range mappingPairs(value) {
		key, val := pair.key, resolve(pair.value)

		switch key.Value {
		case "name":
			if err := val.Decode(&b.Name); err != nil {
				return fmt.Errorf("line %d: name: %w", key.Line, err)
			}
		case "templates":
			if err := val.Decode(&b.Templates); err != nil {
				return fmt.Errorf("line %d: templates: %w", key.Line, err)
			}
		default:
			if isNull(val) {
				// an empty pipeline key is never a template name
				if _, err := zuul.ParsePipeline(key.Value); err != nil {
					b.bareKeys = append(b.bareKeys, key.Value)
				}
				continue
			}
			if val.Kind != yaml.MappingNode {
				continue
			}
			var body pipelineBody
			if err := val.Decode(&body); err != nil {
				return fmt.Errorf("line %d: %s: %w", key.Line, key.Value, err)
			}
			if body.Jobs == nil {
				continue
			}
			b.Pipelines = append(b.Pipelines, PipelineBlock{Name: key.Value, Jobs: *body.Jobs})
		}
	}

	return nil
}

// Jobs returns the jobs declared under the given pipeline key, or nil.
func (b *Block) Jobs(pipeline string) []JobRef {
	for _, p := range b.Pipelines {
		if p.Name == pipeline {
			return p.Jobs
		}
	}
	return nil
}

// TemplateName returns the explicit name field. Without one, a single
// bare key (`template1:` with no value) names the template; anything
// else is an error.
func (t *ProjectTemplate) TemplateName() (string, error) {
	if t.Name != "" {
		return t.Name, nil
	}
	if len(t.bareKeys) == 1 {
		return t.bareKeys[0], nil
	}
	if len(t.bareKeys) == 0 {
		return "", fmt.Errorf("project-template has no name")
	}
	return "", fmt.Errorf("project-template has no name and ambiguous keys %v", t.bareKeys)
}

type nodePair struct {
	key   *yaml.Node
	value *yaml.Node
}

// mappingPairs lists the entries of a mapping with `<<` merge keys
// expanded in place. Explicit keys win over merged ones, and earlier
// merge sources win over later ones.
func mappingPairs(n *yaml.Node) []nodePair {
	explicit := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if !isMerge(n.Content[i]) {
			explicit[n.Content[i].Value] = true
		}
	}

	seen := make(map[string]bool)
	var pairs []nodePair
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if !isMerge(key) {
			if !seen[key.Value] {
				seen[key.Value] = true
				pairs = append(pairs, nodePair{key: key, value: val})
			}
			continue
		}

		val = resolve(val)
		sources := []*yaml.Node{val}
		if val.Kind == yaml.SequenceNode {
			sources = val.Content
		}
		for _, src := range sources {
			src = resolve(src)
			if src.Kind != yaml.MappingNode {
				continue
			}
			for _, p := range mappingPairs(src) {
				if explicit[p.key.Value] || seen[p.key.Value] {
					continue
				}
				seen[p.key.Value] = true
				pairs = append(pairs, p)
			}
		}
	}
	return pairs
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isMerge(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Value == "<<" && n.ShortTag() == "!!merge"
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
