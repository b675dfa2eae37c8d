package zuul

// Pipeline is a named Zuul pipeline recognised by znoyder.
type Pipeline string

const (
	PipelineCheck        Pipeline = "check"
	PipelineGate         Pipeline = "gate"
	PipelinePost         Pipeline = "post"
	PipelineExperimental Pipeline = "experimental"
	PipelinePeriodic     Pipeline = "periodic"
	PipelinePromote      Pipeline = "promote"
	PipelineRelease      Pipeline = "release"

	// PipelineTemplates is the key under which a project lists the
	// templates it uses. It never carries jobs of its own.
	PipelineTemplates Pipeline = "templates"
)

var pipelines = []Pipeline{
	PipelineCheck,
	PipelineGate,
	PipelinePost,
	PipelineExperimental,
	PipelinePeriodic,
	PipelinePromote,
	PipelineRelease,
	PipelineTemplates,
}

// Pipelines returns the whole vocabulary in declaration order.
func Pipelines() []Pipeline {
	out := make([]Pipeline, len(pipelines))
	copy(out, pipelines)
	return out
}

// ParsePipeline looks up a pipeline by its exact (case-sensitive) name.
func ParsePipeline(name string) (Pipeline, error) {
	for _, p := range pipelines {
		if string(p) == name {
			return p, nil
		}
	}
	return "", &PipelineError{Name: name}
}

func (p Pipeline) String() string {
	return string(p)
}

// IsJobPipeline reports whether jobs can be declared under this key.
func (p Pipeline) IsJobPipeline() bool {
	return p != PipelineTemplates
}
