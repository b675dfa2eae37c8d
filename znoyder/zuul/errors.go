package zuul

import "fmt"

// PipelineError reports a pipeline name outside the known vocabulary.
type PipelineError struct {
	Name string
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("unknown pipeline %q", e.Name)
}

// PathError reports a configuration path that is missing, unreadable
// or not of the expected kind.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid path %s", e.Path)
	}
	return fmt.Sprintf("invalid path %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
