// Package finder reports which Zuul jobs run in which pipelines, both
// directly in project blocks and through project templates.
package finder

import (
	"fmt"
	"io"
	"strings"

	"github.com/SoftKiwiGames/znoyder/znoyder/loader"
	"github.com/SoftKiwiGames/znoyder/znoyder/schema"
	"github.com/SoftKiwiGames/znoyder/znoyder/zuul"
	"github.com/charmbracelet/log"
)

// Job is a job declared under a pipeline.
type Job struct {
	Name     string
	Pipeline string
}

// Template is a project-template together with the jobs it declares for
// the requested pipelines.
type Template struct {
	TemplateName string
	TemplateJobs []Job
}

type Finder struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Finder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Finder{logger: logger}
}

var defaultFinder = New(nil)

// FindPipelines resolves a comma-separated list of pipeline names. Order
// and duplicates are preserved; a single unknown name fails the whole call.
func FindPipelines(pipelines string) ([]zuul.Pipeline, error) {
	names := strings.Split(pipelines, ",")
	result := make([]zuul.Pipeline, 0, len(names))
	for _, name := range names {
		p, err := zuul.ParsePipeline(name)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

func FindJobs(dir string, exclude []string, pipelines []zuul.Pipeline) ([]Job, error) {
	return defaultFinder.FindJobs(dir, exclude, pipelines)
}

func FindTemplates(dir string, pipelines []zuul.Pipeline) ([]Template, error) {
	return defaultFinder.FindTemplates(dir, nil, pipelines)
}

// FindJobs lists the jobs of every project block under dir, in document
// order and then in the order of pipelines.
func (f *Finder) FindJobs(dir string, exclude []string, pipelines []zuul.Pipeline) ([]Job, error) {
	docs, err := f.Load(dir, exclude)
	if err != nil {
		return nil, err
	}
	jobs := JobsIn(docs, pipelines)
	f.logger.Debug("found jobs", "dir", dir, "count", len(jobs))
	return jobs, nil
}

// FindTemplates lists every project-template under dir with its jobs for
// the given pipelines. A template without matching pipelines has no jobs.
func (f *Finder) FindTemplates(dir string, exclude []string, pipelines []zuul.Pipeline) ([]Template, error) {
	docs, err := f.Load(dir, exclude)
	if err != nil {
		return nil, err
	}
	templates, err := TemplatesIn(docs, pipelines)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("found templates", "dir", dir, "count", len(templates))
	return templates, nil
}

// Load reads every document under dir once, so that callers needing
// several views of the same tree do not walk it repeatedly.
func (f *Finder) Load(dir string, exclude []string) ([]schema.Document, error) {
	f.logger.Debug("scanning", "dir", dir, "exclude", exclude)
	return loader.New(exclude, loader.WithLogger(f.logger)).LoadDirectory(dir)
}

func JobsIn(docs []schema.Document, pipelines []zuul.Pipeline) []Job {
	var jobs []Job
	for _, doc := range docs {
		if doc.Kind != schema.KindProject {
			continue
		}
		jobs = append(jobs, collectJobs(&doc.Project.Block, pipelines)...)
	}
	return jobs
}

func TemplatesIn(docs []schema.Document, pipelines []zuul.Pipeline) ([]Template, error) {
	var templates []Template
	for _, doc := range docs {
		if doc.Kind != schema.KindProjectTemplate {
			continue
		}
		name, err := doc.ProjectTemplate.TemplateName()
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", doc.Source, doc.Line, err)
		}
		templates = append(templates, Template{
			TemplateName: name,
			TemplateJobs: collectJobs(&doc.ProjectTemplate.Block, pipelines),
		})
	}
	return templates, nil
}

// ReferencedTemplates returns the template names used by project blocks,
// first occurrence first.
func ReferencedTemplates(docs []schema.Document) []string {
	seen := make(map[string]bool)
	var names []string
	for _, doc := range docs {
		if doc.Kind != schema.KindProject {
			continue
		}
		for _, name := range doc.Project.Templates {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// MissingTemplates returns the referenced names no template provides.
func MissingTemplates(referenced []string, templates []Template) []string {
	defined := make(map[string]bool, len(templates))
	for _, tpl := range templates {
		defined[tpl.TemplateName] = true
	}
	var missing []string
	for _, name := range referenced {
		if !defined[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func collectJobs(block *schema.Block, pipelines []zuul.Pipeline) []Job {
	var jobs []Job
	for _, p := range pipelines {
		if !p.IsJobPipeline() {
			continue
		}
		for _, ref := range block.Jobs(p.String()) {
			// a null list entry decodes to an empty name
			if ref.Name == "" {
				continue
			}
			jobs = append(jobs, Job{Name: ref.Name, Pipeline: p.String()})
		}
	}
	return jobs
}
