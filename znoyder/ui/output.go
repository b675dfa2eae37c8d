package ui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/wzshiming/ctc"
)

type Output struct {
	stdout io.Writer
	stderr io.Writer
}

func NewOutput(stdout, stderr io.Writer) *Output {
	return &Output{
		stdout: stdout,
		stderr: stderr,
	}
}

// Row is one discovered job, optionally reached through a template.
type Row struct {
	Pipeline string
	Job      string
	Template string
}

// Info prints an informational message
func (o *Output) Info(format string, args ...any) {
	fmt.Fprintf(o.stdout, format+"\n", args...)
}

// Error prints an error message
func (o *Output) Error(format string, args ...any) {
	fmt.Fprintf(o.stderr, o.DotRed()+" "+format+"\n", args...)
}

// Line prints a row as "<pipeline>: <job>", with " in template <name>"
// appended for template jobs.
func (o *Output) Line(r Row) {
	if r.Template == "" {
		fmt.Fprintf(o.stdout, "%s: %s\n", r.Pipeline, r.Job)
		return
	}
	fmt.Fprintf(o.stdout, "%s: %s in template %s\n", r.Pipeline, r.Job, r.Template)
}

// Table renders all rows at once.
func (o *Output) Table(rows []Row) {
	if len(rows) == 0 {
		fmt.Fprintln(o.stdout, "No jobs found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(o.stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"PIPELINE", "JOB", "TEMPLATE"})
	for _, r := range rows {
		template := r.Template
		if template == "" {
			template = "-"
		}
		t.AppendRow(table.Row{r.Pipeline, r.Job, template})
	}
	t.Render()
}

func (o *Output) DotRed() string {
	return fmt.Sprint(ctc.ForegroundRed, "•", ctc.Reset)
}
