package znoyder

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SoftKiwiGames/znoyder/znoyder/zuul"
)

const exampleZuulConfig = `
- project:
    templates:
      - template1
      - template2
    check:
      jobs:
        - job1
        - job2

- project-template:
    template1:
    name: template1
    check:
      jobs:
        - job1
        - job2
- project-template:
    template2:
    name: template2
    check:
      jobs:
        - job1
        - job2

`

func exampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "zuul.d"), []byte(exampleZuulConfig), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return dir
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := New(&stdout, &stderr).Main(args)
	return code, stdout.String(), stderr.String()
}

func TestMain_FindJobs(t *testing.T) {
	dir := exampleDir(t)

	code, stdout, stderr := run("find-jobs", "--directory", dir, "--templates", dir, "--pipeline", "check", "--verbose")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr: %s)", code, stderr)
	}

	expected := []string{
		"check: job1",
		"check: job2",
		"check: job1 in template template1",
		"check: job2 in template template1",
		"check: job1 in template template2",
		"check: job2 in template template2",
	}
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(expected), len(lines), stdout)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}

	if !strings.Contains(stderr, "resolved pipelines") {
		t.Errorf("Expected debug logging on stderr with --verbose, got %q", stderr)
	}
}

func TestMain_TemplatesDefaultToDirectory(t *testing.T) {
	dir := exampleDir(t)

	code, stdout, stderr := run("find-jobs", "-d", dir)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr: %s)", code, stderr)
	}
	if n := strings.Count(stdout, "\n"); n != 6 {
		t.Errorf("Expected 6 lines, got %d:\n%s", n, stdout)
	}
	if stderr != "" {
		t.Errorf("Expected no logging without --verbose, got %q", stderr)
	}
}

func TestMain_Table(t *testing.T) {
	dir := exampleDir(t)

	code, stdout, stderr := run("find-jobs", "-d", dir, "-o", "table")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr: %s)", code, stderr)
	}
	if strings.Count(stdout, "template2") != 2 {
		t.Errorf("Expected two rows for template2, got:\n%s", stdout)
	}
}

func TestMain_Errors(t *testing.T) {
	dir := exampleDir(t)

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{
			name:    "missing directory",
			args:    []string{"find-jobs", "-d", filepath.Join(dir, "missing")},
			message: "invalid path",
		},
		{
			name:    "missing templates directory",
			args:    []string{"find-jobs", "-d", dir, "-t", filepath.Join(dir, "missing")},
			message: "failed to find templates",
		},
		{
			name:    "unknown pipeline",
			args:    []string{"find-jobs", "-d", dir, "-p", "check,unknown"},
			message: `unknown pipeline "unknown"`,
		},
		{
			name:    "bad output format",
			args:    []string{"find-jobs", "-d", dir, "-o", "json"},
			message: "invalid configuration",
		},
		{
			name:    "unexpected argument",
			args:    []string{"find-jobs", "extra"},
			message: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(tt.args...)
			if code == 0 {
				t.Fatalf("Expected non-zero exit code, stdout: %s", stdout)
			}
			if stdout != "" {
				t.Errorf("Expected no output on stdout, got %q", stdout)
			}
			if !strings.Contains(stderr, tt.message) {
				t.Errorf("Expected stderr to contain %q, got %q", tt.message, stderr)
			}
		})
	}
}

func TestMain_ErrorLine(t *testing.T) {
	code, _, stderr := run("find-jobs", "-p", "nope")
	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "•") || !strings.Contains(stderr, `Error: unknown pipeline "nope"`) {
		t.Errorf("Expected marked error line, got %q", stderr)
	}
}

func TestMain_SeparateTemplatesDirectory(t *testing.T) {
	projects := t.TempDir()
	project := "- project:\n    templates: [template1, absent]\n    check:\n      jobs: [job0]\n"
	if err := os.WriteFile(filepath.Join(projects, "zuul.yaml"), []byte(project), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	templates := exampleDir(t)

	code, stdout, stderr := run("find-jobs", "-d", projects, "-t", templates)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr: %s)", code, stderr)
	}

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	if len(lines) != 5 || lines[0] != "check: job0" || lines[1] != "check: job1 in template template1" {
		t.Errorf("Unexpected output:\n%s", stdout)
	}
	if !strings.Contains(stderr, "template used by a project is not defined") || !strings.Contains(stderr, "absent") {
		t.Errorf("Expected warning about the undefined template, got %q", stderr)
	}
	if strings.Contains(stderr, "template1 ") {
		t.Errorf("Expected no warning about a defined template, got %q", stderr)
	}
}

func TestFindJobs_TypedErrors(t *testing.T) {
	z := New(&bytes.Buffer{}, &bytes.Buffer{})

	err := z.findJobs(Config{Directory: filepath.Join(t.TempDir(), "missing"), Pipeline: "check", Output: OutputText})
	var pathErr *zuul.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("Expected PathError, got %v", err)
	}

	err = z.findJobs(Config{Directory: t.TempDir(), Pipeline: "nope", Output: OutputText})
	var pipelineErr *zuul.PipelineError
	if !errors.As(err, &pipelineErr) {
		t.Errorf("Expected PipelineError, got %v", err)
	}
}

func TestMain_Pipelines(t *testing.T) {
	code, stdout, _ := run("pipelines")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d", code)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	vocabulary := zuul.Pipelines()
	if len(lines) != len(vocabulary) {
		t.Fatalf("Expected %d pipelines, got %d", len(vocabulary), len(lines))
	}
	for i, p := range vocabulary {
		if lines[i] != p.String() {
			t.Errorf("Expected %q, got %q", p, lines[i])
		}
	}
}
