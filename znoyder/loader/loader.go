package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SoftKiwiGames/znoyder/znoyder/schema"
	"github.com/SoftKiwiGames/znoyder/znoyder/utils"
	"github.com/SoftKiwiGames/znoyder/znoyder/zuul"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	exclude []string
	logger  *log.Logger
}

type Option func(*Loader)

func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New returns a Loader skipping every file or directory matching one of
// the exclude glob patterns.
func New(exclude []string, opts ...Option) *Loader {
	l := &Loader{
		exclude: exclude,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadDirectory reads every Zuul config file below dir, in lexical order.
func (l *Loader) LoadDirectory(dir string) ([]schema.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &zuul.PathError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &zuul.PathError{Path: dir, Err: errors.New("not a directory")}
	}

	var docs []schema.Document
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &zuul.PathError{Path: path, Err: err}
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if d.Name() == ".git" || utils.MatchesAny(l.exclude, rel) {
				l.logger.Debug("skipping directory", "path", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !utils.IsZuulConfigFile(path) {
			return nil
		}
		if utils.MatchesAny(l.exclude, rel) {
			l.logger.Debug("skipping excluded file", "path", rel)
			return nil
		}

		fileDocs, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, fileDocs...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Debug("loaded directory", "dir", dir, "documents", len(docs))
	return docs, nil
}

// LoadFile parses every YAML stream of a file as a list of documents.
// Streams whose top level is not a list are not Zuul config and are skipped.
func (l *Loader) LoadFile(path string) ([]schema.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &zuul.PathError{Path: path, Err: err}
	}

	var docs []schema.Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node yaml.Node
		if err := decoder.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}

		if len(node.Content) == 0 || node.Content[0].Kind != yaml.SequenceNode {
			l.logger.Debug("skipping non-list YAML", "path", path, "line", node.Line)
			continue
		}

		var streamDocs []schema.Document
		if err := node.Decode(&streamDocs); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for i := range streamDocs {
			streamDocs[i].Source = path
		}
		docs = append(docs, streamDocs...)
	}

	l.logger.Debug("loaded file", "path", path, "documents", len(docs))
	return docs, nil
}
