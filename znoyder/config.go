package znoyder

import (
	"fmt"
	"io"

	"github.com/SoftKiwiGames/znoyder/znoyder/utils"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
)

const (
	OutputText  = "text"
	OutputTable = "table"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config carries everything a find-jobs invocation needs.
type Config struct {
	// Directory is scanned for project blocks.
	Directory string `validate:"required"`
	// Templates is scanned for project-template blocks; empty means Directory.
	Templates string
	Pipeline  string   `validate:"required"`
	Exclude   []string `validate:"dive,required"`
	Output    string   `validate:"oneof=text table"`
	Verbose   bool
}

// Prepare validates the config and resolves its paths.
func (c *Config) Prepare() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dir, err := utils.ExpandPath(c.Directory)
	if err != nil {
		return fmt.Errorf("failed to resolve directory %s: %w", c.Directory, err)
	}
	c.Directory = dir

	if c.Templates == "" {
		c.Templates = c.Directory
		return nil
	}
	templates, err := utils.ExpandPath(c.Templates)
	if err != nil {
		return fmt.Errorf("failed to resolve templates directory %s: %w", c.Templates, err)
	}
	c.Templates = templates
	return nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "znoyder",
	})
}
