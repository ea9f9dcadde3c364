package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Exit codes returned by the docsite binary.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitValidation = 2
	ExitConfig     = 7
	ExitExternal   = 8
	ExitInternal   = 10
	ExitIO         = 11
)

// CLIErrorAdapter handles error presentation and exit code selection for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter writing to stderr.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger, out: os.Stderr, exit: os.Exit}
}

// ExitCodeFor determines the exit code for err.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	ce, ok := AsClassified(err)
	if !ok {
		return ExitGeneral
	}
	switch ce.Category() {
	case CategoryValidation:
		return ExitValidation
	case CategoryConfig:
		return ExitConfig
	case CategoryGit:
		return ExitExternal
	case CategoryFileSystem, CategoryExport:
		return ExitIO
	case CategoryInternal:
		return ExitInternal
	default:
		return ExitGeneral
	}
}

// FormatError renders err for a human reader.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	ce, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return ce.Error()
	}
	if ce.Category() == CategoryInternal {
		return "Internal error occurred (use -v for details)"
	}
	msg := "Error: " + ce.Message()
	if field, ok := ce.Context().GetString("field"); ok && field != "" {
		msg += fmt.Sprintf(" (field %s", field)
		if reason, ok := ce.Context().GetString("reason"); ok && reason != "" {
			msg += ": " + reason
		}
		msg += ")"
	} else if ce.Cause() != nil {
		msg += ": " + ce.Cause().Error()
	}
	return msg
}

// HandleError logs err, prints it and exits with the mapped code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	a.logError(err)
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

func (a *CLIErrorAdapter) logError(err error) {
	ce, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", logfields.Error(err))
		return
	}
	if !a.verbose && !ce.IsFatal() {
		return
	}
	attrs := []slog.Attr{
		slog.String("category", string(ce.Category())),
		slog.Bool("user_action", ce.NeedsUserAction()),
	}
	if v, ok := ce.Context().GetString("field"); ok {
		attrs = append(attrs, logfields.Field(v))
	}
	if v, ok := ce.Context().GetString("reason"); ok {
		attrs = append(attrs, logfields.Reason(v))
	}
	if v, ok := ce.Context().GetString("path"); ok {
		attrs = append(attrs, logfields.Path(v))
	}
	if ce.Cause() != nil {
		attrs = append(attrs, logfields.Error(ce.Cause()))
	}
	a.logger.LogAttrs(context.Background(), levelFor(ce.Severity()), ce.Message(), attrs...)
}

func levelFor(s ErrorSeverity) slog.Level {
	if s == SeverityWarning {
		return slog.LevelWarn
	}
	return slog.LevelError
}
