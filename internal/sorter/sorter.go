package sorter

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vidsort/internal/config"
	"vidsort/internal/inbox"
	"vidsort/internal/logging"
	"vidsort/internal/preview"
)

// Options configures a Sorter.
type Options struct {
	// Destinations maps a normalized single-character key to a directory.
	Destinations map[string]string
	UndoKey      string
	QuitKey      string
	Filter       inbox.Filter
	Previewer    preview.Previewer
	In           io.Reader
	Out          io.Writer
	Logger       *slog.Logger
	ShowProgress bool
}

// OptionsFromConfig fills the configuration-derived fields of Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Destinations: cfg.Destinations,
		UndoKey:      cfg.Sorting.UndoKey,
		QuitKey:      cfg.Sorting.QuitKey,
		Filter: inbox.Filter{
			Extension:    cfg.Sorting.Extension,
			HiddenPrefix: cfg.Sorting.HiddenPrefix,
		},
	}
}

// MoveRecord is the single-slot undo history: where the last moved file went
// and where it came from.
type MoveRecord struct {
	MovedTo  string
	Original string
}

// Sorter owns one triage session.
type Sorter struct {
	destinations map[string]string
	undoKey      string
	quitKey      string
	filter       inbox.Filter
	previewer    preview.Previewer
	in           *bufio.Reader
	out          io.Writer
	logger       *slog.Logger
	lower        cases.Caser
	showProgress bool

	last *MoveRecord
}

// New validates opts and builds a Sorter.
func New(opts Options) (*Sorter, error) {
	if len(opts.Destinations) == 0 {
		return nil, errors.New("sorter requires at least one destination")
	}
	if opts.UndoKey == "" || opts.QuitKey == "" {
		return nil, errors.New("sorter requires undo and quit keys")
	}

	destinations := make(map[string]string, len(opts.Destinations))
	for key, dir := range opts.Destinations {
		destinations[key] = dir
	}

	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	previewer := opts.Previewer
	if previewer == nil {
		previewer = preview.Nop{}
	}

	return &Sorter{
		destinations: destinations,
		undoKey:      opts.UndoKey,
		quitKey:      opts.QuitKey,
		filter:       opts.Filter,
		previewer:    previewer,
		in:           bufio.NewReader(in),
		out:          out,
		logger:       logging.NewComponentLogger(opts.Logger, "sorter"),
		lower:        cases.Lower(language.Und),
		showProgress: opts.ShowProgress,
	}, nil
}

// LastMove returns the move that Undo would revert, if any.
func (s *Sorter) LastMove() (MoveRecord, bool) {
	if s.last == nil {
		return MoveRecord{}, false
	}
	return *s.last, true
}
