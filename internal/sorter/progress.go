package sorter

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

type progress struct {
	bar *progressbar.ProgressBar
	out io.Writer
}

func newProgress(out io.Writer, total int, enabled bool) *progress {
	if !enabled {
		return &progress{}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("sorted"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
	)
	return &progress{bar: bar, out: out}
}

// step advances the bar and ends its line so the next prompt starts clean.
func (p *progress) step() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(1)
	fmt.Fprintln(p.out)
}
