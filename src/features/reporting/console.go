package reporting

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Console counts signals, prints progress and logs every skipped item.
type Console struct {
	out      io.Writer
	logger   *slog.Logger
	progress int
	errors   int
	byKind   map[ErrorKind]int
}

// NewConsole creates a console reporter writing progress to out.
func NewConsole(out io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{out: out, logger: logger, byKind: make(map[ErrorKind]int)}
}

// Progress implements Reporter.
func (c *Console) Progress() {
	c.progress++
	if c.out != nil {
		fmt.Fprintf(c.out, "Progress: %d/?\r", c.progress)
	}
}

// Error implements Reporter.
func (c *Console) Error(kind ErrorKind, path string) {
	c.errors++
	c.byKind[kind]++
	switch kind {
	case KindExtension:
		c.logger.Info("Skipping file that is not audio", "path", path, "kind", kind)
	case KindUnreadable:
		c.logger.Warn("Can't read file as audio", "path", path, "kind", kind)
	case KindAlbumIncomplete:
		c.logger.Error("Incorrect artist/album data", "path", path, "kind", kind)
	case KindTrackIncomplete:
		c.logger.Error("Incorrect track data", "path", path, "kind", kind)
	case KindDuplicateSlot:
		c.logger.Warn("Track slot already taken", "path", path, "kind", kind)
	case KindDestinationExists:
		c.logger.Warn("Target file already exists", "path", path, "kind", kind)
	default:
		c.logger.Error("Unknown error", "path", path, "kind", kind)
	}
}

// Successes returns the number of progress signals.
func (c *Console) Successes() int {
	return c.progress
}

// Errors returns the number of error signals.
func (c *Console) Errors() int {
	return c.errors
}

// ErrorsOf returns the number of errors of one kind.
func (c *Console) ErrorsOf(kind ErrorKind) int {
	return c.byKind[kind]
}

// Report renders the final tally.
func (c *Console) Report() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("REPORT"))
	b.WriteString("\n")
	b.WriteString(okStyle.Render(fmt.Sprintf("Rescued: %d", c.progress)))
	b.WriteString("\n")
	b.WriteString(errStyle.Render(fmt.Sprintf("Errors: %d", c.errors)))
	for _, kind := range AllKinds {
		if n := c.ErrorsOf(kind); n > 0 {
			b.WriteString(fmt.Sprintf("\n  %-20s %d", kind.String(), n))
		}
	}
	return boxStyle.Render(b.String())
}

// PrintReport writes the final tally to w.
func (c *Console) PrintReport(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", c.Report())
}
