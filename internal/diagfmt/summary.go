package diagfmt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	summaryOkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	summaryErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	summaryWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// WriteSummary renders a run summary block after pretty output.
// Вызывается только при выводе в терминал.
func WriteSummary(w io.Writer, files, errors, warnings int) {
	var status string
	switch {
	case errors > 0:
		status = summaryErrStyle.Render(fmt.Sprintf("%d error(s)", errors))
	case warnings > 0:
		status = summaryWarnStyle.Render(fmt.Sprintf("%d warning(s)", warnings))
	default:
		status = summaryOkStyle.Render("clean")
	}

	line := fmt.Sprintf("checked %d file(s): %s", files, status)
	if warnings > 0 && errors > 0 {
		line += summaryWarnStyle.Render(fmt.Sprintf(", %d warning(s)", warnings))
	}
	fmt.Fprintln(w, summaryBoxStyle.Render(line))
}
