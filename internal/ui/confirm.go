package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm displays a warning box and prompts the user to type phrase to
// proceed. It returns true only when the typed line matches phrase exactly.
func Confirm(in io.Reader, out io.Writer, title string, warnings []string, phrase string) bool {
	width := GetTerminalWidth()

	lines := []string{"", ToneWarning.Style().Render(fmt.Sprintf("   %s  %s  ─  %s", ToneWarning.Marker(), ToneWarning.Word(), title)), ""}
	for _, w := range warnings {
		lines = append(lines, textStyle.Render("   • "+w))
	}
	lines = append(lines, "")

	fmt.Fprintln(out, box(WarningColor, width).Render(strings.Join(lines, "\n")))
	fmt.Fprintln(out)
	fmt.Fprint(out, ToneWarning.Style().Render(fmt.Sprintf("To proceed, type %q and press Enter: ", phrase)))

	input, err := bufio.NewReader(in).ReadString('\n')
	fmt.Fprintln(out)
	if err != nil && input == "" {
		return false
	}

	if strings.TrimSpace(input) == phrase {
		return true
	}

	fmt.Fprintln(out, mutedStyle.Render("  Operation cancelled."))
	fmt.Fprintln(out)
	return false
}
