// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/service"
)

// FormatTask formats a task line for the list command.
// Format: "{N:>4}  {NAME} - {AGE} years old\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s\n", num, TaskLabel(task))
}

// TaskLabel renders a task the way the list shows it: "NAME - AGE years old".
func TaskLabel(task service.Task) string {
	return fmt.Sprintf("%s - %d years old", normalizeName(task.Name), task.Age)
}

// normalizeName normalizes a task name for display.
// - Empty or whitespace-only names become "(unnamed)"
// - Newlines are replaced with spaces
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")

	if strings.TrimSpace(name) == "" {
		return "(unnamed)"
	}
	return name
}
