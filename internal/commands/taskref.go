package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"tasklist/internal/service"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrTaskNotFound indicates a reference that matches no task.
var ErrTaskNotFound = errors.New("task not found")

// ParseTaskRef returns the task reference from args.
// A reference is a 1-based list position or a task ID.
func ParseTaskRef(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrTaskRefRequired
	}
	ref := strings.TrimSpace(args[0])
	if ref == "" {
		return "", ErrTaskRefRequired
	}
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected argument: %s", args[1])
	}
	return ref, nil
}

// ResolveTask finds the task ref points at.
// All-digit references are list positions, as printed by the list command;
// anything else is matched against task IDs.
func ResolveTask(tasks []service.Task, ref string) (service.Task, error) {
	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil || num < 1 || num > len(tasks) {
			return service.Task{}, fmt.Errorf("%w: number out of range: %s", ErrTaskNotFound, ref)
		}
		return tasks[num-1], nil
	}

	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}
	return service.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
