package commands

import (
	"errors"
	"fmt"
	"io"

	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
)

// report prints err and maps it to an exit code.
// Backend failures are prefixed with the controller's error indicator.
func report(errOut io.Writer, ctl *controller.Controller, err error) int {
	switch {
	case errors.Is(err, controller.ErrInvalidForm),
		errors.Is(err, ErrTaskRefRequired),
		errors.Is(err, ErrTaskNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	msg := ctl.Snapshot().Error
	if msg == "" {
		msg = "backend error"
	}
	fmt.Fprintf(errOut, "error: %s: %v\n", msg, err)
	return exitcode.BackendError
}
