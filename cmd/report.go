package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// reportedError marks an error already shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// report prints err in the error style and returns it marked as shown, so
// Execute does not print it again
func report(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), styleError.Render(err.Error()))
	return &reportedError{err: err}
}
