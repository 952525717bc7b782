package cli

import (
	"errors"
	"fmt"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitValidation    = 2
	ExitConfiguration = 3
)

// BatchExitError reports a batch run in which some requests were rejected.
// The results are still rendered before it is returned.
type BatchExitError struct {
	Failed int
	Total  int
}

func (e *BatchExitError) Error() string {
	return fmt.Sprintf("%d of %d requests failed", e.Failed, e.Total)
}

// ExitCode maps an error returned by a command to the process exit code:
// validation failures exit 2, configuration failures exit 3, anything else 1.
func ExitCode(err error) int {
	var batchErr *BatchExitError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &batchErr):
		return ExitFailure
	case calcerr.IsValidation(err):
		return ExitValidation
	case calcerr.IsConfiguration(err):
		return ExitConfiguration
	default:
		return ExitFailure
	}
}
