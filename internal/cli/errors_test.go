package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/cli"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitOK},
		{"validation", calcerr.Invalid("scope", "x", "bad"), cli.ExitValidation},
		{"wrapped validation", fmt.Errorf("line 3: %w", calcerr.Invalid("scope", "x", "bad")), cli.ExitValidation},
		{"configuration", calcerr.Misconfigured("gwp", "ar9", "unknown"), cli.ExitConfiguration},
		{"batch", &cli.BatchExitError{Failed: 1, Total: 3}, cli.ExitFailure},
		{"other", errors.New("boom"), cli.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestBatchExitError(t *testing.T) {
	err := &cli.BatchExitError{Failed: 2, Total: 5}
	assert.Equal(t, "2 of 5 requests failed", err.Error())
}
