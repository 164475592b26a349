package analysis

import (
	"fmt"
	"unicode/utf8"

	"github.com/neurosafe/neurosafe/internal/domain"
)

// Validate checks a candidate request against the input contract: text of
// at least domain.MinTextLength characters and an environment from the
// closed enumeration. It is pure and performs no I/O.
//
// Validation runs twice by design: at the UI layer for inline feedback and
// again inside Client.Analyze so no invalid request reaches the network
// boundary.
func Validate(req domain.AnalysisRequest) error {
	if utf8.RuneCountInString(req.Text) < domain.MinTextLength {
		return &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("text must be at least %d characters", domain.MinTextLength),
		}
	}
	if !req.Environment.Valid() {
		return &ValidationError{
			Field:   "environment",
			Message: fmt.Sprintf("environment must be one of %s, %s, %s", domain.EnvCalm, domain.EnvStressed, domain.EnvOverwhelmed),
		}
	}
	return nil
}
