package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCollaborator is returned by NewDriver when a required
// collaborator is nil.
var ErrMissingCollaborator = errors.New("missing collaborator")

// CircularDependencyError reports a static import cycle. Chain starts and
// ends with the module that was requested while still being built.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular static dependency: %s", strings.Join(e.Chain, " -> "))
}
