package kinematics

import "github.com/pkg/errors"

var (
	// ErrUnreachablePose is returned when a pose has no inverse kinematics solution. Inverse itself reports
	// this as an empty SolutionSet; the error is used by callers that need exactly one solution.
	ErrUnreachablePose = errors.New("pose is unreachable")
	// ErrNoSelectableSolution is returned when the nearest solution is requested from an empty set.
	ErrNoSelectableSolution = errors.New("no solution to select from")
	// ErrInvalidGeometry is returned when link parameters cannot be solved with.
	ErrInvalidGeometry = errors.New("invalid link geometry")
)

// fieldPath joins a config path and a field name with a dot.
func fieldPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
