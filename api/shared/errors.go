/* errors.go
 * Contains the error kinds that every stage of the command pipeline reports. Stages wrap one of these
 * with fmt.Errorf("%w: ...") and the orchestrator branches on them with errors.Is
 * Authors: Zachary Bower
 */

package shared

import "errors"

var (
	// ErrUpstreamUnavailable is returned when the football API cannot be reached or answers with an error
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMalformedUpstreamData is returned when a provider record is missing a field or has the wrong shape
	ErrMalformedUpstreamData = errors.New("malformed upstream data")
	// ErrUnknownTeam is returned when a team name does not resolve to a provider team
	ErrUnknownTeam = errors.New("unknown team")
	// ErrRenderFailure is returned when a card cannot be built from a record
	ErrRenderFailure = errors.New("render failure")
)

// Kind returns a short label for the error kind wrapped by err, used for logs and metrics
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnknownTeam):
		return "unknown_team"
	case errors.Is(err, ErrMalformedUpstreamData):
		return "malformed_data"
	case errors.Is(err, ErrRenderFailure):
		return "render_failure"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "upstream_unavailable"
	default:
		return "error"
	}
}
