/* models.go
 * This file contains the models used by the external package when fetching data from API-Football
 * Authors: Zachary Bower
 */

package external

import "github.com/tidwall/gjson"

// EndpointKind names which provider list a Query fetches
type EndpointKind string

const (
	Standings  EndpointKind = "standings"
	Fixtures   EndpointKind = "fixtures"
	Statistics EndpointKind = "statistics"
)

// Fixture status filters
const (
	StatusFinished   = "FT"
	StatusNotStarted = "NS"
)

// Query is a keyed fetch. League and season always come from the client
type Query struct {
	Kind EndpointKind
	// TeamID restricts the query to one team. Zero means every team in the league
	TeamID int
	Status string
}

// Team is the result of resolving a team name
type Team struct {
	ID   int
	Name string
	// Raw is the provider's team+venue record, used by the team stats card
	Raw gjson.Result
}
