/* teams.go
 * Contains team name resolution against the provider's team directory
 * Authors: Zachary Bower
 */

package external

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"unicode/utf8"

	"sportsstats-bot/api/logic"
	"sportsstats-bot/api/shared"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// minSearchLength is the shortest name the provider's search parameter accepts
const minSearchLength = 3

// ResolveTeam turns a display name into a provider team
// Preconditions: Receives a team name typed by a user
// Postconditions: Returns the matching team, an error wrapping ErrUnknownTeam when nothing matches, or an error
// wrapping ErrUpstreamUnavailable if the lookup itself failed
func (c *Client) ResolveTeam(ctx context.Context, name string) (Team, error) {
	if name == "" {
		return Team{}, fmt.Errorf("%w: no team name given", shared.ErrUnknownTeam)
	}

	params := url.Values{}
	params.Set("name", name)
	response, err := c.get(ctx, "teams", params)
	if err != nil {
		return Team{}, err
	}
	candidates := response.Array()
	exact := len(candidates) > 0

	// The name lookup is exact, fall back to a search scoped to the league for partial names
	if len(candidates) == 0 && utf8.RuneCountInString(name) >= minSearchLength {
		params = url.Values{}
		params.Set("search", name)
		params.Set("league", strconv.Itoa(c.leagueID))
		params.Set("season", strconv.Itoa(c.Season()))
		response, err = c.get(ctx, "teams", params)
		if err != nil {
			return Team{}, err
		}
		candidates = response.Array()
	}

	team, ok := pickTeam(name, candidates, exact)
	if !ok {
		return Team{}, fmt.Errorf("%w: %q", shared.ErrUnknownTeam, name)
	}
	c.logger.Debug("resolved team", zap.String("input", name), zap.String("team", team.Name), zap.Int("team_id", team.ID))
	return team, nil
}

// pickTeam chooses the best candidate by name, ignoring candidates without a usable id. Candidates from an exact
// lookup are trusted even when the provider's spelling differs from the input
func pickTeam(name string, candidates []gjson.Result, exact bool) (Team, bool) {
	var teams []Team
	var names []string
	for _, candidate := range candidates {
		id := candidate.Get("team.id")
		teamName := candidate.Get("team.name")
		if id.Type != gjson.Number || id.Int() <= 0 || teamName.Type != gjson.String {
			continue
		}
		teams = append(teams, Team{ID: int(id.Int()), Name: teamName.String(), Raw: candidate})
		names = append(names, teamName.String())
	}

	idx, ok := logic.BestTeamMatch(name, names)
	if !ok {
		if exact && len(teams) > 0 {
			return teams[0], true
		}
		return Team{}, false
	}
	return teams[idx], true
}
