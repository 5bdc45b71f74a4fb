/* team_match.go
 * Contains the logic for matching a user supplied team name against a list of candidate team names
 * Authors: Zachary Bower
 */

package logic

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// BestTeamMatch finds the candidate that best matches a team name typed by a user
// Preconditions: receives the user's input and the candidate team names returned by the provider
// Postconditions: returns the index of the matching candidate and true, or -1 and false if nothing matches.
// An exact (case-insensitive) match always wins, otherwise the closest fuzzy match is taken
func BestTeamMatch(name string, candidates []string) (int, bool) {
	name = strings.TrimSpace(name)
	if name == "" || len(candidates) == 0 {
		return -1, false
	}

	for i, candidate := range candidates {
		if strings.EqualFold(candidate, name) {
			return i, true
		}
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return -1, false
	}
	// Lower distance is a closer match. Ties keep provider order
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	return ranks[0].OriginalIndex, true
}

// NormaliseTeamName tidies a team name argument before it is sent to the provider
// Preconditions: receives the raw argument words
// Postconditions: returns the words joined by single spaces
func NormaliseTeamName(words []string) string {
	return strings.Join(strings.Fields(strings.Join(words, " ")), " ")
}
