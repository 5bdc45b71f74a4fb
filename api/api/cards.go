/* cards.go
 * Contains the card commands. Each one runs the same pipeline: resolve the team (when one is named), fetch, window,
 * extract and render every record, then emit. Every record is rendered before anything is sent, so a bad record
 * produces one error message instead of a partial card
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"

	"sportsstats-bot/api/cards"
	"sportsstats-bot/api/external"
	"sportsstats-bot/api/logic"
	"sportsstats-bot/api/records"
	"sportsstats-bot/api/shared"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// errNoTeamName is returned when a command that needs a team was given an empty name
var errNoTeamName = fmt.Errorf("%w: no team name given", shared.ErrUnknownTeam)

// card is a fully rendered card waiting to be emitted
type card struct {
	header string
	// empty replaces the records when the window is empty
	empty   string
	records []cards.Sequence
}

// Standings sends the full league table, five teams per message
// Preconditions: Receives the sink and destination channel to send to
// Postconditions: The table, or exactly one error message, has been sent. The returned error wraps the failure kind
func (a *API) Standings(ctx context.Context, sink cards.Sink, destination string) error {
	c, err := a.standingsCard(ctx, logic.Unbounded)
	if err != nil {
		return a.fail(ctx, sink, destination, standingsText, err)
	}
	return a.send(ctx, sink, destination, standingsText, c)
}

// TeamStats sends a team's season stats followed by its recent games
// Preconditions: Receives the sink, destination channel and the team name typed by the user
// Postconditions: Two cards, or error messages in their place, have been sent. An unknown team sends one message
func (a *API) TeamStats(ctx context.Context, sink cards.Sink, destination string, name string) error {
	team, err := a.resolve(ctx, name)
	if err != nil {
		return a.fail(ctx, sink, destination, teamStatsText, err)
	}

	var statsErr error
	c, err := a.teamStatsCard(ctx, team)
	if err != nil {
		statsErr = a.fail(ctx, sink, destination, teamStatsText, err)
	} else {
		statsErr = a.send(ctx, sink, destination, teamStatsText, c)
	}

	games, err := a.pastGamesCard(ctx, &team)
	if err != nil {
		return errors.Join(statsErr, a.fail(ctx, sink, destination, pastGamesText, err))
	}
	return errors.Join(statsErr, a.send(ctx, sink, destination, pastGamesText, games))
}

// PastGames sends the three most recent finished games, for one team or the whole league when name is empty
func (a *API) PastGames(ctx context.Context, sink cards.Sink, destination string, name string) error {
	var team *external.Team
	if name != "" {
		resolved, err := a.resolve(ctx, name)
		if err != nil {
			return a.fail(ctx, sink, destination, pastGamesText, err)
		}
		team = &resolved
	}

	c, err := a.pastGamesCard(ctx, team)
	if err != nil {
		return a.fail(ctx, sink, destination, pastGamesText, err)
	}
	return a.send(ctx, sink, destination, pastGamesText, c)
}

// NextGames sends the next three scheduled games with a predicted winner each, for one team or the whole league
func (a *API) NextGames(ctx context.Context, sink cards.Sink, destination string, name string) error {
	var team *external.Team
	if name != "" {
		resolved, err := a.resolve(ctx, name)
		if err != nil {
			return a.fail(ctx, sink, destination, nextGamesText, err)
		}
		team = &resolved
	}

	c, err := a.upcomingGamesCard(ctx, team)
	if err != nil {
		return a.fail(ctx, sink, destination, nextGamesText, err)
	}
	return a.send(ctx, sink, destination, nextGamesText, c)
}

// region card builders

func (a *API) standingsCard(ctx context.Context, limit int) (card, error) {
	rows, err := a.Provider.Fetch(ctx, external.Query{Kind: external.Standings})
	if err != nil {
		return card{}, err
	}
	rendered, err := renderAll(logic.TopN(rows, limit), func(raw gjson.Result) (records.Record, error) {
		return records.Extract(records.KindStandingsRow, raw, gjson.Result{})
	})
	if err != nil {
		return card{}, err
	}

	header := fmt.Sprintf("Current %s Standings", a.LeagueName)
	if limit >= 0 {
		header = fmt.Sprintf("Current %s Top %d", a.LeagueName, limit)
	}
	return card{header: header, empty: noStandingsMessage, records: rendered}, nil
}

func (a *API) teamStatsCard(ctx context.Context, team external.Team) (card, error) {
	stats, err := a.Provider.Fetch(ctx, external.Query{Kind: external.Statistics, TeamID: team.ID})
	if err != nil {
		return card{}, err
	}
	if len(stats) == 0 {
		return card{}, fmt.Errorf("%w: no statistics for team %d", shared.ErrMalformedUpstreamData, team.ID)
	}
	rendered, err := renderAll(stats[:1], func(raw gjson.Result) (records.Record, error) {
		return records.Extract(records.KindTeamStats, raw, team.Raw)
	})
	if err != nil {
		return card{}, err
	}
	return card{header: fmt.Sprintf("Current %s Stats for %s", a.LeagueName, team.Name), records: rendered}, nil
}

func (a *API) pastGamesCard(ctx context.Context, team *external.Team) (card, error) {
	q := external.Query{Kind: external.Fixtures, Status: external.StatusFinished}
	header := fmt.Sprintf("Recent %s Games", a.LeagueName)
	teamName := ""
	if team != nil {
		q.TeamID = team.ID
		teamName = team.Name
		header = fmt.Sprintf("Recent Games Played by %s", team.Name)
	}

	fixtures, err := a.Provider.Fetch(ctx, q)
	if err != nil {
		return card{}, err
	}
	rendered, err := renderAll(logic.LatestN(fixtures, GamesWindow), func(raw gjson.Result) (records.Record, error) {
		return records.Extract(records.KindPastGame, raw, gjson.Result{})
	})
	if err != nil {
		return card{}, err
	}
	return card{header: header, empty: pastGamesEmpty(teamName), records: rendered}, nil
}

func (a *API) upcomingGamesCard(ctx context.Context, team *external.Team) (card, error) {
	q := external.Query{Kind: external.Fixtures, Status: external.StatusNotStarted}
	header := fmt.Sprintf("Upcoming %s Games", a.LeagueName)
	teamName := ""
	if team != nil {
		q.TeamID = team.ID
		teamName = team.Name
		header = fmt.Sprintf("Upcoming Games Featuring %s", team.Name)
	}

	fixtures, err := a.Provider.Fetch(ctx, q)
	if err != nil {
		return card{}, err
	}
	rendered, err := renderAll(logic.SoonestN(fixtures, GamesWindow), func(raw gjson.Result) (records.Record, error) {
		return records.Extract(records.KindFutureGame, raw, a.prediction(ctx, raw))
	})
	if err != nil {
		return card{}, err
	}
	return card{header: header, empty: upcomingGamesEmpty(teamName), records: rendered}, nil
}

// prediction looks up the prediction for a fixture. A failed lookup returns an empty result, which extracts as
// the unavailable marker
func (a *API) prediction(ctx context.Context, fixture gjson.Result) gjson.Result {
	id := fixture.Get("fixture.id")
	if id.Type != gjson.Number || id.Int() <= 0 {
		return gjson.Result{}
	}
	prediction, err := a.Provider.Predict(ctx, int(id.Int()))
	if err != nil {
		a.Logger.Warn("prediction lookup failed", zap.Int64("fixture_id", id.Int()), zap.Error(err))
		return gjson.Result{}
	}
	return prediction
}

// endregion

// renderAll extracts and renders every windowed item, stopping at the first failure
func renderAll(items []gjson.Result, extract func(gjson.Result) (records.Record, error)) ([]cards.Sequence, error) {
	rendered := make([]cards.Sequence, 0, len(items))
	for i, raw := range items {
		rec, err := extract(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		seq, err := cards.Render(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rendered = append(rendered, seq)
	}
	return rendered, nil
}

// resolve turns a user supplied team name into a provider team
func (a *API) resolve(ctx context.Context, name string) (external.Team, error) {
	name = logic.NormaliseTeamName([]string{name})
	if name == "" {
		return external.Team{}, errNoTeamName
	}
	return a.Provider.ResolveTeam(ctx, name)
}

// compose feeds a card into an emitter
func compose(ctx context.Context, e *cards.Emitter, c card) error {
	e.Prelude(cards.Header(c.header))
	if len(c.records) == 0 && c.empty != "" {
		e.Prelude(cards.Notice(c.empty))
	}
	for _, seq := range c.records {
		if err := e.Add(ctx, seq); err != nil {
			return err
		}
	}
	return nil
}

// send emits a rendered card through sink
func (a *API) send(ctx context.Context, sink cards.Sink, destination string, text cardText, c card) error {
	e := cards.NewEmitter(sink, destination, text.fallback, a.emitterOptions()...)
	if err := compose(ctx, e, c); err != nil {
		e.Close(ctx)
		return a.fail(ctx, sink, destination, text, err)
	}
	e.Close(ctx)
	a.Logger.Info("card sent",
		zap.String("operation", text.op),
		zap.String("destination", destination),
		zap.Int("records", len(c.records)),
		zap.Int("units", e.Sent()))
	return nil
}

// build composes a card in return mode
func (a *API) build(ctx context.Context, c card) cards.Sequence {
	e := cards.NewCardBuilder(a.emitterOptions()...)
	// Return mode never rejects a record
	_ = compose(ctx, e, c)
	return e.Close(ctx)
}

func (a *API) emitterOptions() []cards.Option {
	return []cards.Option{
		cards.WithLogger(a.Logger),
		cards.WithSentHook(a.Metrics.RecordOutbound),
	}
}

// fail logs err and sends the one error message matching its kind
func (a *API) fail(ctx context.Context, sink cards.Sink, destination string, text cardText, err error) error {
	message := text.unavailable
	switch {
	case errors.Is(err, shared.ErrMalformedUpstreamData), errors.Is(err, shared.ErrRenderFailure):
		message = text.malformed
	case errors.Is(err, errNoTeamName):
		message = UnknownTeamMessage
	}

	a.Logger.Error("command failed",
		zap.String("operation", text.op),
		zap.String("destination", destination),
		zap.String("kind", shared.Kind(err)),
		zap.Error(err))
	cards.Send(ctx, sink, destination, ErrorFallback, cards.Notice(message), a.emitterOptions()...)
	return err
}
