/* test_mocks.go
 * Contains mock structures for testing the API package and its consumers
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"sportsstats-bot/api/cards"
	"sportsstats-bot/api/external"
	"sportsstats-bot/api/shared"

	"github.com/tidwall/gjson"
	"go.mongodb.org/mongo-driver/mongo"
)

// region MockStore

// MockStore implements the store Interface for testing
type MockStore struct {
	// Storage for mock data
	Favorites map[string]shared.FavoriteTeam

	// Error injection for testing error paths
	SetFavoriteTeamError    error
	GetFavoriteTeamError    error
	DeleteFavoriteTeamError error

	DatabaseName string
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// NewMockStore creates a new MockStore with no favourites set
func NewMockStore() *MockStore {
	return &MockStore{
		Favorites:    make(map[string]shared.FavoriteTeam),
		DatabaseName: "test_db",
	}
}

// SetFavoriteTeam mock implementation
func (m *MockStore) SetFavoriteTeam(_ context.Context, favorite shared.FavoriteTeam) error {
	if m.SetFavoriteTeamError != nil {
		return m.SetFavoriteTeamError
	}
	m.Favorites[favorite.UserID] = favorite
	return nil
}

// GetFavoriteTeam mock implementation
func (m *MockStore) GetFavoriteTeam(_ context.Context, userID string) (shared.FavoriteTeam, error) {
	if m.GetFavoriteTeamError != nil {
		return shared.FavoriteTeam{}, m.GetFavoriteTeamError
	}
	favorite, ok := m.Favorites[userID]
	if !ok {
		return shared.FavoriteTeam{}, mongo.ErrNoDocuments
	}
	return favorite, nil
}

// DeleteFavoriteTeam mock implementation
func (m *MockStore) DeleteFavoriteTeam(_ context.Context, userID string) (bool, error) {
	if m.DeleteFavoriteTeamError != nil {
		return false, m.DeleteFavoriteTeamError
	}
	_, ok := m.Favorites[userID]
	delete(m.Favorites, userID)
	return ok, nil
}

// GetDatabase mock implementation
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return &mockDatabase{name: m.DatabaseName}
}

// mockClient implements minimal client interface
type mockClient struct{}

func (mc *mockClient) Disconnect(ctx context.Context) error {
	return nil
}

// GetClient mock implementation
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// endregion

// region MockProvider

// FixtureKey selects the fixture list a MockProvider returns
type FixtureKey struct {
	TeamID int
	Status string
}

// MockProvider implements Provider for testing. Every call is appended to Calls
type MockProvider struct {
	Standings   []gjson.Result
	Fixtures    map[FixtureKey][]gjson.Result
	Statistics  map[int]gjson.Result
	Predictions map[int]gjson.Result
	// Teams is keyed by lower case name
	Teams map[string]external.Team

	// Error injection for testing error paths
	FetchErrors  map[external.EndpointKind]error
	PredictError error
	ResolveError error

	mu    sync.Mutex
	Calls []string
}

// NewMockProvider creates an empty MockProvider
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Fixtures:    make(map[FixtureKey][]gjson.Result),
		Statistics:  make(map[int]gjson.Result),
		Predictions: make(map[int]gjson.Result),
		Teams:       make(map[string]external.Team),
		FetchErrors: make(map[external.EndpointKind]error),
	}
}

// AddTeam registers a team the provider can resolve
func (m *MockProvider) AddTeam(team external.Team) {
	m.Teams[strings.ToLower(team.Name)] = team
}

func (m *MockProvider) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// CallsWithPrefix returns the recorded calls starting with prefix
func (m *MockProvider) CallsWithPrefix(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, call := range m.Calls {
		if strings.HasPrefix(call, prefix) {
			out = append(out, call)
		}
	}
	return out
}

// Fetch mock implementation
func (m *MockProvider) Fetch(_ context.Context, q external.Query) ([]gjson.Result, error) {
	m.record(fmt.Sprintf("fetch:%s:%d:%s", q.Kind, q.TeamID, q.Status))
	if err := m.FetchErrors[q.Kind]; err != nil {
		return nil, err
	}
	switch q.Kind {
	case external.Standings:
		return m.Standings, nil
	case external.Fixtures:
		return m.Fixtures[FixtureKey{TeamID: q.TeamID, Status: q.Status}], nil
	case external.Statistics:
		stats, ok := m.Statistics[q.TeamID]
		if !ok {
			return []gjson.Result{}, nil
		}
		return []gjson.Result{stats}, nil
	default:
		return nil, fmt.Errorf("unknown endpoint kind %q", q.Kind)
	}
}

// Predict mock implementation
func (m *MockProvider) Predict(_ context.Context, fixtureID int) (gjson.Result, error) {
	m.record(fmt.Sprintf("predict:%d", fixtureID))
	if m.PredictError != nil {
		return gjson.Result{}, m.PredictError
	}
	return m.Predictions[fixtureID], nil
}

// ResolveTeam mock implementation
func (m *MockProvider) ResolveTeam(_ context.Context, name string) (external.Team, error) {
	m.record("resolve:" + name)
	if m.ResolveError != nil {
		return external.Team{}, m.ResolveError
	}
	team, ok := m.Teams[strings.ToLower(name)]
	if !ok {
		return external.Team{}, fmt.Errorf("%w: %q", shared.ErrUnknownTeam, name)
	}
	return team, nil
}

// endregion

// region RecordingSink

// RecordingSink implements cards.Sink and keeps every unit it is sent
type RecordingSink struct {
	mu    sync.Mutex
	Units []cards.Unit
	Err   error
}

// Send mock implementation
func (s *RecordingSink) Send(_ context.Context, unit cards.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Units = append(s.Units, unit)
	return s.Err
}

// Texts returns the text of every fragment of unit i
func (s *RecordingSink) Texts(i int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, f := range s.Units[i].Fragments {
		if f.Text != "" {
			out = append(out, f.Text)
		}
	}
	return out
}

// endregion
