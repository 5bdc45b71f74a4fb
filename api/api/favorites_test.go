/* favorites_test.go
 * Contains unit tests for favorites.go and the favourite replies in messages.go
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"testing"

	"sportsstats-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region SetFavoriteTeam

func TestSetFavoriteTeam_Success(t *testing.T) {
	a, provider, favorites, _ := testAPI(t)
	provider.AddTeam(arsenal())

	favorite, err := a.SetFavoriteTeam(context.Background(), "user1", "arsenal")

	require.NoError(t, err)
	assert.Equal(t, shared.FavoriteTeam{UserID: "user1", TeamName: "Arsenal", TeamID: 42}, favorite)
	assert.Equal(t, favorite, favorites.Favorites["user1"])
	assert.Equal(t, "Your favorite team has been set to Arsenal", SetFavoriteReply(favorite, err))
}

func TestSetFavoriteTeam_UnknownTeamIsValidationFailure(t *testing.T) {
	a, _, favorites, _ := testAPI(t)

	favorite, err := a.SetFavoriteTeam(context.Background(), "user1", "Atlantis FC")

	assert.ErrorIs(t, err, shared.ErrUnknownTeam)
	assert.Empty(t, favorites.Favorites)
	assert.Equal(t, "Unable to set favorite team. Please ensure you have provided a valid EPL team name.", SetFavoriteReply(favorite, err))
}

func TestSetFavoriteTeam_EmptyName(t *testing.T) {
	a, provider, _, _ := testAPI(t)

	_, err := a.SetFavoriteTeam(context.Background(), "user1", "")

	assert.ErrorIs(t, err, shared.ErrUnknownTeam)
	assert.Empty(t, provider.Calls)
}

func TestSetFavoriteTeam_StorageFailureIsDistinct(t *testing.T) {
	a, provider, favorites, _ := testAPI(t)
	provider.AddTeam(arsenal())
	favorites.SetFavoriteTeamError = errors.New("write concern timeout")

	favorite, err := a.SetFavoriteTeam(context.Background(), "user1", "Arsenal")

	require.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrUnknownTeam)
	assert.Equal(t, "Unable to set favorite team. Please try again later.", SetFavoriteReply(favorite, err))
}

func TestSetFavoriteTeam_ProviderFailureIsNotValidation(t *testing.T) {
	a, provider, _, _ := testAPI(t)
	provider.ResolveError = errProviderDown

	favorite, err := a.SetFavoriteTeam(context.Background(), "user1", "Arsenal")

	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
	assert.Equal(t, "Unable to set favorite team. Please try again later.", SetFavoriteReply(favorite, err))
}

// endregion

// region GetFavoriteTeam

func TestGetFavoriteTeam(t *testing.T) {
	a, _, favorites, _ := testAPI(t)
	favorites.Favorites["user1"] = shared.FavoriteTeam{UserID: "user1", TeamName: "Arsenal", TeamID: 42}

	favorite, found, err := a.GetFavoriteTeam(context.Background(), "user1")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Your favorite team is currently set to Arsenal. Use *$faveset* to change it.", GetFavoriteReply(favorite, found, err, "$faveset"))
}

func TestGetFavoriteTeam_NotSet(t *testing.T) {
	a, _, _, _ := testAPI(t)

	favorite, found, err := a.GetFavoriteTeam(context.Background(), "user1")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "You currently do not have a favorite team set. Use *$faveset* to set it.", GetFavoriteReply(favorite, found, err, "$faveset"))
}

func TestGetFavoriteTeam_StoreFailure(t *testing.T) {
	a, _, favorites, _ := testAPI(t)
	favorites.GetFavoriteTeamError = errors.New("connection reset")

	favorite, found, err := a.GetFavoriteTeam(context.Background(), "user1")

	assert.Error(t, err)
	assert.False(t, found)
	assert.Equal(t, "Unable to get favorite team. Please try again later.", GetFavoriteReply(favorite, found, err, "$faveset"))
}

// endregion

// region DeleteFavoriteTeam

func TestDeleteFavoriteTeam(t *testing.T) {
	a, _, favorites, _ := testAPI(t)
	favorites.Favorites["user1"] = shared.FavoriteTeam{UserID: "user1", TeamName: "Arsenal", TeamID: 42}

	deleted, err := a.DeleteFavoriteTeam(context.Background(), "user1")

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, favorites.Favorites)
	assert.Equal(t, "Your favorite team has been removed.", DeleteFavoriteReply(deleted, err, "$faveset"))
}

func TestDeleteFavoriteTeam_NotSet(t *testing.T) {
	a, _, _, _ := testAPI(t)

	deleted, err := a.DeleteFavoriteTeam(context.Background(), "user1")

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, "You currently do not have a favorite team set. Use *$faveset* to set it.", DeleteFavoriteReply(deleted, err, "$faveset"))
}

func TestDeleteFavoriteTeam_StoreFailure(t *testing.T) {
	a, _, favorites, _ := testAPI(t)
	favorites.DeleteFavoriteTeamError = errors.New("connection reset")

	deleted, err := a.DeleteFavoriteTeam(context.Background(), "user1")

	assert.Error(t, err)
	assert.Equal(t, "Unable to remove favorite team. Please try again later.", DeleteFavoriteReply(deleted, err, "$faveset"))
}

// endregion
