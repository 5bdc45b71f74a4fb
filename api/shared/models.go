/* models.go
 * This file contain the structs that are shared between sub packages
 * Authors: Zachary Bower
 */

package shared

// FavoriteTeam is the team a user has chosen to personalise the home view
type FavoriteTeam struct {
	UserID   string `bson:"userid" json:"user_id"`
	TeamName string `bson:"team_name" json:"team_name"`
	TeamID   int    `bson:"team_id" json:"team_id"`
}
