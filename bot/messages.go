/* messages.go
 * Contains the bot's fixed replies
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"strings"
)

const (
	mentionGreeting        = "How's it going? I hope you're having a great day! \nType *%shelp* to see available commands."
	welcomeMessage         = "Welcome! Type *%shelp* to see my commands!"
	homeUnavailableMessage = "Unable to load the home view. Please try again later."
)

// helpText lists every command. mention addresses the user who asked
func helpText(mention string, prefix string) string {
	var res strings.Builder
	if mention != "" {
		res.WriteString(fmt.Sprintf("Hi %s!\n\n", mention))
	}
	res.WriteString("Here are the currently available commands:\n")
	res.WriteString(fmt.Sprintf("*%sstandings*: Get current English Premier League (EPL) standings.\n", prefix))
	res.WriteString(fmt.Sprintf("*%steam [team_name]*: Get the current EPL standings for the specified team.\n", prefix))
	res.WriteString(fmt.Sprintf("*%spastgames*: Get details of the past 3 EPL games.\n", prefix))
	res.WriteString(fmt.Sprintf("*%spastgames [team_name]*: Get details of the past 3 games the specified team has played.\n", prefix))
	res.WriteString(fmt.Sprintf("*%snextgames*: Get details of the next 3 EPL games.\n", prefix))
	res.WriteString(fmt.Sprintf("*%snextgames [team_name]*: Get details of the next 3 games the specified team is scheduled to play.\n", prefix))
	res.WriteString(fmt.Sprintf("*%sfaveset [team name]*: Set (or change) your favorite EPL team. Favorite team is used to personalize the home view.\n", prefix))
	res.WriteString(fmt.Sprintf("*%sfaveget*: See your currently set favorite EPL team.\n", prefix))
	res.WriteString(fmt.Sprintf("*%sfavedel*: Delete your currently set favorite EPL team.\n", prefix))
	res.WriteString(fmt.Sprintf("*%shome*: Show the top of the table and the next games for your favorite team.\n", prefix))
	res.WriteString("Team names that contain two or more words can be wrapped in \" (e.g. \"Man United\")\n")
	res.WriteString("\n_Note_: When the bot recognizes a command, it will acknowledge it with a 👍 reaction to let you know the bot is working on it.")
	return res.String()
}

// Greeting is the reply to a mention that is not a command
func Greeting(prefix string) string {
	return fmt.Sprintf(mentionGreeting, prefix)
}

// Welcome greets a new member
func Welcome(prefix string) string {
	return fmt.Sprintf(welcomeMessage, prefix)
}
