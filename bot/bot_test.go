/* bot_test.go
 * Contains unit tests for bot.go functions
 * Authors: Zachary Bower
 */

package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// region startsWith tests

func TestStartsWith(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		substring string
		expected  bool
	}{
		{"exact match", "hello", "hello", true},
		{"prefix", "hello world", "hello", true},
		{"not at start", "world hello", "hello", false},
		{"not present", "hello world", "goodbye", false},
		{"empty substring", "hello", "", true},
		{"empty input", "", "hello", false},
		{"both empty", "", "", true},
		{"command prefix", "$help", "$", true},
		{"longer substring", "hi", "hello", false},
		{"case sensitive", "Hello", "hello", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, startsWith(tt.input, tt.substring))
		})
	}
}

// endregion

// region parseCommand tests

func TestParseCommand_NoArguments(t *testing.T) {
	command, args, ok := parseCommand("$standings", "$")

	assert.True(t, ok)
	assert.Equal(t, "standings", command)
	assert.Empty(t, args)
}

func TestParseCommand_CaseInsensitive(t *testing.T) {
	command, _, ok := parseCommand("$StAnDiNgS", "$")

	assert.True(t, ok)
	assert.Equal(t, "standings", command)
}

func TestParseCommand_Arguments(t *testing.T) {
	command, args, ok := parseCommand("  $team   man   united ", "$")

	assert.True(t, ok)
	assert.Equal(t, "team", command)
	assert.Equal(t, []string{"man", "united"}, args)
}

func TestParseCommand_QuotedArgument(t *testing.T) {
	command, args, ok := parseCommand(`$faveset "Nottingham Forest"`, "$")

	assert.True(t, ok)
	assert.Equal(t, "faveset", command)
	assert.Equal(t, "Nottingham Forest", titleCase(args[0]))
}

func TestParseCommand_MultiCharacterPrefix(t *testing.T) {
	command, _, ok := parseCommand("!EPL help", "!epl")

	assert.True(t, ok)
	assert.Equal(t, "help", command)
}

func TestParseCommand_NotACommand(t *testing.T) {
	tests := []string{"", "standings", "hello $help", "$", "$   "}
	for _, text := range tests {
		_, _, ok := parseCommand(text, "$")
		assert.False(t, ok, text)
	}
}

// endregion

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Man United", titleCase("man united"))
	assert.Equal(t, "West Ham", titleCase("WEST   ham"))
	assert.Equal(t, "", titleCase("   "))
}

func TestHelpText(t *testing.T) {
	text := helpText("<@123>", "$")

	assert.Contains(t, text, "Hi <@123>!")
	for _, command := range []string{"standings", "team", "pastgames", "nextgames", "faveset", "faveget", "favedel", "home"} {
		assert.Contains(t, text, "*$"+command)
	}
	assert.Contains(t, text, "👍")
	assert.NotContains(t, helpText("", "!"), "Hi")
}
