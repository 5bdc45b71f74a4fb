/* mock_session.go
 * Contains mock implementation of DiscordSession for testing
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"errors"
	"sync"

	"sportsstats-bot/api/cards"

	"github.com/bwmarrin/discordgo"
)

// MockDiscordSession implements DiscordSession for testing purposes
type MockDiscordSession struct {
	mu sync.Mutex
	// SentMessages stores all plain text messages sent during tests
	SentMessages []MockMessage
	// SentComplex stores all embed messages sent during tests
	SentComplex []MockComplexMessage
	// Reactions stores all reactions added during tests
	Reactions []MockReaction
	// Guilds is returned by Guild, keyed by ID
	Guilds map[string]*discordgo.Guild
	// ErrorToReturn allows tests to simulate errors
	ErrorToReturn error
}

// MockMessage represents a message sent to a channel
type MockMessage struct {
	ChannelID string
	Content   string
}

// MockComplexMessage represents an embed message sent to a channel
type MockComplexMessage struct {
	ChannelID string
	Embeds    []*discordgo.MessageEmbed
}

// MockReaction represents a reaction added to a message
type MockReaction struct {
	ChannelID string
	MessageID string
	Emoji     string
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.SentMessages = append(m.SentMessages, MockMessage{
		ChannelID: channelID,
		Content:   content,
	})

	return &discordgo.Message{
		ID:        "mock_message_id",
		ChannelID: channelID,
		Content:   content,
	}, nil
}

// ChannelMessageSendComplex implements DiscordSession.ChannelMessageSendComplex
func (m *MockDiscordSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.SentComplex = append(m.SentComplex, MockComplexMessage{ChannelID: channelID, Embeds: data.Embeds})
	return &discordgo.Message{ID: "mock_message_id", ChannelID: channelID, Embeds: data.Embeds}, nil
}

// MessageReactionAdd implements DiscordSession.MessageReactionAdd
func (m *MockDiscordSession) MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reactions = append(m.Reactions, MockReaction{ChannelID: channelID, MessageID: messageID, Emoji: emojiID})
	return nil
}

// Guild implements DiscordSession.Guild
func (m *MockDiscordSession) Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	guild, ok := m.Guilds[guildID]
	if !ok {
		return nil, errors.New("unknown guild")
	}
	return guild, nil
}

// GetLastMessage returns the last message sent, or empty MockMessage if none
func (m *MockDiscordSession) GetLastMessage() MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentMessages) == 0 {
		return MockMessage{}
	}
	return m.SentMessages[len(m.SentMessages)-1]
}

// ClearMessages clears all stored messages
func (m *MockDiscordSession) ClearMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = nil
	m.SentComplex = nil
	m.Reactions = nil
}

// NewMockDiscordSession creates a new MockDiscordSession for testing
func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{
		SentMessages: make([]MockMessage, 0),
		Guilds:       make(map[string]*discordgo.Guild),
	}
}

// MockResponder implements Responder for router tests
type MockResponder struct {
	mu           sync.Mutex
	Acknowledged int
	Replies      []string
	Units        []cards.Unit
	Err          error
}

// Acknowledge mock implementation
func (r *MockResponder) Acknowledge(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Acknowledged++
	return r.Err
}

// Reply mock implementation
func (r *MockResponder) Reply(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Replies = append(r.Replies, text)
	return r.Err
}

// Send mock implementation
func (r *MockResponder) Send(_ context.Context, unit cards.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Units = append(r.Units, unit)
	return r.Err
}
