// Package domain holds the assistant's value types and the ports it reaches
// its collaborators through
package domain

import (
	"context"
	"time"

	"pbl/internal/core/intent"
	pnet "pbl/internal/platform/net"
)

// User is the acting user as the assistant sees it. A nil *User is anonymous
type User struct {
	ID          string
	DisplayName string
	Email       string
	Department  string
	IsAdmin     bool
}

// UserFrom converts a request identity; anonymous identities give nil
func UserFrom(id pnet.Identity) *User {
	if id.Anonymous() {
		return nil
	}
	return &User{
		ID:          id.ID,
		DisplayName: id.Name,
		Email:       id.Email,
		Department:  id.Department,
		IsAdmin:     id.IsAdmin(),
	}
}

// Command is one line of user input and who typed or said it
type Command struct {
	Text string
	User *User
}

// Owner is the reminder owner for the command, "" when anonymous
func (c Command) Owner() string {
	if c.User == nil {
		return ""
	}
	return c.User.ID
}

// Department is the user's department, "" when anonymous or unset
func (c Command) Department() string {
	if c.User == nil {
		return ""
	}
	return c.User.Department
}

// Reminder is one entry of the append-only reminder list. Time is the literal
// the user typed and is never parsed
type Reminder struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner,omitempty"`
	Task      string    `json:"task"`
	Time      string    `json:"time"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// Notice is the part of a notice the reply generator reads
type Notice struct {
	Title      string
	Department string
	Priority   string
	CreatedAt  time.Time
}

// HighPriority marks notices listed with the alarm icon
const HighPriority = "high"

// Reply is the outcome of one dispatched command
type Reply struct {
	Intent intent.Intent `json:"intent"`
	Text   string        `json:"reply"`
}

// Event is what the dispatcher reports for every command
type Event struct {
	At         time.Time
	Intent     intent.Intent
	Department string
	Channel    string
	Latency    time.Duration
	Failed     bool
}

// Channels a command can arrive on
const (
	ChannelAPI   = "api"
	ChannelVoice = "voice"
	ChannelCLI   = "cli"
)

type ctxKey int

const keyChannel ctxKey = iota

// WithChannel tags ctx with the channel commands on it arrive through
func WithChannel(ctx context.Context, ch string) context.Context {
	return context.WithValue(ctx, keyChannel, ch)
}

// ChannelFrom returns the channel set by WithChannel, ChannelAPI by default
func ChannelFrom(ctx context.Context) string {
	if ch, ok := ctx.Value(keyChannel).(string); ok && ch != "" {
		return ch
	}
	return ChannelAPI
}
