package slack

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// ChatClient defines the chat operations the dispatcher needs.
// This allows for easy mocking and dependency injection in tests.
type ChatClient interface {
	PostMessage(ctx context.Context, channelID, text string) error
}

// Client posts messages through the Slack Web API.
type Client struct {
	api *slackapi.Client
}

// NewClient creates a Slack client from a bot token.
func NewClient(token string) *Client {
	return &Client{api: slackapi.New(token)}
}

// NewClientWithAPIURL creates a client against a custom API base URL (tests).
func NewClientWithAPIURL(token, apiURL string) *Client {
	return &Client{api: slackapi.New(token, slackapi.OptionAPIURL(apiURL))}
}

// PostMessage sends text verbatim to a channel. Link and media previews are
// disabled so long issue URLs and descriptions don't expand in the channel.
func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slackapi.MsgOptionText(text, false),
		slackapi.MsgOptionDisableLinkUnfurl(),
		slackapi.MsgOptionDisableMediaUnfurl(),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to channel %s: %w", channelID, err)
	}
	return nil
}

// Ensure Client implements ChatClient
var _ ChatClient = (*Client)(nil)
