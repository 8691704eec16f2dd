package slack

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/urban-bracket/internal/metrics"
	"github.com/mauv0809/urban-bracket/internal/notifier"
	"github.com/mauv0809/urban-bracket/internal/pubsub"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	channelID, timestamp, err := s.api.PostMessageContext(
		context.Background(),
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err)
		return "", "", err
	}
	s.metrics.IncSlackNotifSent()
	return channelID, timestamp, nil
}

// SendQueueJoined announces a new queue membership to the channel.
func (s *Notifier) SendQueueJoined(event pubsub.QueueEvent, dryRun bool) error {
	headerText := slack.NewTextBlockObject(slack.PlainTextType, ":crossed_swords: Queue update", false, false)
	bodyText := slack.NewTextBlockObject(slack.MarkdownType,
		fmt.Sprintf("*%s* joined the *%s* queue.", displayName(event), event.BracketID), false, false)

	message := slack.NewBlockMessage(
		slack.NewHeaderBlock(headerText),
		slack.NewSectionBlock(bodyText, nil, nil),
	)

	_, _, err := s.sendMessage(message, dryRun)
	return err
}

// SendQueueLeft announces that a user left the queue, including how
// many entries were retired (more than one means a healed duplicate).
func (s *Notifier) SendQueueLeft(event pubsub.QueueEvent, dryRun bool) error {
	body := fmt.Sprintf("*%s* left the *%s* queue.", displayName(event), event.BracketID)
	if event.Deactivated > 1 {
		body = fmt.Sprintf("%s (%d stale entries cleared)", body, event.Deactivated)
	}
	bodyText := slack.NewTextBlockObject(slack.MarkdownType, body, false, false)

	message := slack.NewBlockMessage(
		slack.NewSectionBlock(bodyText, nil, nil),
	)

	_, _, err := s.sendMessage(message, dryRun)
	return err
}

func displayName(event pubsub.QueueEvent) string {
	if event.UserName != "" {
		return event.UserName
	}
	return event.UserID
}
