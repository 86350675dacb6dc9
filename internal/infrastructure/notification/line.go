package notification

import (
	"context"
	"fmt"
	"os"
	"sync"

	"tattooage/internal/pkg/logger"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// LineSender delivers reminder payloads as LINE push messages to the studio
// account configured via REMINDER_RECIPIENT_ID.
type LineSender struct {
	bot       *linebot.Client
	recipient string
	log       logger.Logger
}

var (
	lineSenderInstance *LineSender
	once               sync.Once
)

// NewLineSender creates a new singleton instance of the LINE sender.
// It reads credentials from environment variables.
func NewLineSender(log logger.Logger) *LineSender {
	once.Do(func() {
		channelSecret := os.Getenv("CHANNEL_SECRET")
		channelToken := os.Getenv("CHANNEL_ACCESS_TOKEN")
		recipient := os.Getenv("REMINDER_RECIPIENT_ID")

		if channelSecret == "" || channelToken == "" {
			log.Error("CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN environment variables must be set", nil)
			os.Exit(1)
		}
		if recipient == "" {
			log.Warn("REMINDER_RECIPIENT_ID environment variable not set, reminder pushes will fail until configured")
		}

		bot, err := linebot.New(channelSecret, channelToken)
		if err != nil {
			log.Error("Failed to create LINE Bot client", err)
			os.Exit(1)
		}
		log.Info("Successfully created LINE Bot client.")
		lineSenderInstance = &LineSender{
			bot:       bot,
			recipient: recipient,
			log:       log,
		}
	})
	return lineSenderInstance
}

// Push sends the reminder as a push message.
func (s *LineSender) Push(ctx context.Context, payload Payload) error {
	text := fmt.Sprintf("%s\n%s", payload.Title, payload.Body)
	if _, err := s.bot.PushMessage(s.recipient, linebot.NewTextMessage(text)).WithContext(ctx).Do(); err != nil {
		return err
	}
	s.log.Debug(fmt.Sprintf("Pushed reminder for appointment %d on channel %s", payload.AppointmentID, payload.Channel))
	return nil
}

// Probe verifies the channel credentials are accepted by the platform.
// Used by the permission gate as its authorization request.
func (s *LineSender) Probe(ctx context.Context) error {
	if _, err := s.bot.GetBotInfo().WithContext(ctx).Do(); err != nil {
		return err
	}
	return nil
}
