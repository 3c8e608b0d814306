package notify

import (
	"time"

	"gopkg.in/telebot.v3"
)

// TelegramNotifier delivers alerts to a single chat via a bot. The
// bot is used for sending only; no update polling is started.
type TelegramNotifier struct {
	bot    *telebot.Bot
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(title, body string) error {
	_, err := n.bot.Send(&telebot.User{ID: n.chatID}, title+"\n"+body)
	return err
}
