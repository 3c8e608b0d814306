package notify

import (
	"medreminder/internal/config"

	"github.com/sirupsen/logrus"
)

// Notifier emits one user-visible alert. Implementations are allowed
// to fail; callers treat a failed emission like a denied notification
// permission and carry on.
type Notifier interface {
	Notify(title, body string) error
}

// LogNotifier writes alerts to the application log. It is the
// fallback channel when no external channel is configured.
type LogNotifier struct {
	Log *logrus.Logger
}

func (n *LogNotifier) Notify(title, body string) error {
	n.Log.WithField("title", title).Info(body)
	return nil
}

// New selects the alert channel: Telegram when credentials are
// configured, the log channel otherwise. A channel that cannot be set
// up degrades to log alerts rather than failing startup.
func New(cfg *config.AppConfig, log *logrus.Logger) Notifier {
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tn, err := NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.WithError(err).Warn("Telegram channel unavailable, falling back to log alerts")
		} else {
			log.Info("Using Telegram alert channel")
			return tn
		}
	}
	return &LogNotifier{Log: log}
}
