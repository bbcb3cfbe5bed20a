package bot

import (
	"blackjack/internal/config"
	"blackjack/internal/history"
	"blackjack/internal/ledger"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	logger  *log.Logger
}

func New(cfg *config.Config, l ledger.Ledger, h history.Repository, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		handler: NewHandler(api, cfg, l, h, logger),
		logger:  logger.WithPrefix("bot"),
	}, nil
}

func (b *Bot) Run() error {
	b.logger.Info("bot started", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.CallbackQuery != nil {
			go b.handler.HandleCallback(update.CallbackQuery)
			continue
		}

		if update.Message != nil {
			go b.handler.HandleMessage(update.Message)
		}
	}

	return nil
}
