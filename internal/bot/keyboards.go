package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shopspring/decimal"
)

const (
	CallbackPlayAgain = "play_again"
	CallbackBalance   = "balance"
	CallbackStats     = "stats"
)

func EndRoundKeyboard(lastBet decimal.Decimal) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🔄 Ещё (%s)", lastBet),
				CallbackPlayAgain,
			),
			tgbotapi.NewInlineKeyboardButtonData("💵 Баланс", CallbackBalance),
			tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", CallbackStats),
		),
	)
}
