package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"blackjack/internal/config"
	"blackjack/internal/game"
	"blackjack/internal/history"
	"blackjack/internal/ledger"
	"blackjack/internal/table"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

type Handler struct {
	bot     *tgbotapi.BotAPI
	cfg     *config.Config
	ledger  ledger.Ledger
	history history.Repository
	seats   *Manager
	logger  *log.Logger
}

func NewHandler(bot *tgbotapi.BotAPI, cfg *config.Config, l ledger.Ledger, h history.Repository, logger *log.Logger) *Handler {
	return &Handler{
		bot:     bot,
		cfg:     cfg,
		ledger:  l,
		history: h,
		seats:   NewManager(),
		logger:  logger.WithPrefix("handler"),
	}
}

// ============== ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ ==============

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.logger.Error("failed to send message", "chat_id", chatID, "err", err)
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error("failed to send message", "chat_id", chatID, "err", err)
	}
}

func (h *Handler) answerCallback(id, text string) {
	h.bot.Request(tgbotapi.NewCallback(id, text))
}

func accountID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// getSeat возвращает место за столом для чата, создавая счёт, сессию и шуз
// при первом обращении.
func (h *Handler) getSeat(ctx context.Context, chatID int64) (*seat, error) {
	if s := h.seats.Get(chatID); s != nil {
		return s, nil
	}

	if _, err := h.ledger.GetOrCreate(ctx, accountID(chatID), h.cfg.StartBalance); err != nil {
		return nil, err
	}

	session, err := h.history.CreateSession(ctx, accountID(chatID))
	if err != nil {
		return nil, err
	}

	shoe, err := game.NewShoe(h.cfg.ShoeDecks, h.cfg.ShoeThreshold,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return nil, err
	}

	s := &seat{
		table: table.New(shoe, h.ledger, h.history,
			table.Limits{MinBet: h.cfg.MinBet, MaxBet: h.cfg.MaxBet}, h.logger),
		session: session,
		lastBet: h.cfg.DefaultBet,
	}
	h.seats.Set(chatID, s)

	h.logger.Info("session started", "chat_id", chatID, "session_id", session.ID)
	return s, nil
}

// ============== ФОРМАТИРОВАНИЕ ==============

func formatHand(hand game.Hand) string {
	if hand.IsSoft() {
		return fmt.Sprintf("%s (мягкие %d)", strings.Join(hand.Strings(), " "), hand.BestTotal())
	}
	return fmt.Sprintf("%s (%d)", strings.Join(hand.Strings(), " "), hand.BestTotal())
}

func formatRound(round *history.Round) string {
	var verdict string
	switch round.Outcome {
	case game.OutcomeWin:
		if round.PlayerHand.IsBlackjack() {
			verdict = "🎰 Blackjack! Выплата x2.5"
		} else {
			verdict = "🎉 Вы выиграли!"
		}
	case game.OutcomeLoss:
		verdict = "😔 Вы проиграли"
	case game.OutcomePush:
		verdict = "🤝 Ничья, ставка возвращена"
	}

	msg := fmt.Sprintf("🎴 Вы: %s\n🃏 Дилер: %s\n\n%s",
		formatHand(round.PlayerHand), formatHand(round.DealerHand), verdict)

	if round.Payout.IsPositive() {
		msg += fmt.Sprintf("\n💰 Выплата: %s", round.Payout)
	}
	msg += fmt.Sprintf("\n💵 Баланс: %s", round.BalanceAfter)

	return msg
}

// ============== ОБРАБОТЧИКИ КОМАНД ==============

func (h *Handler) HandleStart(ctx context.Context, chatID int64) {
	s, err := h.getSeat(ctx, chatID)
	if err != nil {
		h.logger.Error("failed to open seat", "chat_id", chatID, "err", err)
		h.send(chatID, "❌ Ошибка. Попробуйте позже.")
		return
	}

	balance, err := h.ledger.Balance(ctx, accountID(chatID))
	if err != nil {
		h.send(chatID, "❌ Ошибка. Попробуйте позже.")
		return
	}

	h.send(chatID, fmt.Sprintf(
		"🎰 Добро пожаловать в Blackjack!\n\n"+
			"💵 Баланс: %s\n"+
			"🪑 Сессия: %s\n\n"+
			"/play <ставка> — играть\n"+
			"/balance — баланс\n"+
			"/stats — статистика сессии\n"+
			"/history — последние раунды\n"+
			"/quit — завершить сессию\n"+
			"/help — правила",
		balance, s.session.ID))
}

func (h *Handler) HandleHelp(chatID int64) {
	h.send(chatID,
		"📖 Правила Blackjack:\n\n"+
			"🎯 Цель: набрать больше очков, чем дилер, не перебрав 21\n\n"+
			"📊 Очки:\n"+
			"• 2-10 — номинал\n"+
			"• J, Q, K — 10\n"+
			"• A — 11 или 1\n\n"+
			"🃏 Дилер берёт карты до 17\n"+
			"🎰 Blackjack платит x2.5\n"+
			fmt.Sprintf("💵 Ставка от %s до %s", h.cfg.MinBet, h.cfg.MaxBet))
}

func (h *Handler) HandlePlay(ctx context.Context, chatID int64, args []string) {
	s, err := h.getSeat(ctx, chatID)
	if err != nil {
		h.send(chatID, "❌ Ошибка. Попробуйте позже.")
		return
	}

	bet := s.bet()
	if len(args) > 0 {
		parsed, err := decimal.NewFromString(args[0])
		if err != nil {
			h.send(chatID, fmt.Sprintf("❌ Неверная ставка. Пример: /play %s", h.cfg.DefaultBet))
			return
		}
		bet = parsed
	}

	h.playRound(ctx, chatID, s, bet)
}

func (h *Handler) playRound(ctx context.Context, chatID int64, s *seat, bet decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.table.PlayRound(ctx, s.session.ID, bet)

	switch {
	case err == nil:
		s.lastBet = bet
		h.sendWithKeyboard(chatID, formatRound(round), EndRoundKeyboard(s.lastBet))

	case errors.Is(err, table.ErrRoundNotRecorded):
		// Итог уже на балансе, запись раунда догоним позже.
		s.lastBet = bet
		h.sendWithKeyboard(chatID, formatRound(round)+"\n\n⚠️ Раунд не записан в историю",
			EndRoundKeyboard(s.lastBet))

	case errors.Is(err, table.ErrInvalidBet):
		h.send(chatID, fmt.Sprintf("❌ Ставка от %s до %s", h.cfg.MinBet, h.cfg.MaxBet))

	case errors.Is(err, ledger.ErrInsufficientFunds):
		balance, balErr := h.ledger.Balance(ctx, accountID(chatID))
		if balErr != nil {
			h.send(chatID, "❌ Недостаточно средств!")
			return
		}
		h.send(chatID, fmt.Sprintf("❌ Недостаточно средств! Баланс: %s", balance))

	case errors.Is(err, history.ErrSessionNotActive):
		h.seats.Delete(chatID)
		h.send(chatID, "🪑 Сессия завершена. /start — начать новую")

	default:
		h.logger.Error("round failed", "chat_id", chatID, "err", err)
		h.send(chatID, "❌ Ошибка. Попробуйте позже.")
	}
}

func (h *Handler) HandleBalance(ctx context.Context, chatID int64) {
	balance, err := h.ledger.Balance(ctx, accountID(chatID))
	if errors.Is(err, ledger.ErrAccountNotFound) {
		h.send(chatID, "🪑 Вы ещё не за столом. /start")
		return
	}
	if err != nil {
		h.send(chatID, "❌ Ошибка")
		return
	}

	h.send(chatID, fmt.Sprintf("💰 Баланс: %s", balance))
}

func (h *Handler) HandleStats(ctx context.Context, chatID int64) {
	s := h.seats.Get(chatID)
	if s == nil {
		h.send(chatID, "🪑 Вы ещё не за столом. /start")
		return
	}

	stats, err := h.history.SessionStats(ctx, s.session.ID)
	if err != nil {
		h.send(chatID, "❌ Ошибка")
		return
	}

	h.send(chatID, fmt.Sprintf(
		"📊 Статистика сессии:\n\n"+
			"🎮 Раундов: %d\n"+
			"✅ Побед: %d\n"+
			"❌ Поражений: %d\n"+
			"🤝 Ничьих: %d\n"+
			"💸 Поставлено: %s\n"+
			"💰 Выплачено: %s",
		stats.RoundsPlayed, stats.Wins, stats.Losses, stats.Pushes,
		stats.TotalWagered, stats.TotalPayout))
}

func (h *Handler) HandleHistory(ctx context.Context, chatID int64) {
	s := h.seats.Get(chatID)
	if s == nil {
		h.send(chatID, "🪑 Вы ещё не за столом. /start")
		return
	}

	rounds, err := h.history.SessionRounds(ctx, s.session.ID)
	if err != nil {
		h.send(chatID, "❌ Ошибка")
		return
	}
	if len(rounds) == 0 {
		h.send(chatID, "📜 В этой сессии ещё не было раундов")
		return
	}

	if len(rounds) > 5 {
		rounds = rounds[len(rounds)-5:]
	}

	var sb strings.Builder
	sb.WriteString("📜 Последние раунды:\n\n")
	for _, r := range rounds {
		sb.WriteString(fmt.Sprintf("%s %s против %s — %s (ставка %s, выплата %s)\n",
			outcomeEmoji(r.Outcome), formatHand(r.PlayerHand), formatHand(r.DealerHand),
			r.Outcome, r.Bet, r.Payout))
	}

	h.send(chatID, sb.String())
}

func outcomeEmoji(outcome game.Outcome) string {
	switch outcome {
	case game.OutcomeWin:
		return "✅"
	case game.OutcomeLoss:
		return "❌"
	default:
		return "🤝"
	}
}

func (h *Handler) HandleQuit(ctx context.Context, chatID int64) {
	s := h.seats.Get(chatID)
	if s == nil {
		h.send(chatID, "🪑 Вы и так не за столом")
		return
	}

	if err := h.history.CompleteSession(ctx, s.session.ID); err != nil {
		h.logger.Error("failed to complete session", "chat_id", chatID, "err", err)
		h.send(chatID, "❌ Ошибка")
		return
	}
	h.seats.Delete(chatID)

	h.send(chatID, "👋 Сессия завершена. /start — сесть за стол снова")
}

// ============== РОУТИНГ ==============

func (h *Handler) HandleMessage(message *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chatID := message.Chat.ID
	args := strings.Fields(message.CommandArguments())

	switch message.Command() {
	case "start":
		h.HandleStart(ctx, chatID)
	case "help":
		h.HandleHelp(chatID)
	case "play":
		h.HandlePlay(ctx, chatID, args)
	case "balance":
		h.HandleBalance(ctx, chatID)
	case "stats":
		h.HandleStats(ctx, chatID)
	case "history":
		h.HandleHistory(ctx, chatID)
	case "quit":
		h.HandleQuit(ctx, chatID)
	default:
		h.send(chatID, "🤷 Неизвестная команда. /help")
	}
}

func (h *Handler) HandleCallback(callback *tgbotapi.CallbackQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chatID := callback.Message.Chat.ID

	switch callback.Data {
	case CallbackPlayAgain:
		h.answerCallback(callback.ID, "")
		s := h.seats.Get(chatID)
		if s == nil {
			h.send(chatID, "🪑 Вы ещё не за столом. /start")
			return
		}
		h.playRound(ctx, chatID, s, s.bet())
	case CallbackBalance:
		h.answerCallback(callback.ID, "")
		h.HandleBalance(ctx, chatID)
	case CallbackStats:
		h.answerCallback(callback.ID, "")
		h.HandleStats(ctx, chatID)
	default:
		h.answerCallback(callback.ID, "🤷")
	}
}
