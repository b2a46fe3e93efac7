package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot    BotAPI
	logger *zap.Logger
	game   GameService
	bank   QuestionBank
}

func NewHandler(bot BotAPI, logger *zap.Logger, game GameService, bank QuestionBank) *Handler {
	return &Handler{
		bot:    bot,
		logger: logger,
		game:   game,
		bank:   bank,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	m := update.Message
	chatID := m.Chat.ID

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", m.From.ID),
		zap.Bool("command", m.IsCommand()),
	)

	if !m.IsCommand() {
		// In group chats only replies to the bot count as answers.
		if !m.Chat.IsPrivate() && !h.isReplyToBot(m) {
			return
		}
		_ = h.withErrorHandling(h.handleAnswer(m.From, m.Text, false))(ctx, chatID)
		return
	}

	args := m.CommandArguments()

	switch m.Command() {
	case "start":
		h.send(newMessage(chatID, welcomeMarkdownV2()))

	case "help":
		h.send(newMessage(chatID, helpMarkdownV2()))

	case "question":
		_ = h.withErrorHandling(h.handleQuestion(args))(ctx, chatID)

	case "answer":
		_ = h.withErrorHandling(h.handleAnswer(m.From, args, true))(ctx, chatID)

	case "close":
		_ = h.withErrorHandling(h.handleClose())(ctx, chatID)

	case "score":
		_ = h.withErrorHandling(h.handleScore())(ctx, chatID)

	case "lang":
		_ = h.withErrorHandling(h.handleLang(args))(ctx, chatID)

	case "reset":
		msg := newPlainMessage(chatID, msgResetConfirmPrompt)
		msg.ReplyMarkup = buildResetKeyboard()
		h.send(msg)

	default:
		h.sendError(chatID, msgUnknownCommand)
	}
}

func (h *Handler) isReplyToBot(m *tgbotapi.Message) bool {
	return m.ReplyToMessage != nil && m.ReplyToMessage.From != nil && m.ReplyToMessage.From.IsBot
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
