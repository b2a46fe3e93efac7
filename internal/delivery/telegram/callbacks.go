package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/spicy-vs-sweet/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	defer func() {
		if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			h.logger.Warn("callback answer error", zap.Error(err))
		}
	}()

	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionQuestion:
		_ = h.withErrorHandling(h.handleQuestion(data.param(0)))(ctx, chatID)

	case actionLang:
		h.handleLangCallback(chatID, cb.Message.MessageID, data.param(0))

	case actionReset:
		h.handleResetCallback(ctx, chatID, cb.Message.MessageID, data.param(0))

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}
}

func (h *Handler) handleLangCallback(chatID int64, messageID int, locale string) {
	err := h.game.SetLocale(chatID, locale)
	if errors.Is(err, service.ErrUnsupportedLocale) {
		h.send(newEdit(chatID, messageID, md(msgUnsupportedLocale)))
		return
	}
	if err != nil {
		h.logger.Error("set locale", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	edit := newEdit(chatID, messageID, md("Pick the question language:"))
	kb := buildLangKeyboard(h.bank.Locales(), locale)
	edit.ReplyMarkup = &kb
	h.send(edit)
}

func (h *Handler) handleResetCallback(ctx context.Context, chatID int64, messageID int, choice string) {
	if choice != resetConfirm {
		h.send(newEdit(chatID, messageID, md(msgResetCancelled)))
		return
	}

	if err := h.game.ResetRoom(ctx, chatID); err != nil {
		h.logger.Error("reset room", zap.Int64("chat_id", chatID), zap.Error(err))
		h.send(newEdit(chatID, messageID, md(msgInternalError)))
		return
	}

	h.send(newEdit(chatID, messageID, md(msgResetDone)))
}
