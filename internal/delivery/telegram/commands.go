package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

// handleQuestion opens a question of the requested category.
func (h *Handler) handleQuestion(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		q, err := h.game.OpenQuestion(ctx, chatID, parseCategory(args))
		if err != nil {
			return err
		}

		h.send(newMessage(chatID, formatQuestion(q)))
		return nil
	}
}

// handleAnswer submits text as the user's answer. Commands report an empty answer;
// plain messages without text are ignored.
func (h *Handler) handleAnswer(from *tgbotapi.User, text string, command bool) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text = strings.TrimSpace(text)
		if text == "" {
			if command {
				h.sendError(chatID, msgEmptyAnswer)
			}
			return nil
		}

		sub := entities.NewSubmission(chatID, "", from.ID, playerName(from), text)

		rec, err := h.game.SubmitAnswer(ctx, sub)
		if err != nil {
			return err
		}

		h.send(newMessage(chatID, formatVerdict(rec)))
		return nil
	}
}

// handleClose reveals the answer of the open question.
func (h *Handler) handleClose() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		q, records, err := h.game.CloseQuestion(ctx, chatID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, formatClosed(q, records))
		msg.ReplyMarkup = buildCategoryKeyboard()
		h.send(msg)
		return nil
	}
}

// handleScore shows the scoreboard.
func (h *Handler) handleScore() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		scores, err := h.game.Scoreboard(ctx, chatID)
		if err != nil {
			return err
		}

		h.send(newMessage(chatID, formatScoreboard(scores)))
		return nil
	}
}

// handleLang switches the locale when one is given, otherwise shows the picker.
func (h *Handler) handleLang(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		locale := strings.ToLower(strings.TrimSpace(args))
		if locale == "" {
			msg := newPlainMessage(chatID, "Pick the question language:")
			msg.ReplyMarkup = buildLangKeyboard(h.bank.Locales(), h.game.RoomLocale(chatID))
			h.send(msg)
			return nil
		}

		if err := h.game.SetLocale(chatID, locale); err != nil {
			return err
		}

		h.send(newPlainMessage(chatID, "Language set to "+strings.ToUpper(locale)+"."))
		return nil
	}
}
