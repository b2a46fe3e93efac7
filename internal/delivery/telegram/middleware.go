package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/spicy-vs-sweet/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// userErrors are expected failures the player is told about in plain words.
var userErrors = []struct {
	err error
	msg string
}{
	{service.ErrJudgeUnavailable, msgJudgeUnavailable},
	{service.ErrNoOpenQuestion, msgNoOpenQuestion},
	{service.ErrQuestionOpen, msgQuestionOpen},
	{service.ErrAlreadyAnswered, msgAlreadyAnswered},
	{service.ErrUnknownCategory, msgUnknownCategory},
	{service.ErrNoQuestionsForRoom, msgNoQuestions},
	{service.ErrUnsupportedLocale, msgUnsupportedLocale},
}

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		for _, ue := range userErrors {
			if errors.Is(err, ue.err) {
				h.logger.Debug("handle user error",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
				h.sendError(chatID, ue.msg)
				return nil
			}
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}
