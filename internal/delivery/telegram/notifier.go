package telegram

import (
	"fmt"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

// QuestionExpired reveals the answer of a question the room left open too long.
func (h *Handler) QuestionExpired(roomID int64, q *entities.Question, records []entities.VerdictRecord) error {
	text := md("⏰ Time's up!") + "\n\n" + formatClosed(q, records)

	msg := newMessage(roomID, text)
	msg.ReplyMarkup = buildCategoryKeyboard()

	if _, err := h.bot.Send(msg); err != nil {
		return fmt.Errorf("send expired question to %d: %w", roomID, err)
	}
	return nil
}
