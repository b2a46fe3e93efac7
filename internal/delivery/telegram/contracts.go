package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type GameService interface {
	RoomLocale(roomID int64) string
	SetLocale(roomID int64, locale string) error
	OpenQuestion(ctx context.Context, roomID int64, category entities.Category) (*entities.Question, error)
	SubmitAnswer(ctx context.Context, sub entities.Submission) (*entities.VerdictRecord, error)
	CloseQuestion(ctx context.Context, roomID int64) (*entities.Question, []entities.VerdictRecord, error)
	Scoreboard(ctx context.Context, roomID int64) ([]entities.PlayerScore, error)
	ResetRoom(ctx context.Context, roomID int64) error
}

type QuestionBank interface {
	Locales() []string
}
