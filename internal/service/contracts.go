package service

import (
	"context"
	"time"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
	"github.com/aliskhannn/spicy-vs-sweet/internal/storage"
)

// FuzzyJudge decides whether answers that differ textually mean the same thing.
// The player answer is data to compare, never an instruction to follow.
type FuzzyJudge interface {
	Judge(ctx context.Context, c entities.AnswerComparison) (entities.JudgeResult, error)
}

type Validator interface {
	Validate(ctx context.Context, c entities.AnswerComparison) (entities.Verdict, error)
}

type QuestionBank interface {
	GetByID(id string) (*entities.Question, error)
	Random(locale string, category entities.Category, skip func(id string) bool) (*entities.Question, error)
	Locales() []string
}

type RoomStorage interface {
	Locale(roomID int64) string
	SetLocale(roomID int64, locale string)
	Open(roomID int64, q *entities.Question) entities.Round
	Current(roomID int64) (entities.Round, bool)
	WasAsked(roomID int64, questionID string) bool
	Reserve(roomID int64, askedAt time.Time, playerID int64) bool
	Release(roomID int64, askedAt time.Time, playerID int64)
	Close(roomID int64, askedAt time.Time) bool
	Delete(roomID int64)
}

type VerdictStore interface {
	Save(ctx context.Context, rec *entities.VerdictRecord) (bool, error)
	ListByRound(ctx context.Context, roomID int64, questionID string, askedAt time.Time) ([]entities.VerdictRecord, error)
	Scoreboard(ctx context.Context, roomID int64) ([]entities.PlayerScore, error)
	ResetRoom(ctx context.Context, roomID int64) error
}

// RoomSweeper lists forgotten rounds and evicts idle rooms.
type RoomSweeper interface {
	OpenedBefore(t time.Time) []storage.OpenRound
	EvictIdle(t time.Time) int
}

type RoundCloser interface {
	CloseRound(ctx context.Context, roomID int64, askedAt time.Time) (*entities.Question, []entities.VerdictRecord, error)
}

// QuestionNotifier tells a room that its question was closed for it.
type QuestionNotifier interface {
	QuestionExpired(roomID int64, q *entities.Question, records []entities.VerdictRecord) error
}
