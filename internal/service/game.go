package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/spicy-vs-sweet/internal/apperror"
	"github.com/aliskhannn/spicy-vs-sweet/internal/content"
	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
	"github.com/aliskhannn/spicy-vs-sweet/internal/metrics"
	"github.com/aliskhannn/spicy-vs-sweet/internal/repository"
	"github.com/aliskhannn/spicy-vs-sweet/internal/retry"
)

var (
	ErrNoOpenQuestion     = errors.New("no open question")
	ErrQuestionOpen       = errors.New("a question is already open")
	ErrAlreadyAnswered    = errors.New("player already answered this question")
	ErrUnsupportedLocale  = errors.New("unsupported locale")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrNoQuestionsForRoom = errors.New("no questions available")
)

// GameService runs the question/answer loop of a room.
type GameService struct {
	bank          QuestionBank
	rooms         RoomStorage
	validator     Validator
	store         VerdictStore
	retryOpts     retry.Options
	defaultLocale string
	logger        *zap.Logger
}

func NewGameService(
	bank QuestionBank,
	rooms RoomStorage,
	validator Validator,
	store VerdictStore,
	retryOpts retry.Options,
	defaultLocale string,
	logger *zap.Logger,
) *GameService {
	return &GameService{
		bank:          bank,
		rooms:         rooms,
		validator:     validator,
		store:         store,
		retryOpts:     retryOpts,
		defaultLocale: defaultLocale,
		logger:        logger,
	}
}

// RoomLocale returns the content locale of the room.
func (s *GameService) RoomLocale(roomID int64) string {
	if l := s.rooms.Locale(roomID); l != "" {
		return l
	}
	return s.defaultLocale
}

// SetLocale switches the room to another content language.
func (s *GameService) SetLocale(roomID int64, locale string) error {
	if !slices.Contains(s.bank.Locales(), locale) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}
	s.rooms.SetLocale(roomID, locale)
	return nil
}

// OpenQuestion picks a question not asked in the room yet and opens it.
// An empty category means any category. Once every question was asked, questions repeat.
func (s *GameService) OpenQuestion(ctx context.Context, roomID int64, category entities.Category) (*entities.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if _, open := s.rooms.Current(roomID); open {
		return nil, ErrQuestionOpen
	}

	locale := s.RoomLocale(roomID)

	q, err := s.bank.Random(locale, category, func(id string) bool {
		return s.rooms.WasAsked(roomID, id)
	})
	if errors.Is(err, repository.ErrNoQuestions) {
		q, err = s.bank.Random(locale, category, nil)
	}
	if errors.Is(err, repository.ErrNoQuestions) {
		return nil, ErrNoQuestionsForRoom
	}
	if err != nil {
		return nil, fmt.Errorf("pick question: %w", err)
	}

	round := s.rooms.Open(roomID, q)

	s.logger.Info("question opened",
		zap.Int64("room_id", roomID),
		zap.String("question_id", q.ID),
		zap.Time("asked_at", round.AskedAt),
		zap.String("locale", locale),
	)

	return q, nil
}

// SubmitAnswer validates the player's answer to the room's open question and stores the verdict.
// A player gets one verdict per round; if validation or storage fails, the player may submit again.
func (s *GameService) SubmitAnswer(ctx context.Context, sub entities.Submission) (*entities.VerdictRecord, error) {
	round, ok := s.rooms.Current(sub.RoomID)
	if !ok {
		return nil, ErrNoOpenQuestion
	}
	q := round.Question
	if sub.QuestionID == "" {
		sub.QuestionID = q.ID
	}
	if sub.QuestionID != q.ID {
		return nil, ErrNoOpenQuestion
	}
	sub.AskedAt = round.AskedAt

	if !s.rooms.Reserve(sub.RoomID, round.AskedAt, sub.PlayerID) {
		return nil, ErrAlreadyAnswered
	}

	rec, err := s.judge(ctx, q, sub)
	if err == nil {
		err = s.save(ctx, rec)
	}
	if err != nil {
		s.rooms.Release(sub.RoomID, round.AskedAt, sub.PlayerID)
		return nil, err
	}

	s.logger.Info("answer judged",
		zap.Int64("room_id", sub.RoomID),
		zap.String("question_id", q.ID),
		zap.Int64("player_id", sub.PlayerID),
		zap.Bool("accepted", rec.Accepted),
		zap.String("matched_on", string(rec.MatchedOn)),
		zap.Bool("flagged", rec.Flagged),
	)

	return rec, nil
}

func (s *GameService) judge(ctx context.Context, q *entities.Question, sub entities.Submission) (*entities.VerdictRecord, error) {
	rec := &entities.VerdictRecord{
		Submission:    sub,
		CorrectAnswer: q.CorrectAnswer,
	}

	// Blocked answers are never sent to the judge nor shown back.
	if content.IsBlocked(q.Locale, sub.Answer) {
		rec.Verdict = entities.Rejected()
		rec.Flagged = true
		metrics.VerdictsTotal.WithLabelValues(string(entities.MatchNone)).Inc()
		return rec, nil
	}

	verdict, err := s.validator.Validate(ctx, q.Comparison(sub.Answer))
	if err != nil {
		return nil, fmt.Errorf("validate answer: %w", err)
	}
	rec.Verdict = verdict

	return rec, nil
}

func (s *GameService) save(ctx context.Context, rec *entities.VerdictRecord) error {
	saved, err := retry.Do(ctx, func(ctx context.Context) (bool, error) {
		return s.store.Save(ctx, rec)
	}, s.storeRetryOptions("save verdict"))
	if err != nil {
		return fmt.Errorf("save verdict: %w", err)
	}

	if !saved {
		s.logger.Debug("verdict already stored",
			zap.Int64("room_id", rec.RoomID),
			zap.String("question_id", rec.QuestionID),
			zap.Time("asked_at", rec.AskedAt),
			zap.Int64("player_id", rec.PlayerID),
		)
	}

	return nil
}

// CloseQuestion closes the room's open question and returns it with its verdicts.
// The question stays open if its verdicts cannot be listed, so closing can be tried again.
func (s *GameService) CloseQuestion(ctx context.Context, roomID int64) (*entities.Question, []entities.VerdictRecord, error) {
	round, ok := s.rooms.Current(roomID)
	if !ok {
		return nil, nil, ErrNoOpenQuestion
	}
	return s.closeRound(ctx, roomID, round)
}

// CloseRound closes the round asked at askedAt if it is still the room's open one.
// It returns ErrNoOpenQuestion when the room moved on.
func (s *GameService) CloseRound(ctx context.Context, roomID int64, askedAt time.Time) (*entities.Question, []entities.VerdictRecord, error) {
	round, ok := s.rooms.Current(roomID)
	if !ok || !round.AskedAt.Equal(askedAt) {
		return nil, nil, ErrNoOpenQuestion
	}
	return s.closeRound(ctx, roomID, round)
}

func (s *GameService) closeRound(ctx context.Context, roomID int64, round entities.Round) (*entities.Question, []entities.VerdictRecord, error) {
	records, err := retry.Do(ctx, func(ctx context.Context) ([]entities.VerdictRecord, error) {
		return s.store.ListByRound(ctx, roomID, round.Question.ID, round.AskedAt)
	}, s.storeRetryOptions("list verdicts"))
	if err != nil {
		return nil, nil, fmt.Errorf("list verdicts: %w", err)
	}

	if !s.rooms.Close(roomID, round.AskedAt) {
		return nil, nil, ErrNoOpenQuestion
	}

	s.logger.Info("question closed",
		zap.Int64("room_id", roomID),
		zap.String("question_id", round.Question.ID),
		zap.Int("verdicts", len(records)),
	)

	return round.Question, records, nil
}

// Scoreboard returns the room's scores, best first.
func (s *GameService) Scoreboard(ctx context.Context, roomID int64) ([]entities.PlayerScore, error) {
	scores, err := retry.Do(ctx, func(ctx context.Context) ([]entities.PlayerScore, error) {
		return s.store.Scoreboard(ctx, roomID)
	}, s.storeRetryOptions("scoreboard"))
	if err != nil {
		return nil, fmt.Errorf("scoreboard: %w", err)
	}
	return scores, nil
}

// ResetRoom forgets the room's scores, verdicts and asked questions.
func (s *GameService) ResetRoom(ctx context.Context, roomID int64) error {
	err := retry.Run(ctx, func(ctx context.Context) error {
		return s.store.ResetRoom(ctx, roomID)
	}, s.storeRetryOptions("reset room"))
	if err != nil {
		return fmt.Errorf("reset room: %w", err)
	}

	s.rooms.Delete(roomID)
	return nil
}

func (s *GameService) storeRetryOptions(operation string) retry.Options {
	opts := s.retryOpts
	opts.ShouldRetry = apperror.Retryable
	opts.OnRetry = func(attempt int, err error) {
		metrics.RetriesTotal.WithLabelValues(operation).Inc()
		s.logger.Warn("storage attempt failed",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Stringer("kind", apperror.KindOf(err)),
			zap.Error(err),
		)
	}
	return opts
}
