package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
	"github.com/aliskhannn/spicy-vs-sweet/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/spicy-vs-sweet/internal/infra/postgres/repository"
)

// VerdictStore persists verdicts together with the room scoreboard.
type VerdictStore struct {
	pool *pgxpool.Pool
	tr   *postgres.Transactor
}

// NewVerdictStore creates a new VerdictStore.
func NewVerdictStore(pool *pgxpool.Pool) *VerdictStore {
	return &VerdictStore{
		pool: pool,
		tr:   postgres.NewTransactor(pool),
	}
}

// Save stores the verdict and updates the player's score in one transaction.
// Saving the same round and player twice is a no-op reported as saved=false, so the
// call can be retried after a lost response.
func (s *VerdictStore) Save(ctx context.Context, rec *entities.VerdictRecord) (saved bool, err error) {
	err = s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		verdictRepo := pgrepo.NewVerdictRepository(tx)
		scoreRepo := pgrepo.NewScoreRepository(tx)

		inserted, err := verdictRepo.Insert(ctx, rec)
		if err != nil {
			return err
		}
		if !inserted {
			return nil
		}
		saved = true

		return scoreRepo.AddResult(ctx, rec.RoomID, rec.PlayerID, rec.PlayerName, rec.Accepted)
	})
	if err != nil {
		return false, err
	}

	return saved, nil
}

// ListByRound returns the verdicts of one round of a question in a room.
func (s *VerdictStore) ListByRound(ctx context.Context, roomID int64, questionID string, askedAt time.Time) ([]entities.VerdictRecord, error) {
	return pgrepo.NewVerdictRepository(s.pool).ListByRound(ctx, roomID, questionID, askedAt)
}

// Scoreboard returns the room's scores, best first.
func (s *VerdictStore) Scoreboard(ctx context.Context, roomID int64) ([]entities.PlayerScore, error) {
	return pgrepo.NewScoreRepository(s.pool).ListByRoom(ctx, roomID)
}

// ResetRoom forgets every verdict and score of a room.
func (s *VerdictStore) ResetRoom(ctx context.Context, roomID int64) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return pgrepo.NewResetRepository(tx).ResetRoom(ctx, roomID)
	})
}
