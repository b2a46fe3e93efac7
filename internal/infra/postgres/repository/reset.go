package repository

import (
	"context"

	"github.com/aliskhannn/spicy-vs-sweet/internal/infra/postgres"
)

type ResetRepository struct {
	db postgres.DBTX
}

func NewResetRepository(db postgres.DBTX) *ResetRepository {
	return &ResetRepository{db: db}
}

// ResetRoom deletes every verdict and score of a room. Run it inside a transaction.
func (s *ResetRepository) ResetRoom(ctx context.Context, roomID int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM answer_verdicts WHERE room_id = $1`, roomID); err != nil {
		return postgres.Tag("delete answer_verdicts", err)
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM player_scores WHERE room_id = $1`, roomID); err != nil {
		return postgres.Tag("delete player_scores", err)
	}

	return nil
}
