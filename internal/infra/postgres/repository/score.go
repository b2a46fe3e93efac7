package repository

import (
	"context"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
	"github.com/aliskhannn/spicy-vs-sweet/internal/infra/postgres"
)

// ScoreRepository keeps per-room player scores.
type ScoreRepository struct {
	db postgres.DBTX
}

func NewScoreRepository(db postgres.DBTX) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// AddResult counts one answered question for the player, and one accepted answer if accepted.
func (r *ScoreRepository) AddResult(ctx context.Context, roomID, playerID int64, playerName string, accepted bool) error {
	query := `
		INSERT INTO player_scores (room_id, player_id, player_name, accepted, answered, updated_at)
		VALUES ($1, $2, $3, $4, 1, NOW())
		ON CONFLICT (room_id, player_id) DO UPDATE
		SET player_name = EXCLUDED.player_name,
		    accepted = player_scores.accepted + EXCLUDED.accepted,
		    answered = player_scores.answered + 1,
		    updated_at = NOW()
	`

	inc := 0
	if accepted {
		inc = 1
	}

	if _, err := r.db.Exec(ctx, query, roomID, playerID, playerName, inc); err != nil {
		return postgres.Tag("add score", err)
	}
	return nil
}

// ListByRoom returns the scores of a room, best first.
func (r *ScoreRepository) ListByRoom(ctx context.Context, roomID int64) ([]entities.PlayerScore, error) {
	query := `
		SELECT player_id, player_name, accepted
		FROM player_scores
		WHERE room_id = $1
		ORDER BY accepted DESC, answered ASC, player_id
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		return nil, postgres.Tag("list scores", err)
	}
	defer rows.Close()

	var scores []entities.PlayerScore
	for rows.Next() {
		var s entities.PlayerScore
		if err := rows.Scan(&s.PlayerID, &s.PlayerName, &s.Accepted); err != nil {
			return nil, postgres.Tag("scan score", err)
		}
		scores = append(scores, s)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.Tag("list scores", err)
	}

	return scores, nil
}
