package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
	"github.com/aliskhannn/spicy-vs-sweet/internal/infra/postgres"
)

// VerdictRepository provides access to stored answer verdicts.
type VerdictRepository struct {
	db postgres.DBTX
}

// NewVerdictRepository creates a new VerdictRepository on a pool or a transaction.
func NewVerdictRepository(db postgres.DBTX) *VerdictRepository {
	return &VerdictRepository{db: db}
}

// Insert stores the verdict and sets rec.ID and rec.CreatedAt. inserted is false when a
// verdict for the same round and player already exists; rec is left untouched then.
func (r *VerdictRepository) Insert(ctx context.Context, rec *entities.VerdictRecord) (inserted bool, err error) {
	query := `
		INSERT INTO answer_verdicts (
			room_id, question_id, asked_at, player_id, player_name, answer, correct_answer,
			accepted, matched_on, matched_alternative, flagged, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (room_id, question_id, asked_at, player_id) DO NOTHING
		RETURNING id, created_at
	`

	err = r.db.QueryRow(
		ctx,
		query,
		rec.RoomID,
		rec.QuestionID,
		rec.AskedAt,
		rec.PlayerID,
		rec.PlayerName,
		rec.Answer,
		rec.CorrectAnswer,
		rec.Accepted,
		string(rec.MatchedOn),
		rec.MatchedAlternative,
		rec.Flagged,
		rec.SubmittedAt,
	).Scan(&rec.ID, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, postgres.Tag("insert verdict", err)
	}

	return true, nil
}

// ListByRound returns the verdicts of one round of a question in a room, oldest first.
func (r *VerdictRepository) ListByRound(ctx context.Context, roomID int64, questionID string, askedAt time.Time) ([]entities.VerdictRecord, error) {
	query := `
		SELECT id, room_id, question_id, asked_at, player_id, player_name, answer, correct_answer,
		       accepted, matched_on, matched_alternative, flagged, submitted_at, created_at
		FROM answer_verdicts
		WHERE room_id = $1 AND question_id = $2 AND asked_at = $3
		ORDER BY submitted_at, id
	`

	rows, err := r.db.Query(ctx, query, roomID, questionID, askedAt)
	if err != nil {
		return nil, postgres.Tag("list verdicts", err)
	}
	defer rows.Close()

	var records []entities.VerdictRecord
	for rows.Next() {
		var (
			rec       entities.VerdictRecord
			matchedOn string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.RoomID,
			&rec.QuestionID,
			&rec.AskedAt,
			&rec.PlayerID,
			&rec.PlayerName,
			&rec.Answer,
			&rec.CorrectAnswer,
			&rec.Accepted,
			&matchedOn,
			&rec.MatchedAlternative,
			&rec.Flagged,
			&rec.SubmittedAt,
			&rec.CreatedAt,
		); err != nil {
			return nil, postgres.Tag("scan verdict", err)
		}
		rec.MatchedOn = entities.MatchKind(matchedOn)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.Tag("list verdicts", err)
	}

	return records, nil
}
