package entities

import "time"

// Round is one asking of a question in a room. A question asked again in the same room
// is a new round with its own verdicts.
type Round struct {
	Question *Question
	AskedAt  time.Time // when the question was opened; identifies the round within the room
}

// Submission is a player's answer to the open question of a room.
type Submission struct {
	RoomID      int64     // chat the game is played in
	QuestionID  string    // question being answered
	AskedAt     time.Time // round the answer belongs to, see Round
	PlayerID    int64     // player who answered
	PlayerName  string    // display name of the player
	Answer      string    // raw answer text
	SubmittedAt time.Time // when the answer was received
}

// NewSubmission creates a submission stamped with the current time.
func NewSubmission(roomID int64, questionID string, playerID int64, playerName, answer string) Submission {
	return Submission{
		RoomID:      roomID,
		QuestionID:  questionID,
		PlayerID:    playerID,
		PlayerName:  playerName,
		Answer:      answer,
		SubmittedAt: time.Now(),
	}
}

// VerdictRecord is a verdict together with the submission it was produced for.
type VerdictRecord struct {
	ID int64
	Submission
	Verdict
	CorrectAnswer string
	Flagged       bool // answer contained blocked content and was not judged
	CreatedAt     time.Time
}

// PlayerScore is the number of accepted answers of a player in a room.
type PlayerScore struct {
	PlayerID   int64
	PlayerName string
	Accepted   int
}
