// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

// Error messages.
const (
	msgInternalError      = "Something went wrong. Please try again later."
	msgJudgeUnavailable   = "⏳ I couldn't check that answer right now. Please send it again in a moment."
	msgNoOpenQuestion     = "There is no open question. Use /question to get one."
	msgQuestionOpen       = "A question is already open. Answer it or /close it first."
	msgAlreadyAnswered    = "You have already answered this question."
	msgUnknownCategory    = "Unknown category. Use /question sweet or /question spicy."
	msgNoQuestions        = "There are no questions in this language yet. Try /lang."
	msgUnsupportedLocale  = "That language is not available. Use /lang to pick one."
	msgEmptyAnswer        = "Usage: /answer your answer"
	msgUnknownCommand     = "Unknown command. Use /help to see what I can do."
	msgNoScores           = "No points scored yet."
	msgResetConfirmPrompt = "Reset all scores of this chat?"
	msgResetDone          = "🗑 Scores reset."
	msgResetCancelled     = "Reset cancelled."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMarkdownV2 builds the welcome message.
func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("Spicy vs Sweet"))
	sb.WriteString(md(" is a trivia game for your chat."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Pick a "))
	sb.WriteString(bold("🍬 sweet"))
	sb.WriteString(md(" or a "))
	sb.WriteString(bold("🌶 spicy"))
	sb.WriteString(md(" question and reply with your answer. Typos and accents are forgiven."))
	sb.WriteString("\n\n")
	sb.WriteString(helpMarkdownV2())

	return sb.String()
}

// helpMarkdownV2 lists the commands.
func helpMarkdownV2() string {
	lines := []string{
		"/question [sweet|spicy] — open a question",
		"/answer <text> — answer the open question (a plain reply works too)",
		"/close — reveal the answer",
		"/score — show the scoreboard",
		"/lang — change the question language",
		"/reset — reset the scoreboard",
		"/help — show this message",
	}

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(md(l))
	}
	return sb.String()
}

func categoryLabel(c entities.Category) string {
	switch c {
	case entities.CategorySpicy:
		return "🌶 Spicy"
	case entities.CategorySweet:
		return "🍬 Sweet"
	default:
		return string(c)
	}
}

// formatQuestion formats an opened question.
func formatQuestion(q *entities.Question) string {
	return fmt.Sprintf("%s\n\n%s\n\n%s",
		bold(categoryLabel(q.Category)),
		md(q.Prompt),
		italic("Reply with your answer."),
	)
}

// formatVerdict formats the verdict of one submission. Flagged answers are never echoed.
func formatVerdict(rec *entities.VerdictRecord) string {
	name := md(rec.PlayerName)

	switch {
	case rec.Flagged:
		return fmt.Sprintf("🚫 %s%s", name, md(": that answer can't be accepted."))
	case !rec.Accepted:
		return fmt.Sprintf("❌ %s%s", name, md(": not quite."))
	case rec.MatchedOn == entities.MatchFuzzy:
		return fmt.Sprintf("✅ %s%s", name, md(": close enough, correct!"))
	default:
		return fmt.Sprintf("✅ %s%s", name, md(": correct!"))
	}
}

// formatClosed formats the reveal of a closed question.
func formatClosed(q *entities.Question, records []entities.VerdictRecord) string {
	var sb strings.Builder

	sb.WriteString(md("The answer was: "))
	sb.WriteString(bold(q.CorrectAnswer))

	var winners []string
	for _, r := range records {
		if r.Accepted {
			winners = append(winners, r.PlayerName)
		}
	}

	sb.WriteString("\n\n")
	if len(winners) == 0 {
		sb.WriteString(md("Nobody got it this time."))
	} else {
		sb.WriteString(md("Correct: " + strings.Join(winners, ", ")))
	}

	return sb.String()
}

// formatScoreboard formats the room's scoreboard.
func formatScoreboard(scores []entities.PlayerScore) string {
	if len(scores) == 0 {
		return md(msgNoScores)
	}

	var sb strings.Builder
	sb.WriteString(bold("🏆 Scoreboard"))
	sb.WriteString("\n")

	for i, s := range scores {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%d. %s — %d", i+1, s.PlayerName, s.Accepted)))
	}

	return sb.String()
}

// playerName returns how a Telegram user is shown in the game.
func playerName(u *tgbotapi.User) string {
	if u == nil {
		return "?"
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	if name == "" {
		name = fmt.Sprintf("player %d", u.ID)
	}
	return name
}
