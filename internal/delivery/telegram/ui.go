package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

var localeFlags = map[string]string{
	"de": "🇩🇪",
	"en": "🇬🇧",
	"es": "🇪🇸",
	"fr": "🇫🇷",
	"pt": "🇵🇹",
}

// buildCategoryKeyboard offers the next question by category.
func buildCategoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍬 Sweet", buildQuestionCallback(entities.CategorySweet)),
			tgbotapi.NewInlineKeyboardButtonData("🌶 Spicy", buildQuestionCallback(entities.CategorySpicy)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎲 Surprise me", buildQuestionCallback("")),
		),
	)
}

// buildLangKeyboard lists the available content locales, the current one marked.
func buildLangKeyboard(locales []string, current string) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, l := range locales {
		label := strings.ToUpper(l)
		if flag, ok := localeFlags[l]; ok {
			label = flag + " " + label
		}
		if l == current {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildLangCallback(l)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// buildResetKeyboard asks to confirm a room reset.
func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Reset", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildResetCancelCallback()),
		),
	)
}
