package telegram

import (
	"strings"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

// Callback action constants.
const (
	actionQuestion = "question"
	actionLang     = "lang"
	actionReset    = "reset"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// anyCategory is the callback parameter of "either category".
const anyCategory = "any"

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or "" when absent.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildQuestionCallback builds callback data for opening a question of the category.
func buildQuestionCallback(category entities.Category) string {
	p := string(category)
	if p == "" {
		p = anyCategory
	}
	return callbackData{Action: actionQuestion, Params: []string{p}}.encode()
}

// buildLangCallback builds callback data for switching the room locale.
func buildLangCallback(locale string) string {
	return callbackData{Action: actionLang, Params: []string{locale}}.encode()
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}

// parseCategory maps command or callback input to a category. Empty input and
// anyCategory mean either category.
func parseCategory(s string) entities.Category {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == anyCategory {
		return ""
	}
	return entities.Category(s)
}
