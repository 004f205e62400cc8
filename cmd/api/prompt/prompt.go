// Package prompt flattens a conversation into the single text prompt sent to
// the generate endpoint.
package prompt

import (
	"strings"

	"gemma-chat/models"
)

const (
	Preamble       = "以下は日本語での会話です。ユーザーの質問に対して、丁寧に回答してください。"
	UserLabel      = "ユーザー"
	AssistantLabel = "アシスタント"
)

// RoleLabel returns the label a turn is rendered with.
func RoleLabel(role string) string {
	if role == models.RoleUser {
		return UserLabel
	}
	return AssistantLabel
}

// Build renders the preamble, a blank line, one "label: content" line per turn
// and a trailing "アシスタント:" line the model continues from.
func Build(messages []models.Message) string {
	var b strings.Builder
	b.WriteString(Preamble)
	b.WriteString("\n\n")
	for _, m := range messages {
		b.WriteString(RoleLabel(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString(AssistantLabel)
	b.WriteString(":")
	return b.String()
}
