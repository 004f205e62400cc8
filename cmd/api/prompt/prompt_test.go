package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gemma-chat/cmd/api/prompt"
	"gemma-chat/models"
)

func TestBuild(t *testing.T) {
	testCases := []struct {
		name     string
		messages []models.Message
		want     string
	}{
		{
			name: "no turns",
			want: prompt.Preamble + "\n\n" + "アシスタント:",
		},
		{
			name:     "single user turn",
			messages: []models.Message{{Role: models.RoleUser, Content: "こんにちは"}},
			want: "以下は日本語での会話です。ユーザーの質問に対して、丁寧に回答してください。\n\n" +
				"ユーザー: こんにちは\n" +
				"アシスタント:",
		},
		{
			name: "multi turn keeps order",
			messages: []models.Message{
				{Role: models.RoleUser, Content: "一つ目"},
				{Role: models.RoleAssistant, Content: "返答"},
				{Role: models.RoleUser, Content: "二つ目"},
			},
			want: prompt.Preamble + "\n\n" +
				"ユーザー: 一つ目\n" +
				"アシスタント: 返答\n" +
				"ユーザー: 二つ目\n" +
				"アシスタント:",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := prompt.Build(testCase.messages)
			assert.Equal(t, testCase.want, got)
			assert.Equal(t, got, prompt.Build(testCase.messages))
			assert.True(t, strings.HasSuffix(got, "アシスタント:"))
		})
	}
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "ユーザー", prompt.RoleLabel(models.RoleUser))
	assert.Equal(t, "アシスタント", prompt.RoleLabel(models.RoleAssistant))
}
