package prompts

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCharacterPrompt(t *testing.T) {
	t.Run("クエリ本文がプロンプトに埋め込まれること", func(t *testing.T) {
		query := "A red balloon floating over a city skyline at sunset"
		got := BuildCharacterPrompt(query)

		assert.Contains(t, got, query)
		assert.Contains(t, got, "consistency")
	})
}

func TestBuildPlotPrompt(t *testing.T) {
	t.Run("クエリと説明文とステップ数が含まれること", func(t *testing.T) {
		got := BuildPlotPrompt("query-text", "description-text", 5)

		assert.Contains(t, got, "query-text")
		assert.Contains(t, got, "description-text")
		assert.Contains(t, got, "5-step")
		assert.Contains(t, got, "numbered list")
	})

	t.Run("ステップ数1でも組み立てられること", func(t *testing.T) {
		got := BuildPlotPrompt("q", "d", 1)
		assert.Contains(t, got, "1-step")
	})
}

func TestBuildFramePromptsPrompt(t *testing.T) {
	t.Run("筋書きと説明文が両方含まれること", func(t *testing.T) {
		got := BuildFramePromptsPrompt("plot-text", "description-text", 5)

		assert.Contains(t, got, "plot-text")
		assert.Contains(t, got, "description-text")
		assert.Contains(t, got, "EVERY prompt")
	})
}

func TestParseNumberedList(t *testing.T) {
	t.Run("番号付きリストを順番通りに取り出せること", func(t *testing.T) {
		text := "Here is the plot:\n1. The balloon rises.\n2. The balloon drifts east.\n3. The balloon lands."

		items, err := ParseNumberedList(text, 3)

		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "The balloon rises.", items[0])
		assert.Equal(t, "The balloon drifts east.", items[1])
		assert.Equal(t, "The balloon lands.", items[2])
	})

	t.Run("項目数が期待と異なる場合はエラーになること", func(t *testing.T) {
		text := "1. only one item"
		_, err := ParseNumberedList(text, 5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "5 項目を期待")
	})

	t.Run("番号以外の行や空行は無視されること", func(t *testing.T) {
		text := "intro line\n\n1. first\nnote: something\n2. second\n"
		items, err := ParseNumberedList(text, 2)

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, items)
	})

	t.Run("2桁の番号も扱えること", func(t *testing.T) {
		var b strings.Builder
		for i := 1; i <= 12; i++ {
			fmt.Fprintf(&b, "%d. item\n", i)
		}
		items, err := ParseNumberedList(b.String(), 12)

		require.NoError(t, err)
		assert.Len(t, items, 12)
	})

	t.Run("期待数0はエラーになること", func(t *testing.T) {
		_, err := ParseNumberedList("1. a", 0)
		require.Error(t, err)
	})
}

func TestParseFramePrompts(t *testing.T) {
	t.Run("各項目に画像生成向けの接頭辞が付くこと", func(t *testing.T) {
		text := "1. A balloon over rooftops.\n2. A balloon near the sun."
		got, err := ParseFramePrompts(text, 2)

		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, p := range got {
			assert.True(t, strings.HasPrefix(p, imagePromptPrefix), "prompt should carry the image prefix: %s", p)
		}
		assert.Contains(t, got[0], "A balloon over rooftops.")
	})

	t.Run("項目数不足はラップされたエラーになること", func(t *testing.T) {
		_, err := ParseFramePrompts("no numbered items here", 3)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "フレームプロンプトの解析に失敗しました")
	})
}
