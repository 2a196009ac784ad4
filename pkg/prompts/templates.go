package prompts

import (
	"fmt"
	"strings"
)

// imagePromptPrefix は全フレームのプロンプトに付与する画像生成向けの接頭辞です。
const imagePromptPrefix = "Create a detailed, photorealistic image of the following scene: "

// BuildCharacterPrompt は、クエリから主役キャラクター（または情景）の
// 詳細な説明文を生成させるためのプロンプトを組み立てます。
// ここで得た説明文を全フレームに埋め込むことで見た目の一貫性を保ちます。
func BuildCharacterPrompt(query string) string {
	return fmt.Sprintf(
		"Based on the query '%s', create a detailed description of the main character, object, or scene. "+
			"Include specific details about appearance, characteristics, and any unique features. "+
			"This description will be used to maintain consistency across multiple images.",
		query,
	)
}

// BuildPlotPrompt は、GIFアニメの筋書きを番号付きリストで生成させるための
// プロンプトを組み立てます。1ステップが1フレームに対応します。
func BuildPlotPrompt(query, characterDescription string, steps int) string {
	return fmt.Sprintf(
		"Create a short, %d-step plot for a GIF based on this query: '%s' and featuring this description: %s. "+
			"Each step should be a brief description of a single frame, maintaining consistency throughout. "+
			"Keep it family-friendly and avoid any sensitive themes. "+
			"Format each step as a numbered list item, like this:\n1. [Step here]\n2. [Step here]\n... and so on.",
		steps, query, characterDescription,
	)
}

// BuildFramePromptsPrompt は、筋書きの各ステップに対応する画像生成プロンプトを
// 番号付きリストで出力させるためのプロンプトを組み立てます。
func BuildFramePromptsPrompt(plot, characterDescription string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"Based on this plot: '%s' and featuring this description: %s, generate %d specific, "+
			"family-friendly image prompts, one for each step. Each prompt should be detailed enough "+
			"for image generation, maintaining consistency across all frames.\n\n",
		plot, characterDescription, count,
	)
	b.WriteString("Always include the following in EVERY prompt to maintain consistency:\n")
	b.WriteString("1. A brief reminder of the main character or object's key features\n")
	b.WriteString("2. The specific action or scene described in the plot step\n")
	b.WriteString("3. Any relevant background or environmental details\n\n")
	b.WriteString("Format each prompt as a numbered list item, like this:\n")
	b.WriteString("1. [Your prompt here]\n2. [Your prompt here]\n... and so on.")
	return b.String()
}
