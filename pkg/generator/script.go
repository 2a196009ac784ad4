package generator

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// GeminiScriptWriter は説明・筋書き・フレームプロンプトの各テキストステージを
// 支えるテキスト生成器です。
type GeminiScriptWriter struct {
	imgCore  ImageGeneratorCore
	aiClient gemini.GenerativeModel
	model    string
}

// NewGeminiScriptWriter は依存関係を注入して GeminiScriptWriter を初期化します。
func NewGeminiScriptWriter(core ImageGeneratorCore, aiClient gemini.GenerativeModel, model string) (*GeminiScriptWriter, error) {
	if core == nil {
		return nil, fmt.Errorf("core (ImageGeneratorCore) is required")
	}
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (gemini.GenerativeModel) is required")
	}

	return &GeminiScriptWriter{
		imgCore:  core,
		aiClient: aiClient,
		model:    model,
	}, nil
}

// GenerateScript はプロンプトを送信して応答本文のテキストを返します。
// クォータ超過・認証失敗・コンテンツポリシー拒否はすべてここでラップされて
// 呼び出し元に伝播し、内部では再試行しません。
func (w *GeminiScriptWriter) GenerateScript(ctx context.Context, prompt string) (string, error) {
	resp, err := w.aiClient.GenerateContent(ctx, w.model, prompt)
	if err != nil {
		return "", fmt.Errorf("Geminiテキスト生成エラー: %w", err)
	}

	text, err := w.imgCore.parseToText(resp)
	if err != nil {
		return "", fmt.Errorf("テキスト応答の解析に失敗しました: %w", err)
	}
	return text, nil
}
