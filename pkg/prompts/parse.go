package prompts

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseNumberedList は「1. 本文」形式の応答テキストから本文だけを順番に抜き出します。
// モデルが指定数と異なる項目数を返した場合はエラーになります。
// 再生成するかどうかの判断は呼び出し元に委ねます。
func ParseNumberedList(text string, want int) ([]string, error) {
	if want < 1 {
		return nil, fmt.Errorf("項目数は1以上である必要があります: %d", want)
	}

	items := make([]string, 0, want)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		body, ok := splitNumberedItem(trimmed)
		if !ok {
			continue
		}
		items = append(items, body)
	}

	if len(items) != want {
		return nil, fmt.Errorf("%d 項目を期待しましたが %d 項目しか得られませんでした", want, len(items))
	}
	return items, nil
}

// ParseFramePrompts は番号付きリストを解析し、各項目に画像生成向けの
// 接頭辞を付けたフレームプロンプト群を返します。
func ParseFramePrompts(text string, want int) ([]string, error) {
	items, err := ParseNumberedList(text, want)
	if err != nil {
		return nil, fmt.Errorf("フレームプロンプトの解析に失敗しました: %w", err)
	}

	framePrompts := make([]string, len(items))
	for i, item := range items {
		framePrompts[i] = imagePromptPrefix + item
	}
	return framePrompts, nil
}

// splitNumberedItem は「3. 本文」のような行を本文部分と成否に分解します。
// 行頭が数字とドットで始まらない行は番号付き項目ではないと判断します。
func splitNumberedItem(line string) (string, bool) {
	head, rest, found := strings.Cut(line, ".")
	if !found {
		return "", false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(head)); err != nil {
		return "", false
	}
	body := strings.TrimSpace(rest)
	if body == "" {
		return "", false
	}
	return body, true
}
