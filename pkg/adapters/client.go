// Package adapters は、ライブラリのコアと外界（Gemini SDK、ローカルファイル）を
// つなぐ境界層です。コアは go-gemini-client のインターフェースだけを見るため、
// 実クライアントの組み立てはすべてここで行います。
package adapters

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GeminiAPIClient は公式 SDK (google.golang.org/genai) を用いた
// gemini.GenerativeModel の実装です。
type GeminiAPIClient struct {
	client *genai.Client
}

var _ gemini.GenerativeModel = (*GeminiAPIClient)(nil)

// NewGeminiAPIClient は API キーを使って Gemini API クライアントを初期化します。
func NewGeminiAPIClient(ctx context.Context, apiKey string) (*GeminiAPIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("APIキーが設定されていません")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}

	return &GeminiAPIClient{client: client}, nil
}

// GenerateContent はテキストプロンプト1本で生成を実行します。
func (c *GeminiAPIClient) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}

// GenerateWithParts はテキストと画像の混在パーツで生成を実行します。
func (c *GeminiAPIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}

	cfg := &genai.GenerateContentConfig{}
	if opts.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: opts.SystemPrompt}}}
	}
	if opts.Seed != nil {
		// SDK は int32 を期待しているための調整なのだ
		seed := int32(*opts.Seed)
		cfg.Seed = &seed
	}
	if opts.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}

// UploadFile はバイト列を File API にアップロードし、URI と管理名を返します。
func (c *GeminiAPIClient) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error) {
	file, err := c.client.Files.Upload(ctx, bytes.NewReader(data), &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: displayName,
	})
	if err != nil {
		return "", "", fmt.Errorf("File APIへのアップロードに失敗しました: %w", err)
	}
	return file.URI, file.Name, nil
}

// DeleteFile は File API から指定名のファイルを削除します。
func (c *GeminiAPIClient) DeleteFile(ctx context.Context, name string) error {
	if _, err := c.client.Files.Delete(ctx, name, nil); err != nil {
		return fmt.Errorf("File APIからの削除に失敗しました: %w", err)
	}
	return nil
}

// GetFile は File API 上のファイル情報を取得します。
func (c *GeminiAPIClient) GetFile(ctx context.Context, name string) (*genai.File, error) {
	return c.client.Files.Get(ctx, name, nil)
}
