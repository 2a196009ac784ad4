package generator

import (
	"context"
	"testing"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// prepareImagePart のテスト（キャッシュと変換）
func TestGeminiImageCore_PrepareImagePart(t *testing.T) {
	ctx := context.Background()
	cache := &mockCache{data: make(map[string]any)}
	core := &GeminiImageCore{cache: cache}

	t.Run("キャッシュヒット時はFileDataを返す", func(t *testing.T) {
		rawURL := "https://example.com/img.png"
		fileURI := "https://gemini.api/files/test-id"
		cache.Set(cacheKeyFileAPIURI+rawURL, fileURI, time.Hour)

		part := core.prepareImagePart(ctx, rawURL)

		if part == nil || part.FileData == nil {
			t.Fatal("expected FileData part, got nil or other")
		}
		if part.FileData.FileURI != fileURI {
			t.Errorf("got %s, want %s", part.FileData.FileURI, fileURI)
		}
	})

	t.Run("不正なURLはnilを返す(fetchImageData内のIsSafeURLで失敗)", func(t *testing.T) {
		part := core.prepareImagePart(ctx, "http://127.0.0.1/evil.png")
		if part != nil {
			t.Error("expected nil for unsafe URL")
		}
	})
}

// parseToResponse のテスト
func TestGeminiImageCore_ParseToResponse(t *testing.T) {
	core := &GeminiImageCore{}
	seed := int64(999)

	t.Run("正常系", func(t *testing.T) {
		resp := imageResponse([]byte("png-data"))

		out, err := core.parseToResponse(resp, seed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.MimeType != "image/png" || out.UsedSeed != seed {
			t.Errorf("parsed data mismatch: %+v", out)
		}
	})

	t.Run("異常系: 画像データなし", func(t *testing.T) {
		_, err := core.parseToResponse(textResponse("just text"), seed)
		if err == nil {
			t.Error("expected error for text-only response")
		}
	})

	t.Run("異常系: 安全フィルターによるブロックは理由付きエラーになる", func(t *testing.T) {
		resp := &gemini.Response{
			RawResponse: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content:      &genai.Content{Parts: []*genai.Part{}},
					FinishReason: genai.FinishReasonSafety,
				}},
			},
		}

		_, err := core.parseToResponse(resp, seed)
		if err == nil {
			t.Fatal("expected error for safety-blocked response")
		}
	})

	t.Run("異常系: 空応答", func(t *testing.T) {
		if _, err := core.parseToResponse(nil, seed); err == nil {
			t.Error("expected error for nil response")
		}
	})
}

// parseToText のテスト
func TestGeminiImageCore_ParseToText(t *testing.T) {
	core := &GeminiImageCore{}

	t.Run("テキストパーツを連結して返す", func(t *testing.T) {
		resp := &gemini.Response{
			RawResponse: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []*genai.Part{
						{Text: "A red balloon "},
						{Text: "over the skyline."},
					}},
				}},
			},
		}

		text, err := core.parseToText(resp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "A red balloon over the skyline." {
			t.Errorf("unexpected text: %q", text)
		}
	})

	t.Run("画像のみの応答はエラーになる", func(t *testing.T) {
		if _, err := core.parseToText(imageResponse([]byte("png"))); err == nil {
			t.Error("expected error for image-only response")
		}
	})

	t.Run("空応答はエラーになる", func(t *testing.T) {
		if _, err := core.parseToText(nil); err == nil {
			t.Error("expected error for nil response")
		}
	})
}
