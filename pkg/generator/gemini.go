package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-gif-kit/pkg/domain"
	"github.com/shouni/gemini-gif-kit/pkg/utils"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GeminiFrameGenerator はアニメーションの1フレーム画像生成を担当するジェネレーターです。
type GeminiFrameGenerator struct {
	imgCore     ImageGeneratorCore
	aiClient    gemini.GenerativeModel
	model       string
	styleSuffix string // 全フレーム共通のスタイル（画風プロンプト）。空なら付与しない
}

// NewGeminiFrameGenerator は GeminiFrameGenerator を初期化するのだ。
func NewGeminiFrameGenerator(
	core ImageGeneratorCore,
	aiClient gemini.GenerativeModel,
	model string,
	styleSuffix string,
) (*GeminiFrameGenerator, error) {
	if core == nil {
		return nil, fmt.Errorf("core (ImageGeneratorCore) is required")
	}
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (gemini.GenerativeModel) is required")
	}

	return &GeminiFrameGenerator{
		imgCore:     core,
		aiClient:    aiClient,
		model:       model,
		styleSuffix: styleSuffix,
	}, nil
}

// GenerateFrame は単一フレームの画像生成を行うのだ。
// 参照画像URLが指定されていれば Core の機能でパーツに添付し、
// 見た目の一貫性を保ったまま生成します。
func (g *GeminiFrameGenerator) GenerateFrame(ctx context.Context, req domain.FrameRequest) (*domain.ImageResponse, error) {
	prompt := req.Prompt
	if g.styleSuffix != "" {
		prompt = prompt + " " + g.styleSuffix
	}

	parts := []*genai.Part{{Text: prompt}}

	if req.ReferenceURL != "" {
		if imgPart := g.imgCore.prepareImagePart(ctx, req.ReferenceURL); imgPart != nil {
			parts = append(parts, imgPart)
		} else {
			// 失敗しても生成自体は続行し、警告ログを残すのだ。
			slog.WarnContext(ctx, "参照画像の読み込みに失敗しました。テキストのみで続行します",
				"index", req.Index, "url", req.ReferenceURL)
		}
	}

	opts := gemini.GenerateOptions{
		AspectRatio: req.AspectRatio,
		Seed:        req.Seed,
	}

	resp, err := g.aiClient.GenerateWithParts(ctx, g.model, parts, opts)
	if err != nil {
		return nil, fmt.Errorf("Geminiフレーム生成エラー (index=%d): %w", req.Index, err)
	}

	out, err := g.imgCore.parseToResponse(resp, utils.DereferenceSeed(req.Seed))
	if err != nil {
		return nil, fmt.Errorf("フレーム応答の解析に失敗しました (index=%d): %w", req.Index, err)
	}

	return &domain.ImageResponse{
		Data:     out.Data,
		MimeType: out.MimeType,
		UsedSeed: out.UsedSeed,
	}, nil
}
