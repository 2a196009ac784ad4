// Package pipeline は、クエリからループGIFまでの5ステージを固定順で
// 実行するシーケンサーです。分岐もループもない一本道で、各ステージの
// 出力がそのまま次のステージの入力になります。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/gemini-gif-kit/pkg/domain"
	"github.com/shouni/gemini-gif-kit/pkg/fanout"
	"github.com/shouni/gemini-gif-kit/pkg/generator"
	"github.com/shouni/gemini-gif-kit/pkg/imgutil"
	"github.com/shouni/gemini-gif-kit/pkg/prompts"
)

// Options は1回のランの振る舞いを調整します。
type Options struct {
	// FrameCount はフレーム数（= 筋書きのステップ数）。0 なら DefaultFrameCount。
	FrameCount int
	// AspectRatio は全フレーム共通のアスペクト比。空ならモデル既定。
	AspectRatio string
	// ReferenceURL は全フレームに添付する参照画像URL。空なら参照なし。
	ReferenceURL string
	// Seed は全フレーム共通のシード値。nil でランダム。
	Seed *int64
	// FrameDelay は GIF の1フレーム表示時間。0 なら imgutil.DefaultFrameDelay。
	FrameDelay time.Duration
	// FrameTimeout は1フレーム生成あたりの制限時間。0 なら無制限。
	FrameTimeout time.Duration
	// RequireAllFrames を有効にすると、1フレームでも失敗したらラン全体を
	// エラーにします。無効（既定）の場合は失敗フレームをスキップして
	// 残りのフレームで GIF を組み立てます。
	RequireAllFrames bool
}

// DefaultFrameCount は既定のフレーム数です。
const DefaultFrameCount = 5

// Runner はステージ群を固定順で実行するシーケンサーです。
type Runner struct {
	script generator.ScriptGenerator
	frames generator.FrameGenerator
	assets generator.AssetManager
	opts   Options
}

// NewRunner は依存関係を注入して Runner を初期化します。
// assets は nil を許容します（参照画像を File API に事前登録しない動作）。
func NewRunner(script generator.ScriptGenerator, frames generator.FrameGenerator, assets generator.AssetManager, opts Options) (*Runner, error) {
	if script == nil {
		return nil, fmt.Errorf("script (ScriptGenerator) is required")
	}
	if frames == nil {
		return nil, fmt.Errorf("frames (FrameGenerator) is required")
	}
	if opts.FrameCount == 0 {
		opts.FrameCount = DefaultFrameCount
	}
	if opts.FrameCount < 1 {
		return nil, fmt.Errorf("FrameCount は1以上である必要があります: %d", opts.FrameCount)
	}

	return &Runner{script: script, frames: frames, assets: assets, opts: opts}, nil
}

// Run はクエリを受け取り、5ステージを順に実行して最終的なアニメーションを返します。
// いずれかの上流ステージの失敗はラン全体の失敗になり、部分的な再開はありません。
func (r *Runner) Run(ctx context.Context, query string) (*domain.Animation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &StageError{Stage: StageCharacterDescription, Err: fmt.Errorf("クエリが空です")}
	}

	board := domain.StoryBoard{Query: query}
	n := r.opts.FrameCount

	// ステージ1: キャラクター・情景の説明
	slog.InfoContext(ctx, "キャラクター説明を生成します", "query", query)
	description, err := r.script.GenerateScript(ctx, prompts.BuildCharacterPrompt(query))
	if err != nil {
		return nil, &StageError{Stage: StageCharacterDescription, Err: err}
	}
	board.CharacterDescription = description

	// ステージ2: 筋書き（1ステップ = 1フレーム）
	slog.InfoContext(ctx, "筋書きを生成します", "steps", n)
	plotText, err := r.script.GenerateScript(ctx, prompts.BuildPlotPrompt(query, description, n))
	if err != nil {
		return nil, &StageError{Stage: StagePlot, Err: err}
	}
	plotSteps, err := prompts.ParseNumberedList(plotText, n)
	if err != nil {
		return nil, &StageError{Stage: StagePlot, Err: err}
	}
	board.PlotSteps = plotSteps

	// ステージ3: フレームごとの画像生成プロンプト
	slog.InfoContext(ctx, "フレームプロンプトを生成します", "count", n)
	promptsText, err := r.script.GenerateScript(ctx, prompts.BuildFramePromptsPrompt(plotText, description, n))
	if err != nil {
		return nil, &StageError{Stage: StageFramePrompts, Err: err}
	}
	framePrompts, err := prompts.ParseFramePrompts(promptsText, n)
	if err != nil {
		return nil, &StageError{Stage: StageFramePrompts, Err: err}
	}
	board.FramePrompts = framePrompts

	// 参照画像はファンアウト前に一度だけ File API に登録し、各フレームには
	// キャッシュ済みの FileData を添付させます。登録に失敗しても、フレーム側の
	// インライン添付で続行できるため致命傷にはしません。
	if r.opts.ReferenceURL != "" && r.assets != nil {
		if _, err := r.assets.UploadFile(ctx, r.opts.ReferenceURL); err != nil {
			slog.WarnContext(ctx, "参照画像の事前アップロードに失敗しました。フレームごとの取得で続行します",
				"url", r.opts.ReferenceURL, "error", err)
		} else {
			defer func() {
				if err := r.assets.DeleteFile(ctx, r.opts.ReferenceURL); err != nil {
					slog.WarnContext(ctx, "参照画像の後始末に失敗しました", "error", err)
				}
			}()
		}
	}

	// ステージ4: 全フレームの並行生成（ファンアウト/ファンイン）
	slog.InfoContext(ctx, "フレーム画像を並行生成します", "frames", n)
	results, err := r.generateFrames(ctx, framePrompts)
	if err != nil {
		return nil, &StageError{Stage: StageFrames, Err: err}
	}

	// ステージ5: GIF 組み立て
	return r.assemble(ctx, board, results)
}

// generateFrames はフレームプロンプトごとのタスクを組み立て、並行実行します。
func (r *Runner) generateFrames(ctx context.Context, framePrompts []string) ([]domain.FrameResult, error) {
	tasks := make([]fanout.FrameTask, len(framePrompts))
	for i, p := range framePrompts {
		req := domain.FrameRequest{
			Index:        i,
			Prompt:       p,
			AspectRatio:  r.opts.AspectRatio,
			ReferenceURL: r.opts.ReferenceURL,
			Seed:         r.opts.Seed,
		}
		tasks[i] = func(taskCtx context.Context) (*domain.ImageResponse, error) {
			return r.frames.GenerateFrame(taskCtx, req)
		}
	}

	return fanout.Collect(ctx, tasks, fanout.Options{ItemTimeout: r.opts.FrameTimeout})
}

// assemble は部分失敗ポリシーを適用し、成功フレームから GIF を組み立てます。
// 既定では失敗フレームをスキップし、全フレーム失敗のときだけランを失敗させます。
func (r *Runner) assemble(ctx context.Context, board domain.StoryBoard, results []domain.FrameResult) (*domain.Animation, error) {
	failed := fanout.FailedIndexes(results)

	if len(failed) > 0 {
		reasons := make(map[int]error, len(failed))
		for _, res := range results {
			if !res.OK() {
				reason := res.Err
				if reason == nil {
					// エラーなしでも画像が空なら失敗扱いなので、診断用の理由を補う
					reason = fmt.Errorf("画像データが空です (index=%d)", res.Index)
				}
				reasons[res.Index] = reason
			}
		}
		batchErr := &PartialBatchError{Total: len(results), FailedIndexes: failed, Reasons: reasons}

		if r.opts.RequireAllFrames || len(failed) == len(results) {
			return nil, &StageError{Stage: StageFrames, Err: batchErr}
		}
		slog.WarnContext(ctx, "一部のフレームをスキップして続行します",
			"failed", len(failed), "total", len(results))
	}

	ordered := make([][]byte, 0, len(results))
	for _, res := range results {
		if res.OK() {
			ordered = append(ordered, res.Image.Data)
		}
	}

	gifData, err := imgutil.AssembleLoopingGIF(ordered, r.opts.FrameDelay)
	if err != nil {
		return nil, &StageError{Stage: StageAssemble, Err: err}
	}

	slog.InfoContext(ctx, "アニメーションが完成しました",
		"frames", len(ordered), "skipped", len(failed), "bytes", len(gifData))

	return &domain.Animation{
		GIF:           gifData,
		FrameCount:    len(ordered),
		FailedIndexes: failed,
		StoryBoard:    board,
	}, nil
}
