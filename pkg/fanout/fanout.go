// Package fanout は、独立したフレーム生成タスク群を同時に実行し、
// 完了順に関係なく元のインデックス順で結果を回収するための部品です。
package fanout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shouni/gemini-gif-kit/pkg/domain"
)

// FrameTask は1フレーム分の生成処理です。渡された ctx のキャンセルと
// タイムアウトに従う必要があります。
type FrameTask func(ctx context.Context) (*domain.ImageResponse, error)

// Options は並行実行の振る舞いを調整します。
type Options struct {
	// ItemTimeout は1タスクあたりの制限時間です。0 なら親 ctx のみに従います。
	ItemTimeout time.Duration
}

// Collect は全タスクを同時に起動し、全タスクの完了（成功・失敗を問わず）を
// 待ってからインデックス順の結果を返します。
//
// 結果は起動前に確保した固定長スロットへ各タスクが自分のインデックスで
// 書き込むため、完了順がどうであれ results[i] は tasks[i] の結果になります。
// 1タスクの失敗は他のタスクを中断させず、そのスロットにだけ記録されます。
func Collect(ctx context.Context, tasks []FrameTask, opts Options) ([]domain.FrameResult, error) {
	if len(tasks) == 0 {
		return nil, fmt.Errorf("実行するタスクがありません")
	}

	results := make([]domain.FrameResult, len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(idx int, t FrameTask) {
			defer wg.Done()

			itemCtx := ctx
			if opts.ItemTimeout > 0 {
				var cancel context.CancelFunc
				itemCtx, cancel = context.WithTimeout(ctx, opts.ItemTimeout)
				defer cancel()
			}

			img, err := t(itemCtx)
			// スロットはインデックスごとに1回だけ、このゴルーチンだけが書く
			results[idx] = domain.FrameResult{Index: idx, Image: img, Err: err}

			if err != nil {
				slog.WarnContext(ctx, "フレーム生成に失敗しました", "index", idx, "error", err)
			}
		}(i, task)
	}
	wg.Wait()

	return results, nil
}

// FailedIndexes は失敗したスロットのインデックス一覧を昇順で返します。
func FailedIndexes(results []domain.FrameResult) []int {
	var failed []int
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r.Index)
		}
	}
	return failed
}
