package pipeline

import (
	"fmt"
	"strings"
)

// ステージ名。StageError がどの工程で失敗したかを示すために使います。
const (
	StageCharacterDescription = "character_description"
	StagePlot                 = "plot"
	StageFramePrompts         = "frame_prompts"
	StageFrames               = "frames"
	StageAssemble             = "assemble"
)

// StageError は特定ステージでの失敗を表します。
// どの工程で失敗したかを保持したまま元のエラーを伝播させます。
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("ステージ %s が失敗しました: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// PartialBatchError は並行フレーム生成の一部（または全部）の失敗を表します。
// RequireAllFrames が有効な場合と、全フレームが失敗した場合に返されます。
type PartialBatchError struct {
	Total         int
	FailedIndexes []int
	Reasons       map[int]error // インデックスごとの失敗理由
}

func (e *PartialBatchError) Error() string {
	idx := make([]string, len(e.FailedIndexes))
	for i, n := range e.FailedIndexes {
		idx[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d フレーム中 %d フレームの生成に失敗しました (index: %s)",
		e.Total, len(e.FailedIndexes), strings.Join(idx, ","))
}
