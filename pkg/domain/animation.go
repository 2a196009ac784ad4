package domain

// StoryBoard は1回の生成ランで積み上がる中間成果物を保持します。
// クエリから GIF に至るまでの各ステージの出力を順番に記録します。
type StoryBoard struct {
	Query                string   `json:"query"`
	CharacterDescription string   `json:"character_description"`
	PlotSteps            []string `json:"plot_steps"`
	FramePrompts         []string `json:"frame_prompts"`
}

// FrameRequest は1フレーム分の画像生成要求です。
// Index は最終的なアニメーション内でのフレーム位置を示し、生成完了順に
// 関係なくこの値で結果が並べ直されます。
type FrameRequest struct {
	Index        int
	Prompt       string
	AspectRatio  string
	ReferenceURL string // 一貫性保持のための参照画像URL（空なら参照なし）
	Seed         *int64 // nil でランダム、値指定で固定
}

// ImageResponse は生成された画像データとそのメタデータです。
type ImageResponse struct {
	Data     []byte
	MimeType string
	UsedSeed int64 // 戻り値は情報欠落を防ぐため int64
}

// FrameResult は並行フレーム生成のインデックス付き個別結果です。
// Err が nil でない場合、そのフレームだけが失敗したことを示し、
// 他のフレームの有効性には影響しません。
type FrameResult struct {
	Index int
	Image *ImageResponse
	Err   error
}

// OK はこのフレームが画像データ付きで成功したかどうかを返します。
func (r FrameResult) OK() bool {
	return r.Err == nil && r.Image != nil && len(r.Image.Data) > 0
}

// Animation は最終成果物であるループGIFとその生成記録です。
type Animation struct {
	GIF           []byte
	FrameCount    int   // GIF に実際に書き込まれたフレーム数
	FailedIndexes []int // 生成に失敗してスキップされたフレームのインデックス
	StoryBoard    StoryBoard
}
