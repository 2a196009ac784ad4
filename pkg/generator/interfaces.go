package generator

import (
	"context"
	"time"

	"github.com/shouni/gemini-gif-kit/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ScriptGenerator はテキスト生成ステージ（説明・筋書き・フレームプロンプト）が
// 利用する窓口です。
type ScriptGenerator interface {
	// GenerateScript は、プロンプトを送信して応答本文のテキストを返します。
	GenerateScript(ctx context.Context, prompt string) (string, error)
}

// FrameGenerator は1フレーム分の画像生成を担当する窓口です。
type FrameGenerator interface {
	// GenerateFrame は、指定されたフレーム要求を実行し、画像データを返します。
	GenerateFrame(ctx context.Context, req domain.FrameRequest) (*domain.ImageResponse, error)
}

// AssetManager は File API とのやり取り（参照画像のアップロード/削除）を担当します。
type AssetManager interface {
	UploadFile(ctx context.Context, fileURI string) (string, error)
	DeleteFile(ctx context.Context, fileURI string) error
}

// ImageGeneratorCore は generator 内部で共有する取得・解析ロジックの窓口です。
type ImageGeneratorCore interface {
	// prepareImagePart は、指定された参照画像URLから生成リクエストに添付する
	// 画像パーツを作成します。失敗時は nil を返し、テキストのみで続行させます。
	prepareImagePart(ctx context.Context, rawURL string) *genai.Part
	// parseToResponse は、応答から最初の画像パーツを抽出します。
	parseToResponse(resp *gemini.Response, seed int64) (*ImageOutput, error)
	// parseToText は、応答からテキストパーツを連結して返します。
	parseToText(resp *gemini.Response) (string, error)
}

// ImageCacher は、File API の URI 等をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}

// HTTPClient は、HTTPリクエストを実行し、URLからデータを取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}
