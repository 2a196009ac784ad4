package adapters

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalAssetReader は remoteio.InputReader をローカルファイルシステムで実装します。
// file:// スキームと素のパスの両方を受け付けます。gs:// 等のリモート資産を
// 使う場合は go-remote-io の各リーダーに差し替えてください。
type LocalAssetReader struct{}

// NewLocalAssetReader は LocalAssetReader を作成します。
func NewLocalAssetReader() *LocalAssetReader {
	return &LocalAssetReader{}
}

// Open は指定された URI のファイルを開きます。
func (r *LocalAssetReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	f, err := os.Open(localPath(uri))
	if err != nil {
		return nil, fmt.Errorf("ローカル資産を開けませんでした: %w", err)
	}
	return f, nil
}

// List は指定されたディレクトリ以下のファイルパスを順にコールバックへ渡します。
func (r *LocalAssetReader) List(ctx context.Context, uri string, fn func(string) error) error {
	root := localPath(uri)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		return fn(path)
	})
}

func localPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// SaveGIF は GIF バイト列をファイルに保存し、実際の保存先パスを返します。
// 拡張子 .gif が無ければ補います。
func SaveGIF(path string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("保存するGIFデータがありません")
	}
	if path == "" {
		return "", fmt.Errorf("保存先パスが空です")
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gif") {
		path += ".gif"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("保存先ディレクトリの作成に失敗しました: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("GIFの保存に失敗しました: %w", err)
	}
	return path, nil
}
