package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/shouni/gemini-gif-kit/pkg/adapters"
	"github.com/shouni/gemini-gif-kit/pkg/cache"
	"github.com/shouni/gemini-gif-kit/pkg/config"
	"github.com/shouni/gemini-gif-kit/pkg/domain"
	"github.com/shouni/gemini-gif-kit/pkg/generator"
	"github.com/shouni/gemini-gif-kit/pkg/pipeline"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

type runFlags struct {
	frames    int
	output    string
	reference string
	seed      int64
	allFrames bool
	verbose   bool
}

func newRootCommand() *cobra.Command {
	flags := &runFlags{}

	rootCmd := &cobra.Command{
		Use:           "gifgen \"query\"",
		Short:         "自然文のクエリからループGIFアニメを生成します",
		Long: "gifgen は、クエリからキャラクター説明・筋書き・フレームプロンプトを順に生成し、\n" +
			"全フレームの画像を並行生成してループGIFに組み立てます。",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], flags)
		},
	}

	rootCmd.Flags().IntVarP(&flags.frames, "frames", "n", 0, "フレーム数（既定: 5、環境変数 GIFKIT_FRAME_COUNT でも指定可）")
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "output.gif", "出力GIFのパス")
	rootCmd.Flags().StringVarP(&flags.reference, "reference", "r", "", "一貫性保持のための参照画像（パス・file://・http(s)://）")
	rootCmd.Flags().Int64Var(&flags.seed, "seed", 0, "シード値（0ならランダム）")
	rootCmd.Flags().BoolVar(&flags.allFrames, "all-frames", false, "1フレームでも失敗したら全体を失敗させる")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "詳細ログを出力する")

	return rootCmd
}

func run(ctx context.Context, query string, flags *runFlags) error {
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.frames > 0 {
		cfg.FrameCount = flags.frames
	}

	aiClient, err := adapters.NewGeminiAPIClient(ctx, cfg.APIKey)
	if err != nil {
		return err
	}

	core, err := generator.NewGeminiImageCore(
		aiClient,
		adapters.NewLocalAssetReader(),
		httpkit.New(cfg.HTTPTimeout),
		cache.New(),
		cfg.CacheTTL,
	)
	if err != nil {
		return err
	}

	script, err := generator.NewGeminiScriptWriter(core, aiClient, cfg.TextModel)
	if err != nil {
		return err
	}
	frames, err := generator.NewGeminiFrameGenerator(core, aiClient, cfg.ImageModel, "")
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		FrameCount:       cfg.FrameCount,
		AspectRatio:      cfg.AspectRatio,
		ReferenceURL:     flags.reference,
		FrameDelay:       cfg.FrameDelay,
		FrameTimeout:     cfg.FrameTimeout,
		RequireAllFrames: flags.allFrames,
	}
	if flags.seed != 0 {
		seed := flags.seed
		opts.Seed = &seed
	}

	runner, err := pipeline.NewRunner(script, frames, core, opts)
	if err != nil {
		return err
	}

	anim, err := runner.Run(ctx, query)
	if err != nil {
		return err
	}

	path, err := adapters.SaveGIF(flags.output, anim.GIF)
	if err != nil {
		return err
	}

	printStoryBoard(anim.StoryBoard)
	if len(anim.FailedIndexes) > 0 {
		fmt.Printf("\n%d フレームをスキップしました (index: %v)\n", len(anim.FailedIndexes), anim.FailedIndexes)
	}
	fmt.Printf("\n%d フレームのGIFを保存しました: %s\n", anim.FrameCount, path)
	return nil
}

func printStoryBoard(board domain.StoryBoard) {
	fmt.Println("Character/Scene Description:")
	fmt.Println(board.CharacterDescription)

	fmt.Println("\nPlot:")
	for i, step := range board.PlotSteps {
		fmt.Printf("%d. %s\n", i+1, step)
	}

	fmt.Println("\nFrame Prompts:")
	for i, p := range board.FramePrompts {
		fmt.Printf("%d. %s\n", i+1, p)
	}
}
