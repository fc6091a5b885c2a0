package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"trellotogithub/api"
	"trellotogithub/config"
	"trellotogithub/services"
	"trellotogithub/state"
	"trellotogithub/utils"
)

func main() {
	// 開始時間の記録
	startTime := time.Now()

	// コマンドライン引数のパース
	cfg, err := config.ParseImportArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printHelp()
			return
		}
		fmt.Fprintf(os.Stderr, "引数エラー: %v\n", err)
		printHelp()
		os.Exit(2)
	}

	// ロガーの初期化
	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ロガー初期化エラー: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	logger.Info("Trello → GitHub イシューインポートツール")

	// Trelloエクスポートの読み込み
	export, err := services.LoadExport(cfg.TrelloJSON)
	if err != nil {
		logger.Errorf("エクスポート読み込みエラー: %v", err)
		os.Exit(1)
	}

	boardName := export.Name
	if boardName == "" {
		boardName = "Unknown Trello name"
	}
	boardURL := export.URL
	if boardURL == "" {
		boardURL = "Unknown URL"
	}
	logger.Infof("%s (%s) からインポートします", boardName, boardURL)

	// 状態ディレクトリの準備
	// 指定されていない場合は状態を保存せず、すべてのカードを新規作成として扱う
	var store state.Store = state.NullStore{}
	if cfg.StateDir != "" {
		fileStore := state.NewFileStore(cfg.StateDir)
		if err := fileStore.EnsureDir(); err != nil {
			logger.Errorf("状態ディレクトリ準備エラー: %v", err)
			os.Exit(1)
		}
		logger.Debug("状態を保存します")
		store = fileStore
	}

	// カード処理の前にGitHub認証情報を確認する
	client := api.NewGitHubClient(cfg, logger)
	user, err := client.CheckAuth()
	if err != nil {
		logger.Errorf("GitHub認証エラー: %v", err)
		logger.Error("GitHubの認証情報を確認してください。")
		os.Exit(1)
	}

	userName := user.Name
	if userName == "" {
		userName = "unknown user name"
	}
	logger.Infof("GitHubユーザー %s としてインポートします", userName)

	// イシューのインポート実行
	importer := services.NewImporter(cfg, client, store, logger)
	if err := importer.Run(export); err != nil {
		logger.Errorf("インポート処理に失敗しました: %v", err)
		os.Exit(1)
	}

	// 処理時間の表示
	elapsed := time.Since(startTime)
	logger.Infof("インポートが完了しました。処理時間: %s", elapsed)
}

// ヘルプメッセージを表示する関数
func printHelp() {
	fmt.Printf(`
Trello → GitHub イシューインポートツール

使用方法:
  %s [オプション] trello_json github_owner github_repo github_user github_password

位置引数:
  trello_json         TrelloからエクスポートしたJSONファイル
  github_owner        GitHubリポジトリのオーナー
  github_repo         GitHubのリポジトリ名
  github_user         GitHubのユーザー名
  github_password     GitHubのパスワード

オプション:
  -loglevel レベル    表示する最小ログレベル (DEBUG, INFO, WARNING, ERROR, CRITICAL / デフォルト: INFO)
  -statedir パス      変更状態を保存するディレクトリ
  -githubroot URL     GitHub APIのルートURL (デフォルト: %s)
  -help               このヘルプを表示する

環境変数:
  GITHUB_USER         GitHubのユーザー名 (位置引数を省略した場合)
  GITHUB_PASSWORD     GitHubのパスワード (位置引数を省略した場合)

説明:
  このツールはTrelloのエクスポートJSONに含まれるカードをGitHubイシューとして
  作成します。

  -statedir を指定すると、作成したイシューのURLがカードごとに
  <statedir>/<カードID>.json として保存され、再実行時には同じイシューが
  更新されます。指定しない場合は毎回新規作成されます。
`, os.Args[0], config.DefaultGitHubRoot)
}
