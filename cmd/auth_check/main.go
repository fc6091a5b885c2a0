package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"trellotogithub/api"
	"trellotogithub/config"
	"trellotogithub/utils"
)

func main() {
	// コマンドライン引数のパース
	cfg, err := config.ParseAuthArgs(os.Args[1:])
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

	logger.Info("GitHub認証確認ツール")

	// 認証チェック
	logger.Info("GitHub APIの認証を確認しています...")
	client := api.NewGitHubClient(cfg, logger)
	user, err := client.CheckAuth()
	if err != nil {
		logger.Errorf("GitHub認証エラー: %v", err)
		logger.Error("認証情報を確認してください。")
		os.Exit(1)
	}

	logger.Infof("GitHub認証成功！ アカウント: %s", user.Login)
	logger.Info("GitHub APIの認証情報は正常です。")
}

// ヘルプメッセージを表示する関数
func printHelp() {
	fmt.Printf(`
GitHub認証確認ツール

使用方法:
  %s [オプション] [github_user github_password]

オプション:
  -loglevel レベル    表示する最小ログレベル (DEBUG, INFO, WARNING, ERROR, CRITICAL / デフォルト: INFO)
  -githubroot URL     GitHub APIのルートURL (デフォルト: %s)
  -help               このヘルプを表示する

環境変数:
  GITHUB_USER         GitHubのユーザー名 (位置引数を省略した場合)
  GITHUB_PASSWORD     GitHubのパスワード (位置引数を省略した場合)

説明:
  このツールはGitHub APIの認証情報が正しく設定されているかを確認します。
  認証が成功すれば、インポートツールも正常に動作する可能性が高いです。
`, os.Args[0], config.DefaultGitHubRoot)
}
