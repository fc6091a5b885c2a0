package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"trellotogithub/utils"
)

// DefaultGitHubRoot はGitHub APIのデフォルトのルートURLです
const DefaultGitHubRoot = "https://api.github.com"

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// GitHub API設定
	GitHubRoot     string
	GitHubOwner    string
	GitHubRepo     string
	GitHubUser     string
	GitHubPassword string

	// ファイルパス
	TrelloJSON string
	StateDir   string

	// ログ設定
	LogLevel string
}

// ParseImportArgs はインポートツールのコマンドライン引数から設定を構築します
// 認証情報の位置引数が省略された場合は環境変数から取得します
func ParseImportArgs(args []string) (*Config, error) {
	cfg := &Config{}

	fs := newFlagSet("import_issues", cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// 位置引数: trello_json github_owner github_repo [github_user github_password]
	rest := fs.Args()
	if len(rest) != 3 && len(rest) != 5 {
		return nil, fmt.Errorf("位置引数が不足しています: trello_json github_owner github_repo github_user github_password")
	}

	cfg.TrelloJSON = rest[0]
	cfg.GitHubOwner = rest[1]
	cfg.GitHubRepo = rest[2]

	if len(rest) == 5 {
		cfg.GitHubUser = rest[3]
		cfg.GitHubPassword = rest[4]
	}

	if err := cfg.fillCredentials(); err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

// ParseAuthArgs は認証確認ツールのコマンドライン引数から設定を構築します
func ParseAuthArgs(args []string) (*Config, error) {
	cfg := &Config{}

	fs := newFlagSet("auth_check", cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// 位置引数: [github_user github_password]
	rest := fs.Args()
	switch len(rest) {
	case 0:
	case 2:
		cfg.GitHubUser = rest[0]
		cfg.GitHubPassword = rest[1]
	default:
		return nil, fmt.Errorf("位置引数が不正です: github_user github_password")
	}

	if err := cfg.fillCredentials(); err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

// newFlagSet は両ツール共通のフラグを定義します
func newFlagSet(name string, cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // 使い方の表示は呼び出し側のprintHelpに任せる

	fs.StringVar(&cfg.LogLevel, "loglevel", "INFO", "表示する最小ログレベル")
	fs.StringVar(&cfg.StateDir, "statedir", "", "変更状態を保存するディレクトリ")
	fs.StringVar(&cfg.GitHubRoot, "githubroot", DefaultGitHubRoot, "GitHub APIのルートURL")

	return fs
}

// fillCredentials は未指定の認証情報を環境変数で補完します
func (c *Config) fillCredentials() error {
	// .envファイルを読み込む（存在しなくてもエラーにしない）
	_ = godotenv.Load()

	if c.GitHubUser == "" {
		c.GitHubUser = os.Getenv("GITHUB_USER")
	}
	if c.GitHubPassword == "" {
		c.GitHubPassword = os.Getenv("GITHUB_PASSWORD")
	}

	if c.GitHubUser == "" || c.GitHubPassword == "" {
		return fmt.Errorf("GitHubの認証情報が指定されていません（位置引数または GITHUB_USER / GITHUB_PASSWORD）")
	}

	return nil
}

// validate は設定値を検証し、正規化します
func (c *Config) validate() error {
	if _, err := utils.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	if c.GitHubRoot == "" {
		return fmt.Errorf("GitHub APIのルートURLが指定されていません")
	}
	c.GitHubRoot = strings.TrimRight(c.GitHubRoot, "/")

	return nil
}
