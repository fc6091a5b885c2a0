package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trellotogithub/config"
	"trellotogithub/models"
)

// APIError はGitHub APIの失敗レスポンスを表します
// 呼び出し側はステータスコードとメッセージで原因を判別できます
type APIError struct {
	StatusCode int
	Message    string
}

// Error はエラーメッセージを返します
func (e *APIError) Error() string {
	return e.Message
}

// errorBody は失敗レスポンスのJSONボディのうちmessageフィールドです
type errorBody struct {
	Message string `json:"message"`
}

// GitHubClient はGitHub APIとのやり取りを処理します
type GitHubClient struct {
	config *config.Config
	client *http.Client
	logger *zap.SugaredLogger
}

// NewGitHubClient は新しいGitHubクライアントを作成します
func NewGitHubClient(cfg *config.Config, logger *zap.SugaredLogger) *GitHubClient {
	return &GitHubClient{
		config: cfg,
		client: &http.Client{},
		logger: logger.Named("github"),
	}
}

// Request はBasic認証付きのリクエストを送信します
//
// pathに「://」が含まれる場合は絶対URLとして扱い、そうでない場合は
// 設定されたAPIルートからの相対パスとして解決します。
// methodが空の場合、payloadがあればPOST、なければGETになります。
// 成功時は生のレスポンスを返し、ボディのクローズは呼び出し側が行います。
func (g *GitHubClient) Request(path, method string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("JSONエンコードエラー: %w", err)
		}
		body = bytes.NewReader(data)
	}

	if method == "" {
		if payload != nil {
			method = http.MethodPost
		} else {
			method = http.MethodGet
		}
	}

	url := path
	if !strings.Contains(path, "://") {
		url = fmt.Sprintf("%s/%s", g.config.GitHubRoot, path)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成エラー: %w", err)
	}

	req.SetBasicAuth(g.config.GitHubUser, g.config.GitHubPassword)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("リクエスト送信エラー: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp)
		resp.Body.Close()
		g.logger.Error(apiErr.Message)
		return nil, apiErr
	}

	return resp, nil
}

// newAPIError は失敗レスポンスからAPIErrorを組み立てます
// ボディのmessageフィールドを優先し、解析できない場合はステータスコードから合成します
func newAPIError(resp *http.Response) *APIError {
	message := fmt.Sprintf("HTTP error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		message = body.Message
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

// CheckAuth はGitHub認証をチェックし、認証されたユーザーを返します
func (g *GitHubClient) CheckAuth() (*models.GitHubUser, error) {
	resp, err := g.Request("user", "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var user models.GitHubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("レスポンス解析エラー: %w", err)
	}

	return &user, nil
}
