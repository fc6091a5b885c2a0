package models

// TrelloExport はTrelloからエクスポートされたJSONドキュメント全体を表します
type TrelloExport struct {
	Name  string       `json:"name"`
	URL   string       `json:"url"`
	Cards []TrelloCard `json:"cards"`
}

// TrelloCard はエクスポートに含まれる1枚のカードを表します
type TrelloCard struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// IssuePayload はGitHubイシューの作成・更新リクエストのボディです
type IssuePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// IssueState はカードごとに保存される同期済み状態です
// URLが空でない場合、対応するGitHubイシューが既に存在することを意味します
type IssueState struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// GitHubUser は GET user レスポンスのうち必要なフィールドです
type GitHubUser struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}
