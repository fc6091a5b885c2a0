package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"trellotogithub/api"
	"trellotogithub/config"
	"trellotogithub/models"
	"trellotogithub/state"
)

// CardImporter は1枚のカードをGitHubイシューとして保存します
type CardImporter struct {
	card   models.TrelloCard
	config *config.Config
	client *api.GitHubClient
	store  state.Store
}

// NewCardImporter は新しいCardImporterを作成します
func NewCardImporter(card models.TrelloCard, cfg *config.Config, client *api.GitHubClient, store state.Store) *CardImporter {
	return &CardImporter{
		card:   card,
		config: cfg,
		client: client,
		store:  store,
	}
}

// Save は保存済み状態に応じてイシューを作成または更新します
//
// 保存済み状態にイシューのURLがある場合はそのURLに対してPATCHで更新し、
// ない場合はリポジトリのイシューコレクションに対してPOSTで新規作成します。
// 状態ファイルはAPI呼び出しが成功した場合のみ書き戻されるため、
// 失敗したカードは次回の実行で同じ判断が再試行されます。
func (c *CardImporter) Save() error {
	prev, err := c.store.Get(c.card.ID)
	if err != nil {
		return err
	}

	payload := models.IssuePayload{
		Title: c.card.Name,
		Body:  c.card.Desc,
	}

	var resp *http.Response
	if prev != nil && prev.URL != "" {
		// イシューが既に存在するため、保存されたURLを更新する
		resp, err = c.client.Request(prev.URL, http.MethodPatch, payload)
	} else {
		path := fmt.Sprintf("repos/%s/%s/issues", c.config.GitHubOwner, c.config.GitHubRepo)
		resp, err = c.client.Request(path, "", payload)
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var issue struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return fmt.Errorf("レスポンス解析エラー: %w", err)
	}

	return c.store.Put(c.card.ID, models.IssueState{
		URL:   issue.URL,
		Title: payload.Title,
		Body:  payload.Body,
	})
}

// Importer はエクスポートに含まれるすべてのカードを順番にインポートします
type Importer struct {
	config *config.Config
	client *api.GitHubClient
	store  state.Store
	logger *zap.SugaredLogger
}

// NewImporter は新しいImporterを作成します
func NewImporter(cfg *config.Config, client *api.GitHubClient, store state.Store, logger *zap.SugaredLogger) *Importer {
	return &Importer{
		config: cfg,
		client: client,
		store:  store,
		logger: logger.Named("cards"),
	}
}

// Run はすべてのカードを宣言された順序で処理します
// 1枚のカードが失敗しても処理は継続し、最後に集計結果を報告します
func (m *Importer) Run(export *models.TrelloExport) error {
	m.logger.Infof("%d 件のカードをインポートします", len(export.Cards))

	failed := 0
	for _, card := range export.Cards {
		m.logger.Debugf("カード %s", card.Name)

		importer := NewCardImporter(card, m.config, m.client, m.store)
		if err := importer.Save(); err != nil {
			m.logger.Errorf("カード %s のインポートに失敗: %v", card.ID, err)
			failed++
		}
	}

	m.logger.Infof("インポート完了: 成功=%d, 失敗=%d", len(export.Cards)-failed, failed)

	if failed > 0 {
		return fmt.Errorf("%d 件のカードのインポートに失敗しました", failed)
	}

	return nil
}
