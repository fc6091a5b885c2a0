package services

import (
	"encoding/json"
	"fmt"
	"os"

	"trellotogithub/models"
)

// LoadExport はTrelloのエクスポートJSONファイルを読み込みます
func LoadExport(path string) (*models.TrelloExport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("エクスポートファイルオープンエラー: %w", err)
	}
	defer file.Close()

	var export models.TrelloExport
	if err := json.NewDecoder(file).Decode(&export); err != nil {
		return nil, fmt.Errorf("エクスポートファイル解析エラー: %w", err)
	}

	if export.Cards == nil {
		return nil, fmt.Errorf("エクスポートファイルにcardsフィールドがありません")
	}

	return &export, nil
}
