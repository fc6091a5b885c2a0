package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"trellotogithub/models"
)

// Store はカードIDごとの同期済み状態の読み書きを抽象化します
type Store interface {
	// Get は指定されたカードIDの状態を返します
	// 状態が存在しない場合は (nil, nil) を返します
	Get(id string) (*models.IssueState, error)
	// Put は指定されたカードIDの状態を保存します。既存の状態は上書きされます
	Put(id string, st models.IssueState) error
}

// FileStore はカードごとに1つのJSONファイルとして状態を保存します
type FileStore struct {
	dir string
}

// NewFileStore は指定されたディレクトリを使うFileStoreを作成します
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// EnsureDir は状態ディレクトリを作成します。既に存在する場合はエラーになりません
func (s *FileStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("状態ディレクトリ作成エラー: %w", err)
	}
	return nil
}

// path は <dir>/<カードID>.json 形式のファイルパスを返します
func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Get は状態ファイルを読み込みます
// ファイルが存在しないことは正常な状態であり、エラーではありません
func (s *FileStore) Get(id string) (*models.IssueState, error) {
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("状態ファイル読み込みエラー: %w", err)
	}

	var st models.IssueState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("状態ファイル解析エラー: %w", err)
	}

	return &st, nil
}

// Put は状態ファイルを書き込みます
func (s *FileStore) Put(id string, st models.IssueState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("JSONエンコードエラー: %w", err)
	}

	if err := os.WriteFile(s.path(id), data, 0o644); err != nil {
		return fmt.Errorf("状態ファイル書き込みエラー: %w", err)
	}

	return nil
}

// NullStore は状態ディレクトリが設定されていない場合に使うストアです
// 状態は一切保存されないため、すべてのカードは毎回新規作成として扱われます
type NullStore struct{}

// Get は常に「状態なし」を返します
func (NullStore) Get(id string) (*models.IssueState, error) {
	return nil, nil
}

// Put は何もしません
func (NullStore) Put(id string, st models.IssueState) error {
	return nil
}
