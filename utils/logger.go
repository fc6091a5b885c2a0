package utils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logLevels はログレベル名とzapのレベルの対応表です
var logLevels = map[string]zapcore.Level{
	"DEBUG":    zapcore.DebugLevel,
	"INFO":     zapcore.InfoLevel,
	"WARNING":  zapcore.WarnLevel,
	"ERROR":    zapcore.ErrorLevel,
	"CRITICAL": zapcore.FatalLevel,
}

// ParseLogLevel はログレベル名をzapのレベルに変換します
func ParseLogLevel(name string) (zapcore.Level, error) {
	level, ok := logLevels[strings.ToUpper(name)]
	if !ok {
		return zapcore.InfoLevel, fmt.Errorf("不明なログレベル: %s (DEBUG, INFO, WARNING, ERROR, CRITICAL から指定してください)", name)
	}
	return level, nil
}

// NewLogger は標準エラー出力に書き込むロガーを作成します
// 指定された最小レベル未満のログは出力されません
func NewLogger(levelName string) (*zap.SugaredLogger, error) {
	level, err := ParseLogLevel(levelName)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		level,
	)

	return zap.New(core).Sugar(), nil
}
