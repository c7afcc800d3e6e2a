// Copyright (c) 2025 SeeKT
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"gopkg.in/ini.v1"

	"swappy/logging"
	"swappy/paint"
)

const (
	appConfigDirName = "swappy"
	configFileName   = "config"

	// defaultSection だけが読み込まれます。大文字小文字は区別されます。
	defaultSection = "Default"
)

// Config はアプリケーションの設定を保持する構造体です。
// 値型のフィールドだけを持つので、代入でそのまま複製できます。
type Config struct {
	SaveDir            string
	SaveFilenameFormat string // strftime 形式のテンプレート
	LineSize           uint32 // 線の太さ (ピクセル)
	TextFont           string
	TextSize           uint32 // 文字サイズ (ポイント)
	ShowPanel          bool   // 起動時にサイドパネルを表示するか
	PaintMode          paint.Mode
	EarlyExit          bool // 最初の保存後に終了するか
	FillShape          bool // 図形を塗りつぶすか
}

// Default はデフォルトの設定値を返します。
func Default(saveDir string) Config {
	return Config{
		SaveDir:            saveDir,
		SaveFilenameFormat: "swappy-%Y%m%d_%H%M%S.png",
		LineSize:           5,
		TextFont:           "sans-serif",
		TextSize:           20,
		ShowPanel:          false,
		PaintMode:          paint.Brush,
		EarlyExit:          false,
		FillShape:          false,
	}
}

// Loader は既定値に設定ファイルの値を上書きして Config を組み立てます。
type Loader struct {
	Logger    *log.Logger
	ConfigDir func() (string, error) // nil の場合は os.UserConfigDir
	Prober    *Prober                // nil の場合は既定の候補リスト
}

// NewLoader は既定の設定ディレクトリと Prober を使う Loader を返します。
func NewLoader(logger *log.Logger) *Loader {
	return &Loader{
		Logger:    logger,
		ConfigDir: os.UserConfigDir,
		Prober:    NewProber(logger),
	}
}

// Load は既定のローダーで設定を読み込みます。
func Load(hint string) Config {
	return NewLoader(nil).Load(hint)
}

// ConfigPath は設定ファイルのパス (<user-config-dir>/swappy/config) を返します。
func (l *Loader) ConfigPath() (string, error) {
	configDir := os.UserConfigDir
	if l.ConfigDir != nil {
		configDir = l.ConfigDir
	}
	dir, err := configDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, appConfigDirName, configFileName), nil
}

// Load は設定を読み込みます。hint は現在使われず、常に ConfigPath を読みます。
// 失敗することはなく、読めない部分は既定値のまま残ります。
func (l *Loader) Load(hint string) Config {
	logger := logging.OrDefault(l.Logger)
	if hint != "" {
		logger.Debug("ignoring config file hint", "hint", hint)
	}

	path, err := l.ConfigPath()
	if err != nil {
		logger.Warn("using default settings", "err", err)
		return l.defaults()
	}
	return l.LoadFile(path)
}

// LoadFile は指定したパスの INI ファイルを読み込みます。
// ファイルが存在しない、または文書として壊れている場合は既定値を返します。
func (l *Loader) LoadFile(path string) Config {
	logger := logging.OrDefault(l.Logger)
	cfg := l.defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("config file not found, using default settings", "path", path)
		} else {
			logger.Warn("failed to read config file, using default settings", "path", path, "err", err)
		}
		return cfg
	}
	logger.Debug("config file found", "path", path)

	// 値はそのまま使う: インラインコメントも囲み引用符も取り除かない
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
		KeyValueDelimiters:      "=",
	}, data)
	if err != nil {
		logger.Warn("failed to parse config file, using default settings", "path", path, "err", err)
		return cfg
	}

	for _, section := range file.Sections() {
		// 他のセクションは将来の拡張のために黙って無視する
		if section.Name() != defaultSection {
			continue
		}
		logger.Debug("entering config section", "section", section.Name())
		for _, key := range section.Keys() {
			cfg.apply(key.Name(), key.Value(), logger)
		}
	}
	return cfg
}

func (l *Loader) defaults() Config {
	prober := l.Prober
	if prober == nil {
		prober = NewProber(l.Logger)
	}
	return Default(prober.SaveDir())
}

// apply は一つのキーを解釈して対応するフィールドを上書きします。
// 値が不正な場合は警告を出し、現在の値を保持します。
func (c *Config) apply(key, value string, logger *log.Logger) {
	warn := func(err error) {
		logger.Warn("invalid config value, keeping current setting", "key", key, "value", value, "err", err)
	}

	switch key {
	case "save_dir":
		c.SaveDir = value
	case "save_filename_format":
		c.SaveFilenameFormat = value
	case "text_font":
		c.TextFont = value
	case "line_size":
		if n, err := parseSize(value); err != nil {
			warn(err)
		} else {
			c.LineSize = n
		}
	case "text_size":
		if n, err := parseSize(value); err != nil {
			warn(err)
		} else {
			c.TextSize = n
		}
	case "show_panel":
		if b, err := parseBool(value); err != nil {
			warn(err)
		} else {
			c.ShowPanel = b
		}
	case "early_exit":
		if b, err := parseBool(value); err != nil {
			warn(err)
		} else {
			c.EarlyExit = b
		}
	case "fill_shape":
		if b, err := parseBool(value); err != nil {
			warn(err)
		} else {
			c.FillShape = b
		}
	case "paint_mode":
		if m, err := paint.ParseMode(value); err != nil {
			warn(err)
		} else {
			c.PaintMode = m
		}
	}
}

// parseSize は正の 10 進整数を解釈します。
func parseSize(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("expected a positive decimal integer: %w", err)
	}
	if n == 0 {
		return 0, errors.New("size must be greater than zero")
	}
	return uint32(n), nil
}

// parseBool は "true" か "false" だけを受け付けます。
func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("expected true or false, got %q", s)
}
