// Copyright (c) 2025 SeeKT
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"gopkg.in/ini.v1"

	"swappy/logging"
)

// PathSupplier は候補ディレクトリを遅延解決する関数です。
type PathSupplier func() (string, error)

// Prober は候補ディレクトリを順番に調べ、最初に存在するディレクトリを選びます。
type Prober struct {
	Candidates []PathSupplier
	Logger     *log.Logger
}

// DefaultCandidates は保存先ディレクトリの候補を優先順に返します。
//  1. XDG のデスクトップディレクトリ (XDG_DESKTOP_DIR / user-dirs.dirs)
//  2. ユーザー設定ディレクトリ/Desktop
//  3. ホームディレクトリ/Desktop
//  4. ホームディレクトリ
func DefaultCandidates() []PathSupplier {
	return []PathSupplier{
		desktopDir,
		joined(os.UserConfigDir, "Desktop"),
		joined(os.UserHomeDir, "Desktop"),
		os.UserHomeDir,
	}
}

// desktopDir は XDG_DESKTOP_DIR 環境変数、次に user-dirs.dirs の値を返します。
// どちらにも指定がなければ空文字列を返し、その候補は飛ばされます。
func desktopDir() (string, error) {
	if dir := os.Getenv(desktopDirKey); dir != "" {
		return dir, nil
	}

	// XDG_CONFIG_HOME を呼び出し時点の値で読み直す
	xdg.Reload()
	data, err := os.ReadFile(filepath.Join(xdg.ConfigHome, "user-dirs.dirs"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}

	// user-dirs.dirs は KEY="value" 形式なので INI のデフォルトセクションとして読める
	file, err := ini.Load(data)
	if err != nil {
		return "", err
	}
	value := file.Section("").Key(desktopDirKey).String()
	if value == "" {
		return "", nil
	}
	return os.Expand(value, func(name string) string {
		if name == "HOME" {
			return xdg.Home
		}
		return ""
	}), nil
}

const desktopDirKey = "XDG_DESKTOP_DIR"

func joined(base PathSupplier, elem string) PathSupplier {
	return func() (string, error) {
		dir, err := base()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, elem), nil
	}
}

// NewProber は既定の候補リストを使う Prober を返します。
func NewProber(logger *log.Logger) *Prober {
	return &Prober{Candidates: DefaultCandidates(), Logger: logger}
}

// SaveDir は最初に見つかったディレクトリを返します。
// 候補が一つも存在しない場合は警告を出して空文字列を返します。
func (p *Prober) SaveDir() string {
	logger := logging.OrDefault(p.Logger)
	for _, candidate := range p.Candidates {
		path, err := candidate()
		if err != nil {
			continue
		}
		if isDir(path) {
			logger.Debug("found default save directory", "path", path)
			return path
		}
	}
	logger.Warn("unable to find a default save directory")
	return ""
}

// DefaultSaveDir は既定の候補リストから保存先ディレクトリを選びます。
func DefaultSaveDir() string {
	return NewProber(nil).SaveDir()
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
