// Copyright (c) 2025 SeeKT
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
package paint

import (
	"errors"
	"strings"
)

// Mode は注釈ツールの種類を表します。
type Mode int

const (
	Brush Mode = iota
	Text
	Rectangle
	Ellipse
	Arrow
	Blur
)

// ErrUnknownMode は ParseMode が認識できないトークンを受け取ったときに返されます。
// 扱い (致命的か警告か) は呼び出し側が決めます。
var ErrUnknownMode = errors.New("unknown paint mode")

// Modes はツールパレットの並び順で全てのモードを返します。
func Modes() []Mode {
	return []Mode{Brush, Text, Rectangle, Ellipse, Arrow, Blur}
}

// ParseMode は大文字小文字を区別せずにモード名を解釈します。
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "brush":
		return Brush, nil
	case "text":
		return Text, nil
	case "rectangle":
		return Rectangle, nil
	case "ellipse":
		return Ellipse, nil
	case "arrow":
		return Arrow, nil
	case "blur":
		return Blur, nil
	}
	return 0, ErrUnknownMode
}

// String は設定ファイルで使われる小文字のトークンを返します。
func (m Mode) String() string {
	switch m {
	case Brush:
		return "brush"
	case Text:
		return "text"
	case Rectangle:
		return "rectangle"
	case Ellipse:
		return "ellipse"
	case Arrow:
		return "arrow"
	case Blur:
		return "blur"
	}
	return "unknown"
}

// SupportsFill は塗りつぶしトグルが意味を持つモードかどうかを返します。
func (m Mode) SupportsFill() bool {
	return m == Rectangle || m == Ellipse
}

// ModeForKey はキーボードショートカットに対応するモードを返します。
func ModeForKey(r rune) (Mode, bool) {
	switch r {
	case 'b':
		return Brush, true
	case 'e', 't':
		return Text, true
	case 's', 'r':
		return Rectangle, true
	case 'c', 'o':
		return Ellipse, true
	case 'a':
		return Arrow, true
	case 'd':
		return Blur, true
	}
	return 0, false
}
