package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix は全てのログ行の先頭に付く名前です。
const Prefix = "swappy"

// New はテキスト形式のロガーを作成します。
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          Prefix,
	})
}

// ParseLevel は文字列のログレベルを log.Level に変換します。
// 不明な値は InfoLevel になります。
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// OrDefault は nil の場合にパッケージ既定のロガーを返します。
func OrDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
