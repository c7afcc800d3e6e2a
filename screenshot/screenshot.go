package screenshot

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"
)

// StdioPath は標準入出力を表すパスです。
const StdioPath = "-"

var (
	// ErrNoSaveDir は保存先ディレクトリが決まっていないときに返されます。
	ErrNoSaveDir = errors.New("no save directory configured")
	// ErrStdinIsTerminal は標準入力が端末の場合に返されます。
	ErrStdinIsTerminal = errors.New("stdin is a terminal")
)

// LoadImage は PNG / JPEG / GIF 画像を読み込みます。
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// DumpStdin は標準入力の内容を一時ファイルに書き出し、そのパスを返します。
// 一時ファイルの削除は呼び出し側の責任です。
func DumpStdin(in *os.File) (string, error) {
	if isTerminal(in) {
		return "", ErrStdinIsTerminal
	}

	tmp, err := os.CreateTemp("", "swappy-stdin-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	path := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write stdin to %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close temporary file %s: %w", path, err)
	}
	return path, nil
}

// FormatFilename は strftime 形式のテンプレートを t で展開します。
func FormatFilename(format string, t time.Time) (string, error) {
	name, err := strftime.Format(format, t)
	if err != nil {
		return "", fmt.Errorf("invalid filename format %q: %w", format, err)
	}
	if name == "" {
		return "", fmt.Errorf("filename format %q expands to an empty name", format)
	}
	return name, nil
}

// SaveToFolder は画像を saveDir に PNG 形式で保存し、保存したパスを返します。
func SaveToFolder(img image.Image, saveDir, format string, now time.Time) (string, error) {
	if saveDir == "" {
		return "", ErrNoSaveDir
	}
	if err := os.MkdirAll(saveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create save directory %s: %w", saveDir, err)
	}

	fileName, err := FormatFilename(format, now)
	if err != nil {
		return "", err
	}
	filePath := filepath.Join(saveDir, fileName)

	if err := writePNG(img, filePath); err != nil {
		return "", err
	}
	return filePath, nil
}

// SaveToFile は画像を path に PNG 形式で保存します。path が "-" の場合は stdout に書き出します。
func SaveToFile(img image.Image, path string, stdout io.Writer) error {
	if path == StdioPath {
		if err := png.Encode(stdout, img); err != nil {
			return fmt.Errorf("failed to encode PNG image to stdout: %w", err)
		}
		return nil
	}
	return writePNG(img, path)
}

func writePNG(img image.Image, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create screenshot file %s: %w", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode PNG image to file %s: %w", filePath, err)
	}
	return file.Close()
}
