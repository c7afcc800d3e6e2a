package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swappy/logging"
	"swappy/paint"
)

// testEnv は一時ディレクトリ上に設定ディレクトリと保存先候補を用意します。
type testEnv struct {
	configDir string
	saveDir   string
	logs      *bytes.Buffer
	loader    *Loader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	env := &testEnv{
		configDir: filepath.Join(root, "config"),
		saveDir:   filepath.Join(root, "home", "u", "Desktop"),
		logs:      &bytes.Buffer{},
	}
	require.NoError(t, os.MkdirAll(env.saveDir, 0755))

	logger := logging.New(env.logs, log.DebugLevel)
	env.loader = &Loader{
		Logger:    logger,
		ConfigDir: func() (string, error) { return env.configDir, nil },
		Prober: &Prober{
			Candidates: []PathSupplier{fixed(env.saveDir)},
			Logger:     logger,
		},
	}
	return env
}

func (e *testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := filepath.Join(e.configDir, "swappy")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(content), 0644))
}

func TestDefault(t *testing.T) {
	cfg := Default("/home/u/Desktop")

	assert.Equal(t, Config{
		SaveDir:            "/home/u/Desktop",
		SaveFilenameFormat: "swappy-%Y%m%d_%H%M%S.png",
		LineSize:           5,
		TextFont:           "sans-serif",
		TextSize:           20,
		ShowPanel:          false,
		PaintMode:          paint.Brush,
		EarlyExit:          false,
		FillShape:          false,
	}, cfg)
}

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t)

	path, err := env.loader.ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.configDir, "swappy", "config"), path)
}

func TestConfigPathError(t *testing.T) {
	l := &Loader{ConfigDir: func() (string, error) { return "", errors.New("no config dir") }}

	_, err := l.ConfigPath()
	assert.Error(t, err)
}

func TestLoadNoConfigFile(t *testing.T) {
	env := newTestEnv(t)

	cfg := env.loader.Load("")

	assert.Equal(t, Default(env.saveDir), cfg)
	assert.Contains(t, env.logs.String(), "config file not found")
}

func TestLoadFullOverlay(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, `[Default]
save_dir = /home/alice/Pictures
save_filename_format = shot-%Y%m%d.png
line_size = 3
text_font = monospace
text_size = 14
show_panel = true
paint_mode = arrow
early_exit = false
fill_shape = true
`)

	cfg := env.loader.Load("")

	assert.Equal(t, Config{
		SaveDir:            "/home/alice/Pictures",
		SaveFilenameFormat: "shot-%Y%m%d.png",
		LineSize:           3,
		TextFont:           "monospace",
		TextSize:           14,
		ShowPanel:          true,
		PaintMode:          paint.Arrow,
		EarlyExit:          false,
		FillShape:          true,
	}, cfg)
	assert.Contains(t, env.logs.String(), "config file found")
	assert.Contains(t, env.logs.String(), "entering config section")
}

func TestLoadInvalidPaintMode(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[Default]\npaint_mode = squiggle\n")

	cfg := env.loader.Load("")

	assert.Equal(t, Default(env.saveDir), cfg)
	logs := env.logs.String()
	assert.Contains(t, logs, "invalid config value")
	assert.Contains(t, logs, "paint_mode")
	assert.Contains(t, logs, "squiggle")
}

func TestLoadIgnoresUnknownKeysAndSections(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[Default]\nsave_dir=/tmp\nfoo=bar\n[Extra]\nline_size=99\n")

	cfg := env.loader.Load("")

	want := Default(env.saveDir)
	want.SaveDir = "/tmp"
	assert.Equal(t, want, cfg)
	assert.NotContains(t, env.logs.String(), "WARN")
}

func TestLoadWarnAndKeep(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
	}{
		{"line_size not numeric", "line_size = thick", "line_size"},
		{"line_size zero", "line_size = 0", "line_size"},
		{"line_size negative", "line_size = -3", "line_size"},
		{"line_size hex", "line_size = 0x10", "line_size"},
		{"line_size overflow", "line_size = 4294967296", "line_size"},
		{"text_size not numeric", "text_size = big", "text_size"},
		{"show_panel yes", "show_panel = yes", "show_panel"},
		{"early_exit one", "early_exit = 1", "early_exit"},
		{"fill_shape capitalized", "fill_shape = True", "fill_shape"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.writeConfig(t, "[Default]\n"+tt.line+"\n")

			cfg := env.loader.Load("")

			assert.Equal(t, Default(env.saveDir), cfg)
			assert.Contains(t, env.logs.String(), tt.field)
		})
	}
}

func TestLoadKeepsEarlierValuesAfterBadOne(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[Default]\nline_size = 8\ntext_size = 12\nline_size = nope\n")

	cfg := env.loader.Load("")

	// 重複したキーは後の値が使われ、不正なので既定値のまま
	assert.Equal(t, uint32(5), cfg.LineSize)
	assert.Equal(t, uint32(12), cfg.TextSize)
}

func TestLoadPaintModeCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[Default]\npaint_mode = ARROW\n")

	cfg := env.loader.Load("")

	assert.Equal(t, paint.Arrow, cfg.PaintMode)
}

func TestLoadSectionIsCaseSensitive(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[default]\nline_size = 9\n[DEFAULT]\ntext_size = 9\n")

	cfg := env.loader.Load("")

	assert.Equal(t, Default(env.saveDir), cfg)
}

func TestLoadKeysOutsideSectionIgnored(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "line_size = 9\n[Default]\ntext_size = 30\n")

	cfg := env.loader.Load("")

	assert.Equal(t, uint32(5), cfg.LineSize)
	assert.Equal(t, uint32(30), cfg.TextSize)
}

func TestLoadEmptyFile(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "")

	assert.Equal(t, Default(env.saveDir), env.loader.Load(""))
}

func TestLoadEmptyDefaultSection(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "# swappy\n[Default]\n; nothing here\n")

	assert.Equal(t, Default(env.saveDir), env.loader.Load(""))
}

func TestLoadMalformedDocument(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[Default\nline_size = 3\n")

	cfg := env.loader.Load("")

	assert.Equal(t, Default(env.saveDir), cfg)
	assert.Contains(t, env.logs.String(), "failed to parse config file")
}

func TestLoadValuesAreVerbatim(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[Default]\nsave_dir = ~/shots #1\nsave_filename_format = %F;%T.png\n")

	cfg := env.loader.Load("")

	assert.Equal(t, "~/shots #1", cfg.SaveDir)
	assert.Equal(t, "%F;%T.png", cfg.SaveFilenameFormat)
}

func TestLoadIgnoresHint(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[Default]\ntext_font = serif\n")

	other := filepath.Join(t.TempDir(), "other")
	require.NoError(t, os.WriteFile(other, []byte("[Default]\ntext_font = mono\n"), 0644))

	cfg := env.loader.Load(other)

	assert.Equal(t, "serif", cfg.TextFont)
	assert.Contains(t, env.logs.String(), "ignoring config file hint")
}

func TestLoadIsDeterministic(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[Default]\nline_size = 7\npaint_mode = blur\nfill_shape = true\n")

	first := env.loader.Load("")
	second := env.loader.Load("")

	assert.Equal(t, first, second)
}

func TestLoadWithoutDirectories(t *testing.T) {
	env := newTestEnv(t)
	env.loader.Prober.Candidates = []PathSupplier{fixed(""), missing()}

	cfg := env.loader.Load("")

	assert.Equal(t, Default(""), cfg)
	assert.Contains(t, env.logs.String(), "unable to find a default save directory")
}

func TestLoadConfigDirUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.loader.ConfigDir = func() (string, error) { return "", errors.New("$HOME is not defined") }

	cfg := env.loader.Load("")

	assert.Equal(t, Default(env.saveDir), cfg)
	assert.Contains(t, env.logs.String(), "using default settings")
}

func TestLoadUnreadableConfig(t *testing.T) {
	env := newTestEnv(t)
	// ディレクトリは ReadFile で読めない
	require.NoError(t, os.MkdirAll(filepath.Join(env.configDir, "swappy", "config"), 0755))

	cfg := env.loader.Load("")

	assert.Equal(t, Default(env.saveDir), cfg)
	assert.Contains(t, env.logs.String(), "failed to read config file")
}

func TestConfigCopyIsIndependent(t *testing.T) {
	cfg := Default("/a")
	clone := cfg
	clone.SaveDir = "/b"
	clone.PaintMode = paint.Blur

	assert.Equal(t, "/a", cfg.SaveDir)
	assert.Equal(t, paint.Brush, cfg.PaintMode)
}

func TestLoadKeepsSurroundingQuotes(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[Default]\nsave_dir = \"/tmp/my shots\"\ntext_font = 'Noto Sans'\n")

	cfg := env.loader.Load("")

	assert.Equal(t, `"/tmp/my shots"`, cfg.SaveDir)
	assert.Equal(t, "'Noto Sans'", cfg.TextFont)
}

func TestLoadRejectsColonDelimiter(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[Default]\nline_size: 3\n")

	cfg := env.loader.Load("")

	assert.Equal(t, Default(env.saveDir), cfg)
	assert.Contains(t, env.logs.String(), "failed to parse config file")
}
