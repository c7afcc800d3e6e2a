package gui

import (
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"swappy/config"
	"swappy/logging"
	"swappy/paint"
	"swappy/screenshot"
)

const appID = "me.jtheoof.swappy"

// Options は設定ファイル以外からウィンドウに渡される値です。
type Options struct {
	Image      image.Image // nil の場合は 1x1 の空画像
	OutputFile string      // 終了時に書き出すファイル。"-" は stdout
	Stdout     io.Writer   // nil の場合は os.Stdout
	Logger     *log.Logger
}

// AppContext はアプリケーションの状態と設定、Fyneのウィンドウなどを保持します。
type AppContext struct {
	App      fyne.App
	Window   fyne.Window
	Config   config.Config   // 読み込み後は変更しない
	Settings *paint.Settings // ツールの現在の状態

	image      image.Image
	outputFile string
	stdout     io.Writer
	logger     *log.Logger
	now        func() time.Time

	// GUI Widgets
	modeGroup   *widget.RadioGroup
	fillCheck   *widget.Check
	lineLabel   *widget.Label
	textLabel   *widget.Label
	sidePanel   *fyne.Container
	panelButton *widget.Button
}

// NewApp は新しいアプリケーションコンテキストを作成し、GUIを初期化します。
func NewApp(cfg config.Config, opts Options) *AppContext {
	return newAppContext(app.NewWithID(appID), cfg, opts)
}

func newAppContext(a fyne.App, cfg config.Config, opts Options) *AppContext {
	w := a.NewWindow("swappy")

	img := opts.Image
	if img == nil {
		img = image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	ac := &AppContext{
		App:        a,
		Window:     w,
		Config:     cfg,
		Settings:   paint.NewSettings(cfg.PaintMode, cfg.FillShape, cfg.LineSize, cfg.TextSize),
		image:      img,
		outputFile: opts.OutputFile,
		stdout:     stdout,
		logger:     logging.OrDefault(opts.Logger),
		now:        time.Now,
	}

	ac.createUI()
	ac.bindKeys()
	ac.refreshTools()

	if bounds := img.Bounds(); !bounds.Empty() {
		w.Resize(fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy())))
	}

	// ウィンドウが閉じられたときに -o で指定されたファイルへ書き出す
	w.SetOnClosed(func() {
		ac.writeOutputFile()
	})

	return ac
}

// createUI はGUIコンポーネントを構築し、ウィンドウに配置します。
func (ac *AppContext) createUI() {
	paintArea := canvas.NewImageFromImage(ac.image)
	paintArea.FillMode = canvas.ImageFillContain
	paintArea.ScaleMode = canvas.ImageScaleSmooth

	// --- ツールパレット ---
	var names []string
	for _, m := range paint.Modes() {
		names = append(names, m.String())
	}
	ac.modeGroup = widget.NewRadioGroup(names, func(s string) {
		m, err := paint.ParseMode(s)
		if err != nil {
			return
		}
		ac.Settings.SetMode(m)
		ac.refreshTools()
	})
	ac.modeGroup.Horizontal = true
	ac.modeGroup.Required = true

	ac.fillCheck = widget.NewCheck("Fill", func(b bool) {
		if ac.Settings.FillEnabled() {
			ac.Settings.Fill = b
		}
	})

	// --- サイドパネル (線の太さ・文字サイズ) ---
	ac.lineLabel = widget.NewLabel("")
	ac.textLabel = widget.NewLabel("")
	ac.sidePanel = container.NewVBox(
		widget.NewLabel("Stroke Size"),
		container.NewHBox(
			widget.NewButton("-", func() { ac.Settings.DecreaseLineSize(); ac.refreshTools() }),
			ac.lineLabel,
			widget.NewButton("+", func() { ac.Settings.IncreaseLineSize(); ac.refreshTools() }),
			widget.NewButton("Reset", func() { ac.Settings.ResetLineSize(); ac.refreshTools() }),
		),
		widget.NewSeparator(),
		widget.NewLabel(fmt.Sprintf("Text Size (%s)", ac.Config.TextFont)),
		container.NewHBox(
			widget.NewButton("-", func() { ac.Settings.DecreaseTextSize(); ac.refreshTools() }),
			ac.textLabel,
			widget.NewButton("+", func() { ac.Settings.IncreaseTextSize(); ac.refreshTools() }),
			widget.NewButton("Reset", func() { ac.Settings.ResetTextSize(); ac.refreshTools() }),
		),
		widget.NewSeparator(),
		ac.fillCheck,
	)
	if !ac.Config.ShowPanel {
		ac.sidePanel.Hide()
	}

	ac.panelButton = widget.NewButtonWithIcon("", theme.MenuIcon(), ac.togglePanel)
	saveButton := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), ac.saveToFolder)

	toolbar := container.NewBorder(nil, nil, ac.panelButton, saveButton, ac.modeGroup)

	content := container.NewBorder(toolbar, nil, ac.sidePanel, nil, paintArea)
	ac.Window.SetContent(content)
}

// bindKeys はキーボードショートカットを登録します。
func (ac *AppContext) bindKeys() {
	c := ac.Window.Canvas()

	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		ac.saveToFolder()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyB, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		ac.togglePanel()
	})

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			ac.Window.Close()
		}
	})

	c.SetOnTypedRune(func(r rune) {
		if m, ok := paint.ModeForKey(r); ok {
			ac.modeGroup.SetSelected(m.String())
			return
		}
		switch r {
		case 'q':
			ac.Window.Close()
		case 'f':
			ac.Settings.ToggleFill()
		case '-':
			ac.Settings.DecreaseLineSize()
		case '=':
			ac.Settings.ResetLineSize()
		case '+':
			ac.Settings.IncreaseLineSize()
		default:
			return
		}
		ac.refreshTools()
	})
}

// refreshTools は Settings の値をUI要素に反映します。
func (ac *AppContext) refreshTools() {
	s := ac.Settings
	if ac.modeGroup.Selected != s.Mode.String() {
		ac.modeGroup.SetSelected(s.Mode.String())
	}

	if s.FillEnabled() {
		ac.fillCheck.Enable()
	} else {
		ac.fillCheck.Disable()
	}
	if ac.fillCheck.Checked != s.Fill {
		ac.fillCheck.SetChecked(s.Fill)
	}

	ac.lineLabel.SetText(fmt.Sprintf("%d", s.LineSize))
	ac.textLabel.SetText(fmt.Sprintf("%d", s.TextSize))
}

func (ac *AppContext) togglePanel() {
	if ac.sidePanel.Visible() {
		ac.sidePanel.Hide()
	} else {
		ac.sidePanel.Show()
	}
}

// saveToFolder は画像を設定された保存先に保存し、early_exit が有効なら終了します。
func (ac *AppContext) saveToFolder() {
	path, err := screenshot.SaveToFolder(ac.image, ac.Config.SaveDir, ac.Config.SaveFilenameFormat, ac.now())
	if err != nil {
		ac.logger.Error("failed to save screenshot", "dir", ac.Config.SaveDir, "err", err)
		dialog.ShowError(fmt.Errorf("failed to save screenshot: %w", err), ac.Window)
		return
	}

	ac.logger.Info("screenshot saved", "path", path)
	ac.App.SendNotification(fyne.NewNotification("Swappy", "Saved Swappshot to: "+path))

	if ac.Config.EarlyExit {
		ac.Window.Close()
	}
}

func (ac *AppContext) writeOutputFile() {
	if ac.outputFile == "" {
		return
	}
	if err := screenshot.SaveToFile(ac.image, ac.outputFile, ac.stdout); err != nil {
		ac.logger.Error("failed to write output file", "path", ac.outputFile, "err", err)
		return
	}
	ac.logger.Debug("output file written", "path", ac.outputFile)
}

// Run はFyneアプリケーションを実行します。
func (ac *AppContext) Run() {
	ac.Window.ShowAndRun()
}
