package paint

const (
	LineSizeMin = 1
	LineSizeMax = 50
	TextSizeMin = 10
	TextSizeMax = 50
)

// Settings は描画ツールの現在の状態です。設定値から初期化され、
// ユーザー操作で変化しても元の設定は変更しません。
type Settings struct {
	Mode     Mode
	Fill     bool
	LineSize uint32
	TextSize uint32

	baseLine uint32
	baseText uint32
}

// NewSettings は設定値をもとに初期状態を作ります。
func NewSettings(mode Mode, fill bool, lineSize, textSize uint32) *Settings {
	return &Settings{
		Mode:     mode,
		Fill:     fill,
		LineSize: lineSize,
		TextSize: textSize,
		baseLine: lineSize,
		baseText: textSize,
	}
}

// SetMode は現在のモードを切り替えます。
func (s *Settings) SetMode(m Mode) {
	s.Mode = m
}

// FillEnabled は塗りつぶしトグルが操作可能かどうかを返します。
func (s *Settings) FillEnabled() bool {
	return s.Mode.SupportsFill()
}

// ToggleFill は塗りつぶしを切り替えます。トグルが無効なモードでは何もしません。
func (s *Settings) ToggleFill() {
	if !s.FillEnabled() {
		return
	}
	s.Fill = !s.Fill
}

// IncreaseLineSize は 10 未満なら 1、それ以上なら 5 ずつ太くします。
func (s *Settings) IncreaseLineSize() {
	s.LineSize = step(s.LineSize, 10, +1, LineSizeMin, LineSizeMax)
}

func (s *Settings) DecreaseLineSize() {
	s.LineSize = step(s.LineSize, 10, -1, LineSizeMin, LineSizeMax)
}

func (s *Settings) ResetLineSize() {
	s.LineSize = s.baseLine
}

// IncreaseTextSize は 20 未満なら 1、それ以上なら 5 ずつ大きくします。
func (s *Settings) IncreaseTextSize() {
	s.TextSize = step(s.TextSize, 20, +1, TextSizeMin, TextSizeMax)
}

func (s *Settings) DecreaseTextSize() {
	s.TextSize = step(s.TextSize, 20, -1, TextSizeMin, TextSizeMax)
}

func (s *Settings) ResetTextSize() {
	s.TextSize = s.baseText
}

// step は pivot を境に刻み幅を 1 と 5 で切り替え、結果を [lo, hi] に収めます。
func step(v uint32, pivot int64, dir int64, lo, hi int64) uint32 {
	cur := int64(v)
	inc := int64(1)
	if (dir > 0 && cur >= pivot) || (dir < 0 && cur > pivot) {
		inc = 5
	}
	next := cur + dir*inc
	if next < lo {
		next = lo
	}
	if next > hi {
		next = hi
	}
	return uint32(next)
}
