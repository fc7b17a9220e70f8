package hooks

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/retroenv/chip8emu/internal/control"
	"github.com/retroenv/chip8emu/internal/display"
)

// Compile-time check to ensure Recorder implements control.Hook.
var _ control.Hook = (*Recorder)(nil)

// Recorder captures the framebuffer after every screen-touching step and
// appends one compact JSON record per frame, suitable for turning a run into
// a video afterwards.
type Recorder struct {
	control.NopHook

	encoder     *json.Encoder
	stepNumber  uint64
	frameNumber uint64
}

// frameRecord is one captured frame, rows encoded as strings of 0 and 1.
type frameRecord struct {
	Frame uint64   `json:"frame"`
	Step  uint64   `json:"step"`
	Rows  []string `json:"rows"`
}

// NewRecorder returns a recorder writing JSON frame records to out.
func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{
		encoder: json.NewEncoder(out),
	}
}

// AfterStep implements control.Hook. The very first step is always captured
// so a recording starts with the initial screen.
func (r *Recorder) AfterStep(in control.Interpreter, frame *control.FrameInfo) {
	if r.frameNumber > 0 && !frame.ScreenModified() {
		return
	}
	r.record(in.Display().Frame())
}

// PostCycle implements control.Hook.
func (r *Recorder) PostCycle(*control.Status) {
	r.stepNumber++
}

func (r *Recorder) record(frame display.Frame) {
	record := frameRecord{
		Frame: r.frameNumber,
		Step:  r.stepNumber,
		Rows:  make([]string, 0, display.Height),
	}

	var row strings.Builder
	for y := range display.Height {
		row.Reset()
		for x := range display.Width {
			if frame[y][x] {
				row.WriteByte('1')
			} else {
				row.WriteByte('0')
			}
		}
		record.Rows = append(record.Rows, row.String())
	}

	_ = r.encoder.Encode(record)
	r.frameNumber++
}
