package controller_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/view"
)

// scriptedPrompter answers prompts from a queue, then returns io.EOF
type scriptedPrompter struct {
	mu      sync.Mutex
	answers []string
	labels  []string
}

func (p *scriptedPrompter) queue(answers ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answers = append(p.answers, answers...)
}

func (p *scriptedPrompter) Prompt(_ context.Context, label string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.labels = append(p.labels, label)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// recordingNotifier keeps every message
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = nil
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

// recordingView mirrors the DOM: rendered cells plus per-id texts
type recordingView struct {
	mu      sync.Mutex
	visible bool
	renders int
	cells   []view.Cell
	texts   map[string]string
}

func newRecordingView() *recordingView {
	return &recordingView{texts: make(map[string]string)}
}

func (v *recordingView) ShowBoard() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = true
}

func (v *recordingView) Render(cells []view.Cell) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renders++
	v.cells = cells
	v.texts = make(map[string]string, len(cells))
	for _, c := range cells {
		v.texts[c.ID] = c.Text
	}
}

func (v *recordingView) Update(b model.Board) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for row := 0; row < model.Size; row++ {
		for col := 0; col < model.Size; col++ {
			pos := model.Position{Row: row, Col: col}
			v.texts[pos.CellID()] = string(b.Get(pos))
		}
	}
}

func (v *recordingView) isVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

func (v *recordingView) text(id string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.texts[id]
}

func (v *recordingView) rendered() []view.Cell {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]view.Cell(nil), v.cells...)
}

// countingHandler counts log records by message
type countingHandler struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountingHandler() *countingHandler {
	return &countingHandler{counts: make(map[string]int)}
}

func (h *countingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *countingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[r.Message]++
	return nil
}

func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *countingHandler) WithGroup(string) slog.Handler { return h }

func (h *countingHandler) count(msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[msg]
}
