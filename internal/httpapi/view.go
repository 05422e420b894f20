package httpapi

import (
	"github.com/vovakirdan/mystery-keyboard/internal/core"
	"github.com/vovakirdan/mystery-keyboard/internal/game"
	"github.com/vovakirdan/mystery-keyboard/internal/levels"
)

type levelView struct {
	Index       int      `json:"index"`
	Number      int      `json:"number"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Logic       string   `json:"logic"`
	Keyboard    string   `json:"keyboard"`
	Icons       []string `json:"icons,omitempty"`
	Instruction string   `json:"instruction,omitempty"`
	Hint        string   `json:"hint,omitempty"`
}

type keyView struct {
	Key     string `json:"key"`
	Visible bool   `json:"visible"`
	Enabled bool   `json:"enabled"`
}

type sessionView struct {
	ID              string    `json:"id"`
	Level           levelView `json:"level"`
	Total           int       `json:"total"`
	HasNext         bool      `json:"hasNext"`
	Buffer          string    `json:"buffer"`
	TargetLength    int       `json:"targetLength"`
	Status          string    `json:"status"`
	KeyboardVisible bool      `json:"keyboardVisible"`
	Keys            []keyView `json:"keys"`
	Feedback        string    `json:"feedback,omitempty"`
	RetryAfterMS    int       `json:"retryAfterMs,omitempty"`
}

type outcomeView struct {
	Accepted bool   `json:"accepted"`
	Letter   string `json:"letter,omitempty"`
	Position string `json:"position,omitempty"`
	Feedback string `json:"feedback,omitempty"`
}

type pressView struct {
	sessionView
	Outcome outcomeView `json:"outcome"`
}

func (s *Server) levelView(i int, lvl levels.Level) levelView {
	v := levelView{
		Index:       i,
		Number:      i + 1,
		ID:          lvl.ID,
		Name:        lvl.Title(),
		Logic:       lvl.Logic,
		Keyboard:    string(lvl.Keyboard),
		Icons:       lvl.Icons,
		Instruction: lvl.Instruction,
	}
	if s.cfg.ShowHints {
		v.Hint = lvl.Hint
	}
	return v
}

// view snapshots e. The caller holds e.mu.
func (s *Server) view(e *entry) sessionView {
	sess := e.session
	ctrl := sess.Controller()
	lvl := sess.Level()

	v := sessionView{
		ID:              e.id,
		Level:           s.levelView(sess.Index(), lvl),
		Total:           sess.Total(),
		HasNext:         sess.HasNext(),
		Buffer:          ctrl.Word(),
		TargetLength:    len([]rune(ctrl.Target())),
		Status:          ctrl.Status().String(),
		KeyboardVisible: ctrl.KeyboardVisible(),
		Feedback:        e.feedback,
	}
	for _, k := range s.keys(lvl) {
		ks := ctrl.KeyRenderState(k)
		v.Keys = append(v.Keys, keyView{Key: k, Visible: ks.Visible, Enabled: ks.Enabled})
	}
	if ctrl.Status() == core.StatusRetrying {
		v.RetryAfterMS = s.cfg.Timing.WrongDelayMS
	}
	return v
}

func newOutcomeView(res game.Result) outcomeView {
	v := outcomeView{Accepted: res.Accepted}
	if !res.Accepted {
		return v
	}
	if res.Outcome.Committed() {
		v.Letter = string(res.Outcome.Letter)
		v.Position = res.Position.String()
	}
	v.Feedback = res.Outcome.Feedback.String()
	return v
}
