package tickets

import "github.com/Randidu/event-management-system/internal/models"

// Snapshot is everything a surface needs to draw the current view.
type Snapshot struct {
	Phase     Phase                `json:"phase"`
	Rows      []Row                `json:"rows"`
	Controls  Controls             `json:"controls"`
	Total     int                  `json:"total"`
	Matching  int                  `json:"matching"`
	Filter    models.TicketFilter  `json:"filter"`
	Events    []models.EventOption `json:"events"`
	Empty     bool                 `json:"empty"`
	Failed    bool                 `json:"failed"`
	LoadError string               `json:"load_error,omitempty"`
}

// Snapshot renders the visible page. A failed load shows the error state
// instead of rows; an empty filtered view shows the empty state and no pager.
func (v *View) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:    v.phase,
		Total:    len(v.store),
		Matching: len(v.filtered),
		Filter:   v.filter,
		Events:   v.eventOpts,
	}
	switch v.phase {
	case PhaseLoadFailed:
		snap.Failed = true
		snap.LoadError = v.loadErr
		return snap
	case PhaseIdle:
		return snap
	}

	if len(v.filtered) == 0 {
		snap.Empty = true
		snap.Controls = BuildControls(1, 0, v.deps.PageSize)
		return snap
	}

	page := Slice(v.filtered, v.page, v.deps.PageSize)
	if v.deps.Renderer != nil {
		snap.Rows = v.deps.Renderer.Rows(page)
	}
	snap.Controls = BuildControls(v.page, len(v.filtered), v.deps.PageSize)
	return snap
}
