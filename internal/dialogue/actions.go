package dialogue

// Action identifies a pending side-action: a short interruption of normal
// slot filling used when an entity cannot be trusted at face value. The
// orchestrator resolves a pending action before any form logic runs on the
// next turn.
type Action string

const (
	// ActionConfirmFacultyName awaits yes/no on a single fuzzy name match.
	ActionConfirmFacultyName Action = "confirm_faculty_name"
	// ActionClarifyFacultyName awaits a re-typed name after multiple matches.
	ActionClarifyFacultyName Action = "clarify_faculty_name"
	// ActionClarifyHODDepartment awaits a department so the literal "HOD"
	// placeholder can be translated to a real name.
	ActionClarifyHODDepartment Action = "clarify_hod_department"
	// ActionOfferFacultyDetails awaits a choice of free slots, schedule,
	// or location after a positive campus-availability answer.
	ActionOfferFacultyDetails Action = "offer_faculty_details"
)

// ActionContext is the payload stashed when a side-action starts, enough to
// resume the interrupted turn once the user replies.
type ActionContext struct {
	// Intent is the interrupted intent to restore.
	Intent string `json:"intent,omitempty"`
	// Entities are the interrupted turn's entities.
	Entities map[string]string `json:"entities,omitempty"`
	// SuggestedName is the catalog's fuzzy-match correction awaiting
	// confirmation.
	SuggestedName string `json:"suggested_name,omitempty"`
}

// SetPendingAction stashes a side-action. Any previous pending action is
// replaced; side-actions do not nest.
func (m *Manager) SetPendingAction(action Action, ctx ActionContext) {
	m.PendingAction = action
	m.ActionContext = ctx
}

// HasPendingAction reports whether a side-action awaits the next turn.
func (m *Manager) HasPendingAction() bool {
	return m.PendingAction != ""
}

// TakePendingAction returns the pending action and its context, clearing
// both. The caller decides whether to restore the stashed turn or reset.
func (m *Manager) TakePendingAction() (Action, ActionContext) {
	action, ctx := m.PendingAction, m.ActionContext
	m.PendingAction = ""
	m.ActionContext = ActionContext{}
	return action, ctx
}
