package dialogue

import "github.com/campushq/campus-chatbot-go/internal/nlu"

// Completed is the sentinel returned by slot filling when every required
// slot is present and the intent is ready to execute.
const Completed = "COMPLETED"

// Manager holds one user's conversation state. Fields are exported with
// JSON tags so stores can snapshot the state; all transitions go through
// the methods below. A Manager is not safe for concurrent use; the store
// serializes turns per user.
type Manager struct {
	CurrentIntent string            `json:"current_intent,omitempty"`
	FilledSlots   map[string]string `json:"filled_slots,omitempty"`
	RequiredSlots []string          `json:"required_slots,omitempty"`
	PendingAction Action            `json:"pending_action,omitempty"`
	ActionContext ActionContext     `json:"action_context,omitempty"`
	Turns         int               `json:"turns,omitempty"`
}

// NewManager returns an idle manager.
func NewManager() *Manager {
	return &Manager{FilledSlots: make(map[string]string)}
}

// IsInConversation reports whether a form is currently being filled.
func (m *Manager) IsInConversation() bool {
	return m.CurrentIntent != ""
}

// ShouldStayOpen reports whether the active intent keeps the conversation
// open after completing. False when idle.
func (m *Manager) ShouldStayOpen() bool {
	if m.CurrentIntent == "" {
		return false
	}
	form, ok := FormFor(m.CurrentIntent)
	return ok && form.StayOpen
}

// IsInFamily reports whether candidate shares a family with the active
// intent. False when idle or when either intent is familyless.
func (m *Manager) IsInFamily(candidate string) bool {
	if m.CurrentIntent == "" {
		return false
	}
	return SameFamily(m.CurrentIntent, candidate)
}

// StartConversation begins filling the intent's form with whatever entities
// the first turn carried. Returns ok=false when the intent has no declared
// form; the caller executes it directly instead.
func (m *Manager) StartConversation(intent string, entities map[string]string) (string, bool) {
	form, ok := FormFor(intent)
	if !ok {
		return "", false
	}

	m.CurrentIntent = intent
	m.RequiredSlots = append([]string(nil), form.RequiredSlots...)
	m.FilledSlots = make(map[string]string)

	return m.FillSlots(entities), true
}

// FillSlots merges the turn's entities into the form and reports what is
// still missing. Returns the prompt for the first unfilled required slot in
// declared order, Completed when the form is ready, or "" when called idle.
func (m *Manager) FillSlots(entities map[string]string) string {
	if !m.IsInConversation() {
		return ""
	}
	form, ok := FormFor(m.CurrentIntent)
	if !ok {
		return ""
	}

	if m.FilledSlots == nil {
		m.FilledSlots = make(map[string]string)
	}
	for slot, value := range entities {
		if containsSlot(form.AllSlots, slot) {
			m.FilledSlots[slot] = value
		}
	}

	// Either course identifier alone is enough to look up instructors.
	if m.CurrentIntent == nlu.IntentCourseInstructors {
		if _, ok := m.FilledSlots[nlu.EntityCourseCode]; ok {
			m.RequiredSlots = removeSlot(m.RequiredSlots, nlu.EntityCourseName)
		}
		if _, ok := m.FilledSlots[nlu.EntityCourseName]; ok {
			m.RequiredSlots = removeSlot(m.RequiredSlots, nlu.EntityCourseCode)
		}
	}

	for _, slot := range m.RequiredSlots {
		if _, ok := m.FilledSlots[slot]; !ok {
			if prompt, ok := form.Prompts[slot]; ok {
				return prompt
			}
			return "What is the " + slot + "?"
		}
	}

	return Completed
}

// FullContext returns the active intent and a copy of the filled slots.
func (m *Manager) FullContext() (string, map[string]string) {
	slots := make(map[string]string, len(m.FilledSlots))
	for k, v := range m.FilledSlots {
		slots[k] = v
	}
	return m.CurrentIntent, slots
}

// Reset returns the manager to idle, clearing form and side-action state
// together. Idempotent.
func (m *Manager) Reset() {
	m.CurrentIntent = ""
	m.FilledSlots = make(map[string]string)
	m.RequiredSlots = nil
	m.PendingAction = ""
	m.ActionContext = ActionContext{}
}

// Outcome classifies what a turn did to the conversation.
type Outcome int

const (
	// OutcomePrompt means the form needs more information; Prompt holds
	// the question to send.
	OutcomePrompt Outcome = iota
	// OutcomeCompleted means the active form is filled; execute the
	// intent from FullContext.
	OutcomeCompleted
	// OutcomeDirect means the intent has no form; execute it with the
	// turn's entities as-is.
	OutcomeDirect
	// OutcomeReset means the conversation was abandoned this turn and no
	// form took its place.
	OutcomeReset
)

// TurnResult is the decision for one turn.
type TurnResult struct {
	Outcome     Outcome
	Prompt      string
	Pivoted     bool
	ResetReason string
}

// Advance applies the per-turn policy for a classified (intent, entities)
// pair: start a form when idle, continue or pivot an open one, or abandon
// it. Pending side-actions are resolved by the orchestrator before this is
// called; Advance only manages forms.
func (m *Manager) Advance(intent string, entities map[string]string) TurnResult {
	m.Turns++

	if !m.IsInConversation() {
		return m.beginTurn(intent, entities, false)
	}

	// A bare conversational filler ("ok", "thanks") must not re-run a
	// stale form, and an unknown turn with nothing extractable means the
	// user has moved on.
	if intent == nlu.IntentGeneralChat && len(entities) == 0 {
		m.Reset()
		return TurnResult{Outcome: OutcomeReset, ResetReason: "noise"}
	}
	if intent == nlu.IntentUnknown && len(entities) == 0 {
		m.Reset()
		return TurnResult{Outcome: OutcomeReset, ResetReason: "abandoned"}
	}

	unrelated := intent != nlu.IntentUnknown &&
		intent != nlu.IntentGeneralChat &&
		intent != m.CurrentIntent &&
		!m.IsInFamily(intent)
	if unrelated {
		// Abandon the open form and let the new intent establish
		// whatever it needs.
		m.Reset()
		return m.beginTurn(intent, entities, true)
	}

	pivoted := false
	if intent != m.CurrentIntent && m.IsInFamily(intent) {
		// Pivot to the sibling intent: requirements and prompts switch,
		// slots already gathered carry over.
		form, ok := FormFor(intent)
		if !ok {
			m.Reset()
			return TurnResult{Outcome: OutcomeReset, ResetReason: "inconsistent"}
		}
		m.CurrentIntent = intent
		m.RequiredSlots = append([]string(nil), form.RequiredSlots...)
		pivoted = true
	}

	result := m.FillSlots(entities)
	switch result {
	case "":
		m.Reset()
		return TurnResult{Outcome: OutcomeReset, Pivoted: pivoted, ResetReason: "inconsistent"}
	case Completed:
		return TurnResult{Outcome: OutcomeCompleted, Pivoted: pivoted}
	default:
		return TurnResult{Outcome: OutcomePrompt, Prompt: result, Pivoted: pivoted}
	}
}

// beginTurn handles a turn with no open form: start one for the intent or
// hand it straight through. wasReset marks that an unrelated turn abandoned
// a form on the way here.
func (m *Manager) beginTurn(intent string, entities map[string]string, wasReset bool) TurnResult {
	reason := ""
	if wasReset {
		reason = "unrelated"
	}

	prompt, ok := m.StartConversation(intent, entities)
	if !ok {
		return TurnResult{Outcome: OutcomeDirect, ResetReason: reason}
	}
	if prompt == Completed {
		return TurnResult{Outcome: OutcomeCompleted, ResetReason: reason}
	}
	if prompt == "" {
		m.Reset()
		return TurnResult{Outcome: OutcomeReset, ResetReason: "inconsistent"}
	}
	return TurnResult{Outcome: OutcomePrompt, Prompt: prompt, ResetReason: reason}
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

func removeSlot(slots []string, slot string) []string {
	out := slots[:0]
	for _, s := range slots {
		if s != slot {
			out = append(out, s)
		}
	}
	return out
}
