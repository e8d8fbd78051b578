package chat

import (
	"strings"

	"github.com/campushq/campus-chatbot-go/internal/dialogue"
	"github.com/campushq/campus-chatbot-go/internal/normalize"
	"github.com/campushq/campus-chatbot-go/internal/nlu"
	"github.com/campushq/campus-chatbot-go/internal/respond"
)

// resolvePendingAction consumes the stashed side-action. It either
// finishes the turn with a reply (done=true) or rewrites turn so normal
// processing continues, usually with the interrupted context restored.
func (o *Orchestrator) resolvePendingAction(manager *dialogue.Manager,
	turn *turnState, message string) (bool, respond.Reply) {

	action, actx := manager.TakePendingAction()

	switch action {
	case dialogue.ActionConfirmFacultyName:
		if normalize.IsAffirmative(message) {
			o.metrics.RecordPendingAction(string(action), "confirmed")
			turn.intent = actx.Intent
			turn.entities = cloneEntities(actx.Entities)
			turn.entities[nlu.EntityFacultyName] = actx.SuggestedName
			turn.nameConfirmed = true
			manager.Reset()
			return false, respond.Reply{}
		}
		if normalize.IsNegative(message) {
			o.metrics.RecordPendingAction(string(action), "rejected")
			manager.Reset()
			return true, respond.Text(respond.SpellOutNameReply)
		}
		// Neither yes nor no: the user moved on, treat this as a fresh turn.
		o.metrics.RecordPendingAction(string(action), "ignored")
		manager.Reset()
		return false, respond.Reply{}

	case dialogue.ActionClarifyFacultyName:
		if turn.entities[nlu.EntityFacultyName] != "" {
			o.metrics.RecordPendingAction(string(action), "resolved")
			turn.intent = actx.Intent
			return false, respond.Reply{}
		}
		o.metrics.RecordPendingAction(string(action), "ignored")
		manager.Reset()
		return false, respond.Reply{}

	case dialogue.ActionClarifyHODDepartment:
		dept := turn.entities[nlu.EntityDepartment]
		if dept == "" {
			// A short bare reply like "CSE" often classifies as unknown;
			// take the message itself as the department.
			if trimmed := strings.TrimSpace(message); trimmed != "" && len(strings.Fields(trimmed)) <= 3 {
				dept = trimmed
			}
		}
		if dept != "" {
			o.metrics.RecordPendingAction(string(action), "resolved")
			turn.intent = actx.Intent
			turn.entities = cloneEntities(actx.Entities)
			turn.entities[nlu.EntityDepartment] = dept
			// The placeholder name must be re-verified against the catalog.
			turn.nameConfirmed = false
			return false, respond.Reply{}
		}
		o.metrics.RecordPendingAction(string(action), "ignored")
		manager.Reset()
		return false, respond.Reply{}

	case dialogue.ActionOfferFacultyDetails:
		chosen := detailsChoice(message)
		if chosen == "" && normalize.IsNegative(message) {
			o.metrics.RecordPendingAction(string(action), "declined")
			manager.Reset()
			return true, respond.Text(respond.DetailsDeclinedReply)
		}
		if chosen == "" && normalize.IsAffirmative(message) {
			chosen = nlu.IntentFacultyAvailability
		}
		if chosen != "" {
			o.metrics.RecordPendingAction(string(action), "accepted")
			turn.intent = chosen
			turn.entities = cloneEntities(actx.Entities)
			turn.nameConfirmed = true
			return false, respond.Reply{}
		}
		o.metrics.RecordPendingAction(string(action), "ignored")
		manager.Reset()
		return false, respond.Reply{}
	}

	// Unrecognized action in stored state; drop it and process normally.
	manager.Reset()
	return false, respond.Reply{}
}

// detailsChoice maps a follow-up reply to the faculty detail the user
// asked for. Empty means no keyword matched.
func detailsChoice(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "free") || strings.Contains(lower, "slot"):
		return nlu.IntentFacultyAvailability
	case strings.Contains(lower, "schedule") || strings.Contains(lower, "class"):
		return nlu.IntentFacultySchedule
	case strings.Contains(lower, "location") || strings.Contains(lower, "where"):
		return nlu.IntentFacultyLocationOnDay
	}
	return ""
}

func cloneEntities(entities map[string]string) map[string]string {
	out := make(map[string]string, len(entities))
	for k, v := range entities {
		out[k] = v
	}
	return out
}
