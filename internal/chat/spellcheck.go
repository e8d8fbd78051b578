package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/campushq/campus-chatbot-go/internal/config"
	"github.com/campushq/campus-chatbot-go/internal/dialogue"
	"github.com/campushq/campus-chatbot-go/internal/nlu"
	"github.com/campushq/campus-chatbot-go/internal/respond"
	"github.com/campushq/campus-chatbot-go/internal/storage"
)

// facultyIntents are the intents whose faculty_name entity is verified
// against the catalog before any form logic runs.
var facultyIntents = map[string]bool{
	nlu.IntentFacultyInfo:          true,
	nlu.IntentFacultyLocation:      true,
	nlu.IntentFacultyLocationOnDay: true,
	nlu.IntentFacultyAvailability:  true,
	nlu.IntentFacultyCampusAvail:   true,
	nlu.IntentFacultySchedule:      true,
	nlu.IntentFacultyCourses:       true,
}

// applyRoleOverride replaces a model-extracted name with a role search
// when the message plainly asks about the principal, a dean, or the
// controller of examinations. The role keyword in the user's own words
// outranks whatever the model thought the name was.
func (o *Orchestrator) applyRoleOverride(turn *turnState, message string) {
	if turn.intent != nlu.IntentFacultyInfo && turn.intent != nlu.IntentFacultyLocation {
		return
	}

	for _, word := range strings.Fields(strings.ToLower(message)) {
		word = strings.Trim(word, ".,!?'\"")
		if role, ok := storage.RoleKeyword(word); ok {
			if turn.entities == nil {
				turn.entities = map[string]string{}
			}
			delete(turn.entities, nlu.EntityFacultyName)
			turn.entities[nlu.EntityDepartment] = role
			return
		}
	}
}

// checkFacultyName runs the name verification protocol: resolve HOD
// placeholders, then look the name up and silently correct, confirm, or
// clarify depending on how well it matched. handled=true means the
// reply ends the turn.
func (o *Orchestrator) checkFacultyName(ctx context.Context, manager *dialogue.Manager,
	turn *turnState) (respond.Reply, bool) {

	if !facultyIntents[turn.intent] || turn.nameConfirmed {
		return respond.Reply{}, false
	}
	name := turn.entities[nlu.EntityFacultyName]
	if name == "" {
		return respond.Reply{}, false
	}
	// Mid-form or mid-action turns already went through this.
	if manager.IsInConversation() || manager.HasPendingAction() {
		return respond.Reply{}, false
	}

	if isHODPlaceholder(name) {
		return o.resolveHOD(ctx, manager, turn)
	}

	matches, err := o.catalog.LookupFaculty(ctx, name)
	if err != nil {
		slog.ErrorContext(ctx, "faculty lookup failed", "name", name, "error", err)
		manager.Reset()
		return respond.Text(config.FallbackReply), true
	}

	switch {
	case len(matches) == 0:
		return respond.Text(respond.FacultyNotFoundReply), true

	case len(matches) > 1:
		manager.SetPendingAction(dialogue.ActionClarifyFacultyName, dialogue.ActionContext{
			Intent: turn.intent,
		})
		o.metrics.RecordPendingAction(string(dialogue.ActionClarifyFacultyName), "armed")
		return respond.Text(respond.FacultyLocation(matches)), true
	}

	match := matches[0]
	if match.MatchType == storage.MatchFuzzy && namesDiffer(name, match.Name) {
		manager.SetPendingAction(dialogue.ActionConfirmFacultyName, dialogue.ActionContext{
			Intent:        turn.intent,
			Entities:      cloneEntities(turn.entities),
			SuggestedName: match.Name,
		})
		o.metrics.RecordPendingAction(string(dialogue.ActionConfirmFacultyName), "armed")
		return respond.Text(respond.ConfirmFacultyName(match.Name)), true
	}

	// Exact match, or a fuzzy one close enough to trust: take the
	// catalog's spelling without bothering the user.
	turn.entities[nlu.EntityFacultyName] = match.Name
	turn.nameConfirmed = true
	return respond.Reply{}, false
}

// resolveHOD translates the literal "HOD" placeholder into a real name.
// Without a department it asks for one; with a department it searches the
// catalog for that department's head.
func (o *Orchestrator) resolveHOD(ctx context.Context, manager *dialogue.Manager,
	turn *turnState) (respond.Reply, bool) {

	dept := turn.entities[nlu.EntityDepartment]
	if dept == "" {
		manager.SetPendingAction(dialogue.ActionClarifyHODDepartment, dialogue.ActionContext{
			Intent:   turn.intent,
			Entities: cloneEntities(turn.entities),
		})
		o.metrics.RecordPendingAction(string(dialogue.ActionClarifyHODDepartment), "armed")
		return respond.Text(respond.HODDepartmentPrompt), true
	}

	members, err := o.catalog.SearchFacultyByDepartment(ctx, dept)
	if err != nil {
		slog.ErrorContext(ctx, "department search failed", "department", dept, "error", err)
		manager.Reset()
		return respond.Text(config.FallbackReply), true
	}

	var heads []storage.FacultyMatch
	for _, f := range members {
		if strings.Contains(strings.ToLower(f.Department), "hod") ||
			strings.Contains(strings.ToLower(f.Department), "head") {
			heads = append(heads, storage.FacultyMatch{Faculty: f, MatchType: storage.MatchExact})
		}
	}

	switch {
	case len(heads) == 0:
		return respond.Text(respond.FacultyNotFoundReply), true
	case len(heads) > 1:
		manager.SetPendingAction(dialogue.ActionClarifyFacultyName, dialogue.ActionContext{
			Intent: turn.intent,
		})
		o.metrics.RecordPendingAction(string(dialogue.ActionClarifyFacultyName), "armed")
		return respond.Text(respond.FacultyLocation(heads)), true
	}

	turn.entities[nlu.EntityFacultyName] = heads[0].Name
	turn.nameConfirmed = true
	return respond.Reply{}, false
}

// isHODPlaceholder reports whether the extracted name is the generic
// "HOD" rather than a person, including forms like "the CSE HOD".
func isHODPlaceholder(name string) bool {
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if strings.Trim(word, ".,") == "hod" {
			return true
		}
	}
	return false
}

// namesDiffer reports whether a fuzzy catalog match is different enough
// from what the user typed to need confirmation. Titles, dots and
// spacing are ignored; one name containing the other counts as the same.
func namesDiffer(typed, stored string) bool {
	a := canonicalName(typed)
	b := canonicalName(stored)
	if a == "" || b == "" {
		return true
	}
	if a == b {
		return false
	}
	return !strings.Contains(a, b) && !strings.Contains(b, a)
}

func canonicalName(name string) string {
	lower := strings.ToLower(name)
	for _, title := range []string{"dr.", "dr ", "prof.", "prof ", "mr.", "mrs.", "ms."} {
		lower = strings.ReplaceAll(lower, title, " ")
	}
	var b strings.Builder
	for _, r := range lower {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
