// Package chat is the orchestrator: it takes one inbound message and
// produces exactly one reply, coordinating the classifier, the entity
// normalizer, the dialogue manager, the catalog and the formatters.
// Every turn is serialized per user through the conversation store.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campushq/campus-chatbot-go/internal/config"
	"github.com/campushq/campus-chatbot-go/internal/ctxutil"
	"github.com/campushq/campus-chatbot-go/internal/dialogue"
	"github.com/campushq/campus-chatbot-go/internal/metrics"
	"github.com/campushq/campus-chatbot-go/internal/nlu"
	"github.com/campushq/campus-chatbot-go/internal/normalize"
	"github.com/campushq/campus-chatbot-go/internal/ratelimit"
	"github.com/campushq/campus-chatbot-go/internal/respond"
	"github.com/campushq/campus-chatbot-go/internal/sentry"
	"github.com/campushq/campus-chatbot-go/internal/storage"
)

// Orchestrator wires one turn of conversation end to end. The classifier
// and responder are optional; without them every message degrades to the
// unknown intent and static wording.
type Orchestrator struct {
	catalog    storage.Catalog
	classifier nlu.Classifier
	responder  nlu.Responder
	store      dialogue.Store
	norm       *normalize.Normalizer
	metrics    *metrics.Metrics
	llmLimiter *ratelimit.KeyedLimiter
}

// Option configures optional orchestrator collaborators.
type Option func(*Orchestrator)

// WithLLMLimiter caps per-user LLM spend. Users over the cap degrade to
// keyword handling and static wording instead of getting an error.
func WithLLMLimiter(l *ratelimit.KeyedLimiter) Option {
	return func(o *Orchestrator) { o.llmLimiter = l }
}

// New builds an orchestrator. classifier and responder may be nil.
func New(catalog storage.Catalog, classifier nlu.Classifier, responder nlu.Responder,
	store dialogue.Store, norm *normalize.Normalizer, m *metrics.Metrics, opts ...Option) *Orchestrator {
	if norm == nil {
		norm = normalize.New(nil)
	}
	o := &Orchestrator{
		catalog:    catalog,
		classifier: classifier,
		responder:  responder,
		store:      store,
		norm:       norm,
		metrics:    m,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Pre-filter word lists. Exact matches skip the classifier entirely.
var (
	simpleGreetings = map[string]bool{"hi": true, "hello": true, "hey": true, "heyy": true, "hii": true}
	simpleThanks    = map[string]bool{"thanks": true, "thank you": true, "thx": true, "thankyou": true}
	simpleBye       = map[string]bool{"bye": true, "goodbye": true, "see ya": true}
)

// HandleMessage processes one user message and always returns a reply
// with non-empty text. Failures reset the user's conversation rather
// than leaving it wedged.
func (o *Orchestrator) HandleMessage(ctx context.Context, userID, message string) respond.Reply {
	ctx = ctxutil.WithUserID(ctx, userID)

	unlock := o.store.Lock(userID)
	defer unlock()

	manager, err := o.store.Get(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load conversation", "user_id", userID, "error", err)
		manager = dialogue.NewManager()
	}

	reply := o.runTurn(ctx, manager, message)

	if strings.TrimSpace(reply.Text) == "" {
		slog.ErrorContext(ctx, "empty reply generated", "user_id", userID, "message", message)
		reply.Text = "I'm sorry, I couldn't find a response for that."
	}

	if err := o.store.Put(ctx, userID, manager); err != nil {
		slog.ErrorContext(ctx, "failed to save conversation", "user_id", userID, "error", err)
	}
	return reply
}

// runTurn is the per-turn pipeline. A panic anywhere inside resets the
// manager and degrades to the fallback reply.
func (o *Orchestrator) runTurn(ctx context.Context, manager *dialogue.Manager, message string) (reply respond.Reply) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic while processing message", "panic", r)
			// The recover keeps the transport alive, so the gin Sentry
			// middleware never sees this panic; report it here instead.
			sentry.CaptureExceptionWithContext(ctx, fmt.Errorf("turn panic: %v", r))
			manager.Reset()
			reply = respond.Text(config.FallbackReply)
		}
	}()

	lower := strings.ToLower(strings.TrimSpace(message))
	switch {
	case simpleGreetings[lower]:
		manager.Reset()
		o.metrics.RecordResponse("static")
		return respond.Text(respond.GreetingReply)
	case simpleThanks[lower]:
		manager.Reset()
		o.metrics.RecordResponse("static")
		return respond.Text(respond.ThanksReply)
	case simpleBye[lower]:
		manager.Reset()
		o.metrics.RecordResponse("static")
		return respond.Text(respond.ByeReply)
	}

	intent, entities := o.classify(ctx, message)
	o.metrics.RecordIntent(intent)

	turn := &turnState{intent: intent, entities: entities}

	// Stage one: a pending side-action owns the turn until resolved.
	if manager.HasPendingAction() {
		if done, r := o.resolvePendingAction(manager, turn, message); done {
			return r
		}
	}

	// Role keywords beat whatever name the model extracted.
	o.applyRoleOverride(turn, message)

	if r, handled := o.checkFacultyName(ctx, manager, turn); handled {
		return r
	}

	// Stage two: the form policy decides prompt, execute or reset.
	wasIdle := !manager.IsInConversation()
	result := manager.Advance(turn.intent, turn.entities)
	if result.Pivoted {
		o.metrics.RecordConversationPivot()
	}
	if result.ResetReason != "" {
		o.metrics.RecordConversationReset(result.ResetReason)
	}
	if wasIdle && manager.IsInConversation() {
		o.metrics.RecordConversationStarted(manager.CurrentIntent)
	}

	switch result.Outcome {
	case dialogue.OutcomePrompt:
		o.metrics.RecordResponse("prompt")
		return respond.Text(result.Prompt)

	case dialogue.OutcomeCompleted:
		execIntent, execEntities := manager.FullContext()
		reply := o.execute(ctx, manager, execIntent, execEntities, message)
		o.finishConversation(manager)
		return reply

	case dialogue.OutcomeDirect:
		return o.execute(ctx, manager, turn.intent, turn.entities, message)

	default:
		// The open form was abandoned; answer the message on its own.
		o.metrics.RecordConversationTurns(float64(manager.Turns))
		return o.respondGeneral(ctx, message)
	}
}

// turnState carries the classified turn through the side-action and
// spell-check stages, which may rewrite it.
type turnState struct {
	intent        string
	entities      map[string]string
	nameConfirmed bool
}

// allowLLM reports whether this user may spend an LLM call right now.
// Anonymous contexts are never limited; the per-message limiter in the
// webhook layer already covers them.
func (o *Orchestrator) allowLLM(ctx context.Context) bool {
	if o.llmLimiter == nil {
		return true
	}
	userID := ctxutil.GetUserID(ctx)
	if userID == "" {
		return true
	}
	return o.llmLimiter.Allow(userID)
}

func (o *Orchestrator) classify(ctx context.Context, message string) (string, map[string]string) {
	if o.classifier == nil || !o.classifier.IsEnabled() {
		return nlu.IntentUnknown, map[string]string{}
	}
	if !o.allowLLM(ctx) {
		slog.DebugContext(ctx, "LLM budget exhausted, degrading to keyword handling")
		return nlu.IntentUnknown, map[string]string{}
	}

	cctx, cancel := context.WithTimeout(ctx, config.LLMRequest)
	defer cancel()

	result, err := o.classifier.Classify(cctx, message)
	if err != nil || result == nil {
		slog.WarnContext(ctx, "classification failed, treating as unknown", "error", err)
		return nlu.IntentUnknown, map[string]string{}
	}
	return result.Intent, o.norm.Entities(result.Intent, result.Entities)
}

// finishConversation applies the end-of-turn policy: stay-open intents
// keep their context for follow-ups, everything else resets.
func (o *Orchestrator) finishConversation(manager *dialogue.Manager) {
	if manager.IsInConversation() && !manager.ShouldStayOpen() {
		o.metrics.RecordConversationTurns(float64(manager.Turns))
		manager.Reset()
	}
}

// respondGeneral answers chit-chat and unclassifiable messages through
// the LLM responder, with static wording when no responder is wired.
func (o *Orchestrator) respondGeneral(ctx context.Context, message string) respond.Reply {
	if o.responder == nil || !o.allowLLM(ctx) {
		o.metrics.RecordResponse("static")
		return respond.Text(config.UnknownReply)
	}

	rctx, cancel := context.WithTimeout(ctx, config.LLMRequest)
	defer cancel()

	text, err := o.responder.Respond(rctx, nlu.GeneralChatPrompt(message))
	if err != nil || strings.TrimSpace(text) == "" {
		slog.WarnContext(ctx, "responder failed for general chat", "error", err)
		o.metrics.RecordResponse("static")
		return respond.Text(config.UnknownReply)
	}
	o.metrics.RecordResponse("llm")
	return respond.Text(text)
}

// respondSuggestion is used when an intent was understood but the
// catalog had nothing to show.
func (o *Orchestrator) respondSuggestion(ctx context.Context, message, fallback string) respond.Reply {
	if o.responder == nil || !o.allowLLM(ctx) {
		o.metrics.RecordResponse("formatted")
		return respond.Text(fallback)
	}

	rctx, cancel := context.WithTimeout(ctx, config.LLMRequest)
	defer cancel()

	text, err := o.responder.Respond(rctx, nlu.SuggestionPrompt(message))
	if err != nil || strings.TrimSpace(text) == "" {
		o.metrics.RecordResponse("formatted")
		return respond.Text(fallback)
	}
	o.metrics.RecordResponse("llm")
	return respond.Text(text)
}
