// Package webhook exposes the chatbot over its HTTP transports: a JSON
// endpoint for the web widget and a Twilio webhook for WhatsApp and SMS.
package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	twilioclient "github.com/twilio/twilio-go/client"
	"github.com/twilio/twilio-go/twiml"

	"github.com/campushq/campus-chatbot-go/internal/config"
	"github.com/campushq/campus-chatbot-go/internal/ctxutil"
	"github.com/campushq/campus-chatbot-go/internal/logger"
	"github.com/campushq/campus-chatbot-go/internal/metrics"
	"github.com/campushq/campus-chatbot-go/internal/ratelimit"
	"github.com/campushq/campus-chatbot-go/internal/respond"
)

// Responder handles one inbound message and produces the reply to send.
// It is implemented by chat.Orchestrator.
type Responder interface {
	HandleMessage(ctx context.Context, userID, message string) respond.Reply
}

// Handler serves the inbound message endpoints.
type Handler struct {
	responder Responder
	metrics   *metrics.Metrics
	logger    *logger.Logger

	userLimiter      *ratelimit.UserRateLimiter
	messageTimeout   time.Duration
	maxMessageLength int
	twilioValidator  *twilioclient.RequestValidator
}

// NewHandler creates a webhook handler for the given responder.
func NewHandler(responder Responder, m *metrics.Metrics, log *logger.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		responder:        responder,
		metrics:          m,
		logger:           log.WithModule("webhook"),
		messageTimeout:   config.MessageProcessing,
		maxMessageLength: defaultMaxMessageLength,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

type chatResponse struct {
	Response string `json:"response"`
	MediaURL string `json:"media_url,omitempty"`
}

// HandleChat is the Gin handler for POST /chat. The web widget has no
// authentication; a stable per-session id arrives in X-User-ID, and
// anonymous requests share the web_user bucket.
func (h *Handler) HandleChat(c *gin.Context) {
	start := time.Now()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordMessage("web", "bad_request", time.Since(start).Seconds())
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with a 'message' field"})
		return
	}

	message, ok := sanitizeMessage(req.Message, h.maxMessageLength)
	if !ok {
		h.metrics.RecordMessage("web", "bad_request", time.Since(start).Seconds())
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
		return
	}

	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		userID = "web_user"
	}

	if h.userLimiter != nil && !h.userLimiter.Allow(userID) {
		h.metrics.RecordMessage("web", "rate_limited", time.Since(start).Seconds())
		c.JSON(http.StatusOK, chatResponse{Response: config.RateLimitedReply})
		return
	}

	reply := h.respond(c.Request.Context(), "web", userID, message)
	h.metrics.RecordMessage("web", "success", time.Since(start).Seconds())
	c.JSON(http.StatusOK, chatResponse{Response: reply.Text, MediaURL: reply.MediaURL})
}

// HandleTwilio is the Gin handler for POST /twilio. Twilio posts
// form-encoded message webhooks and expects a TwiML document back;
// errors are reported inside the TwiML so the user still gets a reply.
func (h *Handler) HandleTwilio(c *gin.Context) {
	start := time.Now()

	if h.twilioValidator != nil && !h.validTwilioSignature(c) {
		h.logger.Warn("Rejected Twilio request with invalid signature")
		h.metrics.RecordMessage("twilio", "bad_signature", time.Since(start).Seconds())
		c.Status(http.StatusForbidden)
		return
	}

	from := c.PostForm("From")
	if from == "" {
		h.metrics.RecordMessage("twilio", "bad_request", time.Since(start).Seconds())
		c.Status(http.StatusBadRequest)
		return
	}

	var reply respond.Reply
	status := "success"
	switch message, ok := sanitizeMessage(c.PostForm("Body"), h.maxMessageLength); {
	case !ok:
		reply = respond.Text("Please send a text message so I can help you.")
		status = "empty_body"
	case h.userLimiter != nil && !h.userLimiter.Allow(from):
		reply = respond.Text(config.RateLimitedReply)
		status = "rate_limited"
	default:
		reply = h.respond(c.Request.Context(), "twilio", from, message)
	}

	message := &twiml.MessagingMessage{Body: reply.Text}
	if reply.MediaURL != "" {
		message.InnerElements = []twiml.Element{&twiml.MessagingMedia{Url: reply.MediaURL}}
	}
	doc, err := twiml.Messages([]twiml.Element{message})
	if err != nil {
		h.logger.WithError(err).Error("Failed to render TwiML response")
		h.metrics.RecordMessage("twilio", "error", time.Since(start).Seconds())
		c.Status(http.StatusInternalServerError)
		return
	}

	h.metrics.RecordMessage("twilio", status, time.Since(start).Seconds())
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, doc)
}

// respond runs one turn through the orchestrator under the message
// timeout, with channel and user identity on the context for logging.
func (h *Handler) respond(ctx context.Context, channel, userID, message string) respond.Reply {
	ctx = ctxutil.WithChannel(ctx, channel)
	ctx = ctxutil.WithUserID(ctx, userID)
	ctx, cancel := context.WithTimeout(ctx, h.messageTimeout)
	defer cancel()
	return h.responder.HandleMessage(ctx, userID, message)
}

// validTwilioSignature checks X-Twilio-Signature against the posted form.
// The signed URL is the public one, so the forwarded proto header from
// the reverse proxy takes priority over the local scheme.
func (h *Handler) validTwilioSignature(c *gin.Context) bool {
	signature := c.GetHeader("X-Twilio-Signature")
	if signature == "" {
		return false
	}

	if err := c.Request.ParseForm(); err != nil {
		return false
	}
	params := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	return h.twilioValidator.Validate(requestURL(c.Request), params, signature)
}

func requestURL(r *http.Request) string {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
