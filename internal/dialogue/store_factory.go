package dialogue

import (
	"fmt"

	"github.com/campushq/campus-chatbot-go/internal/config"
)

// NewStore builds the conversation store named by the configuration.
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.ConversationStore {
	case config.StoreRedis:
		return NewRedisStore(cfg.RedisURL, cfg.ConversationTTL)
	case config.StoreMemory:
		return NewMemoryStore(cfg.ConversationTTL, config.ConversationSweepInterval), nil
	default:
		return nil, fmt.Errorf("unknown conversation store %q", cfg.ConversationStore)
	}
}
