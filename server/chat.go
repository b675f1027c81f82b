package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-legal-client/api"
)

// Seeded support conversation
const (
	SupportConversationID = api.SupportConversationID
	SupportLawyerID       = "lawyer-support"
)

// ChatHub keeps conversations in memory and fans new messages out to
// stream subscribers.
type ChatHub struct {
	lock     sync.RWMutex
	messages map[string][]api.ChatMessage // conversation ID to messages, oldest first
	subs     map[string]map[int]chan api.ChatMessage
	nextSub  int
	now      func() time.Time
}

func NewChatHub() *ChatHub {
	return &ChatHub{
		messages: make(map[string][]api.ChatMessage),
		subs:     make(map[string]map[int]chan api.ChatMessage),
		now:      time.Now,
	}
}

// DefaultChatHub is the hub the mock backend starts with.
func DefaultChatHub() *ChatHub {
	h := NewChatHub()
	h.Post(SupportConversationID, SupportLawyerID, "Welcome! Tell us about your legal matter.")
	h.Post(SupportConversationID, SupportLawyerID, "A lawyer usually replies within one business day.")
	return h
}

// List returns one page of a conversation, oldest first.
func (h *ChatHub) List(conversationID string, page, perPage int) api.PageData[api.ChatMessage] {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return paginate(h.messages[conversationID], page, perPage)
}

// Post appends a message and delivers it to current subscribers. A
// subscriber whose buffer is full misses the message.
func (h *ChatHub) Post(conversationID, senderID, body string) api.ChatMessage {
	msg := api.ChatMessage{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      h.now().UTC(),
	}

	h.lock.Lock()
	defer h.lock.Unlock()

	h.messages[conversationID] = append(h.messages[conversationID], msg)
	for _, ch := range h.subs[conversationID] {
		select {
		case ch <- msg:
		default:
		}
	}
	return msg
}

// Subscribe receives messages posted to conversationID from now on.
func (h *ChatHub) Subscribe(conversationID string) (<-chan api.ChatMessage, func()) {
	h.lock.Lock()
	defer h.lock.Unlock()

	ch := make(chan api.ChatMessage, 16)
	id := h.nextSub
	h.nextSub++
	if h.subs[conversationID] == nil {
		h.subs[conversationID] = make(map[int]chan api.ChatMessage)
	}
	h.subs[conversationID][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.lock.Lock()
			defer h.lock.Unlock()
			delete(h.subs[conversationID], id)
			if len(h.subs[conversationID]) == 0 {
				delete(h.subs, conversationID)
			}
		})
	}
}
