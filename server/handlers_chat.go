package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jrsteele09/go-legal-client/api"
)

const (
	maxChatMessageLength = 2000
	contentTypeNDJSON    = "application/x-ndjson"
)

// ChatMessagesHandler lists a conversation (GET /chats/{conversationID}/messages)
func (s *Server) ChatMessagesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, perPage := pageParams(r)
		writeSuccess(w, http.StatusOK, "Messages", s.repos.Chats.List(r.PathValue("conversationID"), page, perPage))
	}
}

// SendChatMessageHandler posts as the caller (POST /chats/{conversationID}/messages)
func (s *Server) SendChatMessageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.SendMessageRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, MsgInvalidBody)
			return
		}

		body := strings.TrimSpace(req.Body)
		switch {
		case body == "":
			writeFailure(w, http.StatusUnprocessableEntity, MsgValidationFailed,
				api.FieldError{Field: "body", Message: "The body field is required."})
			return
		case utf8.RuneCountInString(body) > maxChatMessageLength:
			writeFailure(w, http.StatusUnprocessableEntity, MsgValidationFailed,
				api.FieldError{Field: "body", Message: "The body may not be greater than 2000 characters."})
			return
		}

		msg := s.repos.Chats.Post(r.PathValue("conversationID"), userIDFromContext(r.Context()), body)
		writeSuccess(w, http.StatusCreated, "Message sent", msg)
	}
}

// ChatStreamHandler streams new messages as newline-delimited JSON until the
// client goes away (GET /chats/{conversationID}/stream)
func (s *Server) ChatStreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, unsubscribe := s.repos.Chats.Subscribe(r.PathValue("conversationID"))
		defer unsubscribe()

		rc := http.NewResponseController(w)
		w.Header().Set("Content-Type", contentTypeNDJSON)
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		if err := rc.Flush(); err != nil {
			s.logger.Error().Err(err).Msg("chat stream cannot flush")
			return
		}

		enc := json.NewEncoder(w)
		for {
			select {
			case <-r.Context().Done():
				return
			case msg := <-messages:
				if err := enc.Encode(msg); err != nil {
					return
				}
				if err := rc.Flush(); err != nil {
					return
				}
			}
		}
	}
}
