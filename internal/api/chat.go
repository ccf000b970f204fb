package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"rockbot-frontend/internal/assistant"
	"rockbot-frontend/internal/chat"
	"rockbot-frontend/pkg/api"
)

// ChatService owns the chat views: fetching per-day transcripts (once per
// user identity), reconciling today's bucket with the live session buffer,
// and gating question submission.
type ChatService struct {
	db        *gorm.DB
	assistant *assistant.Client
	sessions  *chat.SessionCache
}

func NewChatService(db *gorm.DB, client *assistant.Client) *ChatService {
	return &ChatService{
		db:        db,
		assistant: client,
		sessions:  chat.NewSessionCache(256),
	}
}

func (s *ChatService) AddRoutes(r chi.Router) {
	r.Route("/chat", func(r chi.Router) {
		r.Get("/logs", RestHandler(s.GetLogs))
		r.Post("/ask", RestHandler(s.Ask))
		r.Post("/view", RestHandler(s.SelectView))
	})
}

// GetLogs returns the bucket index and the merged today view. The historical
// store is populated from the assistant service the first time an identity
// shows up and served from the local cache afterwards.
func (s *ChatService) GetLogs(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[api.ChatLogsParams](r)
	if err != nil {
		return nil, err
	}
	if params.UserID == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "user_id query parameter is required")
	}

	if err := s.ensureLogs(r, params.UserID); err != nil {
		return nil, err
	}

	dates, err := chat.BucketDates(s.db, params.UserID)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to list chat log buckets")
	}

	view, err := s.todayView(params.UserID)
	if err != nil {
		return nil, err
	}

	return api.ChatLogsResponse{Dates: dates, ChatViewResponse: view}, nil
}

// Ask submits a question through the send gate and returns the updated view.
func (s *ChatService) Ask(r *http.Request) (any, error) {
	req, err := ParseRequest[api.AskRequest](r)
	if err != nil {
		return nil, err
	}
	if req.UserID == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "user_id is required")
	}
	if strings.TrimSpace(req.Question) == "" {
		// Rejected before any outbound call is made.
		return nil, CodedErrorf(http.StatusBadRequest, "질문을 입력하세요.")
	}

	if err := s.ensureLogs(r, req.UserID); err != nil {
		return nil, err
	}

	server, err := chat.GetBucket(s.db, req.UserID, chat.TodayBucket)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to load today's chat log")
	}

	sess := s.sessions.Get(req.UserID, s.assistant)
	messages, err := sess.Submit(r.Context(), chat.AskQuery{
		UserID:       req.UserID,
		Question:     req.Question,
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
	}, server, time.Now())
	switch err {
	case nil:
	case chat.ErrEmptyQuestion:
		return nil, CodedErrorf(http.StatusBadRequest, "질문을 입력하세요.")
	case chat.ErrViewingHistory:
		return nil, CodedErrorf(http.StatusConflict, "지난 대화를 보는 중에는 질문할 수 없습니다.")
	case chat.ErrRequestInFlight:
		return nil, CodedErrorf(http.StatusConflict, "이전 질문의 응답을 기다리는 중입니다.")
	default:
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to submit question")
	}

	return api.ChatViewResponse{
		Bucket:   chat.TodayBucket,
		Messages: toAPIMessages(messages),
		Gate:     sess.Gate(),
	}, nil
}

// SelectView switches between the live today bucket and a read-only
// historical bucket.
func (s *ChatService) SelectView(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ChatViewRequest](r)
	if err != nil {
		return nil, err
	}
	if req.UserID == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "user_id is required")
	}

	if err := s.ensureLogs(r, req.UserID); err != nil {
		return nil, err
	}

	if req.Bucket == "" || req.Bucket == chat.TodayBucket {
		view, err := s.todayView(req.UserID)
		if err != nil {
			return nil, err
		}
		return view, nil
	}

	bucket, err := chat.GetBucket(s.db, req.UserID, req.Bucket)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to load chat log bucket")
	}

	sess := s.sessions.Get(req.UserID, s.assistant)
	messages := sess.ViewDate(bucket)

	return api.ChatViewResponse{
		Bucket:   req.Bucket,
		Messages: toAPIMessages(messages),
		Gate:     sess.Gate(),
	}, nil
}

func (s *ChatService) todayView(userID string) (api.ChatViewResponse, error) {
	server, err := chat.GetBucket(s.db, userID, chat.TodayBucket)
	if err != nil {
		return api.ChatViewResponse{}, CodedErrorf(http.StatusInternalServerError, "failed to load today's chat log")
	}

	sess := s.sessions.Get(userID, s.assistant)
	messages := sess.ViewToday(server, time.Now())

	return api.ChatViewResponse{
		Bucket:   chat.TodayBucket,
		Messages: toAPIMessages(messages),
		Gate:     sess.Gate(),
	}, nil
}

// ensureLogs populates the historical store on the first request for an
// identity. A fetch failure is surfaced once; the next request retries.
func (s *ChatService) ensureLogs(r *http.Request, userID string) error {
	ok, err := chat.HasLogs(s.db, userID)
	if err != nil {
		return CodedErrorf(http.StatusInternalServerError, "failed to read chat log cache")
	}
	if ok {
		return nil
	}

	today, previous, err := s.assistant.ChatLogs(r.Context(), userID)
	if err != nil {
		return CodedErrorf(http.StatusBadGateway, "chat logs unavailable: %v", err)
	}

	if err := chat.ReplaceLogs(s.db, userID, today, previous); err != nil {
		return CodedErrorf(http.StatusInternalServerError, "failed to cache chat logs")
	}
	return nil
}

func toAPIMessages(messages []chat.Message) []api.ChatMessage {
	out := make([]api.ChatMessage, len(messages))
	for i, m := range messages {
		out[i] = api.ChatMessage{Sender: m.Sender, Text: m.Text, Timestamp: m.Timestamp}
	}
	return out
}
