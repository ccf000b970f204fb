package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rockbot-frontend/internal/admin"
	"rockbot-frontend/internal/backend"
	"rockbot-frontend/pkg/api"
)

// AdminService serves the triage dashboard: the travel-request board, the
// user directory, department reassignment and notifications. Triage decisions
// are applied to the board immediately; the confirming backend call runs in
// the background and records its outcome on the entry.
type AdminService struct {
	backend *backend.Client
	board   *admin.Board
}

func NewAdminService(client *backend.Client) *AdminService {
	return &AdminService{backend: client, board: admin.NewBoard()}
}

func (s *AdminService) AddRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/travel-requests", RestHandler(s.ListTravelRequests))
		r.Put("/travel-requests/{request_id}", RestHandler(s.UpdateTravelRequest))
		r.Get("/users", RestHandler(s.ListUsers))
		r.Put("/users/{user_id}/department", RestHandler(s.UpdateDepartment))
		r.Post("/notifications", RestHandler(s.CreateNotification))
		r.Put("/notifications/{notification_id}/read", RestHandler(s.MarkNotificationRead))
	})
}

func (s *AdminService) ListTravelRequests(r *http.Request) (any, error) {
	requests, err := s.backend.ListTravelRequests(r.Context(), bearerToken(r))
	if err != nil {
		return nil, CodedErrorf(http.StatusBadGateway, "travel requests unavailable: %v", err)
	}

	s.board.Load(requests)

	return api.TravelRequestsResponse{
		Requests: s.board.Snapshot(),
		Upcoming: s.board.Upcoming(time.Now()),
	}, nil
}

func (s *AdminService) UpdateTravelRequest(r *http.Request) (any, error) {
	requestID, err := URLParamInt64(r, "request_id")
	if err != nil {
		return nil, err
	}
	req, err := ParseRequest[api.UpdateTravelStatusRequest](r)
	if err != nil {
		return nil, err
	}

	opID, err := s.board.Apply(requestID, req.Status)
	if err != nil {
		return nil, CodedError(http.StatusBadRequest, err)
	}

	// Confirm out of band; the response reflects the optimistic state.
	go s.confirm(opID, requestID, req.Status, bearerToken(r))

	return api.TravelRequestsResponse{
		Requests: s.board.Snapshot(),
		Upcoming: s.board.Upcoming(time.Now()),
	}, nil
}

func (s *AdminService) confirm(opID uuid.UUID, requestID int64, status, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := s.backend.UpdateTravelRequestStatus(ctx, token, requestID, status)
	s.board.Confirm(opID, err == nil)
}

func (s *AdminService) ListUsers(r *http.Request) (any, error) {
	users, err := s.backend.ListUsers(r.Context(), bearerToken(r))
	if err != nil {
		return nil, CodedErrorf(http.StatusBadGateway, "user directory unavailable: %v", err)
	}
	return api.UsersResponse{Users: users}, nil
}

func (s *AdminService) UpdateDepartment(r *http.Request) (any, error) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "missing {user_id} url parameter")
	}
	req, err := ParseRequest[api.UpdateDepartmentRequest](r)
	if err != nil {
		return nil, err
	}

	if err := s.backend.UpdateDepartment(r.Context(), bearerToken(r), userID, req.DepartmentID); err != nil {
		return nil, CodedErrorf(http.StatusBadGateway, "department update failed: %v", err)
	}
	return nil, nil
}

func (s *AdminService) CreateNotification(r *http.Request) (any, error) {
	req, err := ParseRequest[api.NotificationRequest](r)
	if err != nil {
		return nil, err
	}
	if req.UserID == "" || req.Message == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "user_id and message are required")
	}

	if err := s.backend.CreateNotification(r.Context(), bearerToken(r), req); err != nil {
		return nil, CodedErrorf(http.StatusBadGateway, "notification create failed: %v", err)
	}
	return nil, nil
}

func (s *AdminService) MarkNotificationRead(r *http.Request) (any, error) {
	notificationID, err := URLParamInt64(r, "notification_id")
	if err != nil {
		return nil, err
	}

	if err := s.backend.MarkNotificationRead(r.Context(), bearerToken(r), notificationID); err != nil {
		return nil, CodedErrorf(http.StatusBadGateway, "notification update failed: %v", err)
	}
	return nil, nil
}
