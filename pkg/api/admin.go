package api

type TravelRequest struct {
	RequestID      int64  `json:"request_id"`
	UserID         string `json:"user_id,omitempty"`
	Name           string `json:"name"`
	DepartmentID   int    `json:"department_id"`
	Destination    string `json:"destination"`
	TravelDate     string `json:"travel_date"`
	ReturnDate     string `json:"return_date"`
	Reason         string `json:"reason"`
	Status         string `json:"status"` // Pending, Approved or Rejected
	SubmissionDate string `json:"submission_date"`
	SyncState      string `json:"sync_state,omitempty"` // synced, pending or failed
}

type TravelRequestsResponse struct {
	Requests []TravelRequest `json:"requests"`
	Upcoming []TravelRequest `json:"upcoming"` // departures within the next 7 days
}

type UpdateTravelStatusRequest struct {
	Status string `json:"status"`
}

type User struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Type         string `json:"type,omitempty"` // app, kakao or naver
	Role         string `json:"role,omitempty"`
	DepartmentID int    `json:"department_id"`
}

type UsersResponse struct {
	Users []User `json:"users"`
}

type UpdateDepartmentRequest struct {
	DepartmentID int `json:"department_id"`
}

type NotificationRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}
