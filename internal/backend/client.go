package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"rockbot-frontend/pkg/api"
)

// Client talks to the business backend (/api/v1). Every call is a single
// round trip; failures surface once to the caller and are never retried.
type Client struct {
	client *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
	}
}

func (c *Client) post(ctx context.Context, path string, body, result any) (*resty.Response, error) {
	return c.client.R().SetContext(ctx).SetBody(body).SetResult(result).SetError(result).Post(path)
}

func (c *Client) SignIn(ctx context.Context, req api.SignInRequest) (api.SignInResponse, error) {
	var out api.SignInResponse
	resp, err := c.post(ctx, "/api/v1/auth/sign-in", req, &out)
	if err != nil {
		return api.SignInResponse{}, fmt.Errorf("sign-in request failed: %w", err)
	}
	// The backend reports sign-in failures inside the {code, message}
	// envelope with a non-2xx status; decode those instead of erroring.
	if resp.IsError() && out.Code == "" {
		return api.SignInResponse{}, fmt.Errorf("sign-in request failed: status %d", resp.StatusCode())
	}
	return out, nil
}

func (c *Client) SignUp(ctx context.Context, req api.SignUpRequest) (api.StatusResponse, error) {
	return c.statusPost(ctx, "/api/v1/auth/sign-up", req)
}

func (c *Client) IdCheck(ctx context.Context, req api.IdCheckRequest) (api.StatusResponse, error) {
	return c.statusPost(ctx, "/api/v1/auth/id-check", req)
}

func (c *Client) EmailCertification(ctx context.Context, req api.EmailCertificationRequest) (api.StatusResponse, error) {
	return c.statusPost(ctx, "/api/v1/auth/email-certification", req)
}

func (c *Client) CheckCertification(ctx context.Context, req api.CheckCertificationRequest) (api.StatusResponse, error) {
	return c.statusPost(ctx, "/api/v1/auth/check-certification", req)
}

func (c *Client) statusPost(ctx context.Context, path string, body any) (api.StatusResponse, error) {
	var out api.StatusResponse
	resp, err := c.post(ctx, path, body, &out)
	if err != nil {
		return api.StatusResponse{}, fmt.Errorf("request to %s failed: %w", path, err)
	}
	if resp.IsError() && out.Code == "" {
		return api.StatusResponse{}, fmt.Errorf("request to %s failed: status %d", path, resp.StatusCode())
	}
	return out, nil
}

// ListTravelRequests fetches the travel-request list in server order.
func (c *Client) ListTravelRequests(ctx context.Context, token string) ([]api.TravelRequest, error) {
	var out []api.TravelRequest
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&out).
		Get("/api/v1/auth/travel-requests")
	if err != nil {
		return nil, fmt.Errorf("travel-requests request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("travel-requests request failed: status %d", resp.StatusCode())
	}
	return out, nil
}

// UpdateTravelRequestStatus confirms a triage decision with the backend.
func (c *Client) UpdateTravelRequestStatus(ctx context.Context, token string, requestID int64, status string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(api.UpdateTravelStatusRequest{Status: status}).
		Put(fmt.Sprintf("/api/v1/auth/travel-requests/%d", requestID))
	if err != nil {
		return fmt.Errorf("travel-request update failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("travel-request update failed: status %d", resp.StatusCode())
	}
	return nil
}

// ListUsers fetches the user directory. The backend exposes the same list
// under /auth/all and /user/all; /auth/all is canonical here and /user/all is
// the fallback for deployments that predate it.
func (c *Client) ListUsers(ctx context.Context, token string) ([]api.User, error) {
	users, err := c.listUsers(ctx, token, "/api/v1/auth/all")
	if err == nil {
		return users, nil
	}
	return c.listUsers(ctx, token, "/api/v1/user/all")
}

func (c *Client) listUsers(ctx context.Context, token, path string) ([]api.User, error) {
	var out []api.User
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&out).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("user directory request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("user directory request failed: status %d", resp.StatusCode())
	}
	return out, nil
}

// UpdateDepartment reassigns a user to a new department.
func (c *Client) UpdateDepartment(ctx context.Context, token, userID string, departmentID int) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(api.UpdateDepartmentRequest{DepartmentID: departmentID}).
		Put(fmt.Sprintf("/api/v1/auth/%s/department", userID))
	if err != nil {
		return fmt.Errorf("department update failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("department update failed: status %d", resp.StatusCode())
	}
	return nil
}

// CreateNotification posts a notification for a user.
func (c *Client) CreateNotification(ctx context.Context, token string, req api.NotificationRequest) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(req).
		Post("/api/v1/auth/notifications")
	if err != nil {
		return fmt.Errorf("notification create failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("notification create failed: status %d", resp.StatusCode())
	}
	return nil
}

// MarkNotificationRead flips a notification's read state.
func (c *Client) MarkNotificationRead(ctx context.Context, token string, notificationID int64) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Put(fmt.Sprintf("/api/v1/auth/notifications/%d/read", notificationID))
	if err != nil {
		return fmt.Errorf("notification update failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("notification update failed: status %d", resp.StatusCode())
	}
	return nil
}
