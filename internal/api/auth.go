package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"rockbot-frontend/internal/backend"
	"rockbot-frontend/internal/session"
	"rockbot-frontend/pkg/api"
)

// AuthService passes the authentication forms through to the business backend
// and resolves the session context on successful sign-in. Bad credentials
// come back as an inline 401 message, never a redirect or a 500.
type AuthService struct {
	backend *backend.Client
}

func NewAuthService(client *backend.Client) *AuthService {
	return &AuthService{backend: client}
}

func (s *AuthService) AddRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/sign-in", RestHandler(s.SignIn))
		r.Post("/sign-up", RestHandler(s.SignUp))
		r.Post("/id-check", RestHandler(s.IdCheck))
		r.Post("/email-certification", RestHandler(s.EmailCertification))
		r.Post("/check-certification", RestHandler(s.CheckCertification))
	})
}

type signInResult struct {
	api.SignInResponse
	Session session.Context `json:"session"`
}

func (s *AuthService) SignIn(r *http.Request) (any, error) {
	req, err := ParseRequest[api.SignInRequest](r)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "아이디와 비밀번호 모두 입력하세요.")
	}

	resp, err := s.backend.SignIn(r.Context(), req)
	if err != nil {
		return nil, CodedErrorf(http.StatusBadGateway, "sign-in unavailable: %v", err)
	}

	if resp.Code == api.CodeSignInFail {
		return nil, CodedErrorf(http.StatusUnauthorized, "로그인 정보가 일치하지 않습니다.")
	}
	if resp.Code != api.CodeSuccess {
		return signInResult{SignInResponse: resp}, nil
	}

	profile := session.Profile{
		UserID: resp.UserID,
		Name:   resp.Name,
	}
	if resp.DepartmentID != 0 {
		id := resp.DepartmentID
		profile.DepartmentID = &id
	}
	blob, _ := json.Marshal(profile)

	ctx := session.Resolve(session.Input{
		BearerToken: resp.Token,
		ProfileBlob: blob,
	})

	return signInResult{SignInResponse: resp, Session: ctx}, nil
}

func (s *AuthService) SignUp(r *http.Request) (any, error) {
	req, err := ParseRequest[api.SignUpRequest](r)
	if err != nil {
		return nil, err
	}

	if req.ID == "" || req.Password == "" || req.Name == "" || req.Email == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "필수 항목을 모두 입력하세요.")
	}

	resp, err := s.backend.SignUp(r.Context(), req)
	if err != nil {
		return nil, CodedErrorf(http.StatusBadGateway, "sign-up unavailable: %v", err)
	}
	return resp, nil
}

func (s *AuthService) IdCheck(r *http.Request) (any, error) {
	req, err := ParseRequest[api.IdCheckRequest](r)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "아이디를 입력하세요.")
	}

	resp, err := s.backend.IdCheck(r.Context(), req)
	if err != nil {
		return nil, CodedErrorf(http.StatusBadGateway, "id-check unavailable: %v", err)
	}
	return resp, nil
}

func (s *AuthService) EmailCertification(r *http.Request) (any, error) {
	req, err := ParseRequest[api.EmailCertificationRequest](r)
	if err != nil {
		return nil, err
	}
	if req.ID == "" || req.Email == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "아이디와 이메일을 모두 입력하세요.")
	}

	resp, err := s.backend.EmailCertification(r.Context(), req)
	if err != nil {
		return nil, CodedErrorf(http.StatusBadGateway, "email certification unavailable: %v", err)
	}
	return resp, nil
}

func (s *AuthService) CheckCertification(r *http.Request) (any, error) {
	req, err := ParseRequest[api.CheckCertificationRequest](r)
	if err != nil {
		return nil, err
	}
	if req.ID == "" || req.Email == "" || req.CertificationNumber == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "인증번호를 입력하세요.")
	}

	resp, err := s.backend.CheckCertification(r.Context(), req)
	if err != nil {
		return nil, CodedErrorf(http.StatusBadGateway, "certification check unavailable: %v", err)
	}
	return resp, nil
}
