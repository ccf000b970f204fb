package api

// Response codes reported by the business backend. The gateway passes these
// through so the browser can keep its existing handling.
const (
	CodeSuccess           = "SU"
	CodeValidationFail    = "VF"
	CodeDuplicateID       = "DI"
	CodeSignInFail        = "SF"
	CodeCertificationFail = "CF"
	CodeDatabaseError     = "DBE"
)

type SignInRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	Token          string `json:"token,omitempty"`
	ExpirationTime int64  `json:"expiration_time,omitempty"`
	UserID         string `json:"user_id,omitempty"`
	Name           string `json:"name,omitempty"`
	DepartmentID   int    `json:"department_id,omitempty"`
}

type SignUpRequest struct {
	ID                  string `json:"id"`
	Password            string `json:"password"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	CertificationNumber string `json:"certification_number"`
}

type IdCheckRequest struct {
	ID string `json:"id"`
}

type EmailCertificationRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type CheckCertificationRequest struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	CertificationNumber string `json:"certification_number"`
}

// StatusResponse is the generic {code, message} envelope the backend returns
// for operations without additional payload.
type StatusResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
