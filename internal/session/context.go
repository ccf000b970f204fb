package session

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultUserID is used when no source yields an identity.
const DefaultUserID = "Guest"

// Sources a Context can be resolved from, strongest first.
const (
	SourceToken   = "token"
	SourceProfile = "profile"
	SourceURL     = "url"
	SourceDefault = "default"
)

// Context is the single explicit session identity constructed once at
// authentication time and passed to every view. It replaces the browser
// client's ad hoc mix of cookies, localStorage blobs and URL parameters.
type Context struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name,omitempty"`
	DepartmentID *int   `json:"department_id,omitempty"`
	Role         string `json:"role,omitempty"`
	Token        string `json:"-"`
	Source       string `json:"source"`
}

// Profile is the persisted profile blob the browser stored under "userInfo".
type Profile struct {
	UserID       string `json:"userId"`
	Name         string `json:"name,omitempty"`
	DepartmentID *int   `json:"departmentId,omitempty"`
	Role         string `json:"role,omitempty"`
}

// Input carries every identity source a request may present.
type Input struct {
	// BearerToken is the opaque token issued by the backend. Claims are read
	// without signature verification; issuance and validation are
	// server-side concerns.
	BearerToken string
	// ProfileBlob is the persisted profile JSON, if any.
	ProfileBlob []byte
	// URLValues are query/path parameters (the OAuth redirect carries the
	// identity this way).
	URLValues url.Values
}

// Resolve builds the session context with one deterministic precedence:
// token > persisted profile > URL parameters > default. A malformed source
// falls through to the next; the final fallback is the Guest identity.
func Resolve(in Input) Context {
	if ctx, ok := fromToken(in.BearerToken); ok {
		ctx.Token = in.BearerToken
		return ctx
	}
	if ctx, ok := fromProfile(in.ProfileBlob); ok {
		ctx.Token = in.BearerToken
		return ctx
	}
	if ctx, ok := fromURL(in.URLValues); ok {
		ctx.Token = in.BearerToken
		return ctx
	}
	return Context{UserID: DefaultUserID, Source: SourceDefault, Token: in.BearerToken}
}

func fromToken(token string) (Context, bool) {
	if token == "" {
		return Context{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Context{}, false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Context{}, false
	}

	ctx := Context{UserID: sub, Source: SourceToken}
	if name, ok := claims["name"].(string); ok {
		ctx.Name = name
	}
	return ctx, true
}

func fromProfile(blob []byte) (Context, bool) {
	if len(blob) == 0 {
		return Context{}, false
	}

	var profile Profile
	if err := json.Unmarshal(blob, &profile); err != nil || profile.UserID == "" {
		return Context{}, false
	}

	return Context{
		UserID:       profile.UserID,
		Name:         profile.Name,
		DepartmentID: profile.DepartmentID,
		Role:         profile.Role,
		Source:       SourceProfile,
	}, true
}

func fromURL(values url.Values) (Context, bool) {
	userID := strings.TrimSpace(values.Get("userId"))
	if userID == "" {
		return Context{}, false
	}

	ctx := Context{UserID: userID, Name: values.Get("name"), Source: SourceURL}
	if raw := values.Get("departmentId"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			ctx.DepartmentID = &id
		}
	}
	return ctx, true
}
