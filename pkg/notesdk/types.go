package notesdk

import "time"

// Default endpoint paths, relative to the configured base URL.
const (
	tokenPath   = "/api/token/"
	refreshPath = "/api/token/refresh/"
	notesPath   = "/api/notes/"
)

// loginRequest is the body sent to the token endpoint.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPairResponse is the token endpoint's success body. Both values are
// opaque to the client; only the access token's exp claim is ever decoded.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// refreshRequest is the body sent to the refresh endpoint.
type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse is the refresh endpoint's success body.
type RefreshResponse struct {
	Access string `json:"access"`
}

// Note is a single note. A note belongs to exactly one owner; the server
// scopes every operation to the authenticated user.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body"`
	Done      bool      `json:"done"`
	Owner     string    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// NoteDraft is the client-supplied part of a note for create and update.
type NoteDraft struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
	Done  bool   `json:"done"`
}

// ErrorResponse covers the error body shapes the backend produces:
// {"code","message"} from the API proper and {"detail"} from the auth
// endpoints.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}
