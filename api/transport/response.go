package transport

// Message is the success body used by every mutating endpoint.
type Message struct {
	Msg     string `json:"msg"`
	Success bool   `json:"success"`
}

// LoginResponse carries the token for clients that prefer the
// Authorization header to the session cookie.
type LoginResponse struct {
	Msg         string `json:"msg"`
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type AccountResponse struct {
	Msg     string `json:"msg"`
	UID     string `json:"uid"`
	Success bool   `json:"success"`
}

type TaskCreatedResponse struct {
	Msg     string `json:"msg"`
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail Message `json:"detail"`
}

// NewSuccess returns a success message body.
func NewSuccess(msg string) Message {
	return Message{Msg: msg, Success: true}
}

// NewError returns an error body.
func NewError(msg string) ErrorResponse {
	return ErrorResponse{Detail: Message{Msg: msg, Success: false}}
}

// AccessDenied is the single message for every authentication failure, so
// clients cannot tell a missing token from a bad one.
const AccessDenied = "Access denied: Authorization required or expired. Please Log In"
