package transport

// CredentialsRequest is the body of login and registration.
type CredentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// TaskCreateRequest is the body of POST /account/tasks.
type TaskCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// TaskEditRequest is the body of PUT /account/tasks/{id}. Nil or empty
// title/description keep the stored values.
type TaskEditRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}
