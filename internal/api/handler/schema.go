package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type registerResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// --- Books ---

type bookRequest struct {
	Title  string `json:"title"  validate:"required,max=255"`
	Author string `json:"author" validate:"required,max=255"`
}

// bookResponse is the transport view of a book. It never carries the owner:
// every book returned already belongs to the caller.
type bookResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Admin ---

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type activityResponse struct {
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
