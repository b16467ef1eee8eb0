package service

import (
	"net/http"
	"strings"
)

// ValidationError describes a rejected form submission: the HTTP status to
// return and the message shown to the user.
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CheckSignup validates a signup submission. A nil result means the
// submission is acceptable.
func CheckSignup(name, email, password string) *ValidationError {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return &ValidationError{
			Status:  http.StatusUnprocessableEntity,
			Message: "All fields are required.",
		}
	}
	if !looksLikeEmail(email) {
		return &ValidationError{
			Status:  http.StatusUnprocessableEntity,
			Message: "Please enter a valid email address.",
		}
	}
	if len(password) < 6 {
		return &ValidationError{
			Status:  http.StatusUnprocessableEntity,
			Message: "Password must be at least 6 characters long.",
		}
	}
	return nil
}

// CheckLogin validates a login submission.
func CheckLogin(email, password string) *ValidationError {
	if strings.TrimSpace(email) == "" || password == "" {
		return &ValidationError{
			Status:  http.StatusUnprocessableEntity,
			Message: "All fields are required.",
		}
	}
	return nil
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(s, " \t")
}
