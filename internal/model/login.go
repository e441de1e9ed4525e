package model

// A Login is the result of an admin login attempt.
type Login struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
