package models

// User is an operator account of the HTTP service. Accounts only gate
// access to the API; they are unrelated to the controller's user level.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
