package domain

import "time"

// User represents a registered account. Accounts created through the
// Facebook login path carry no Password/Salt; that absence is what
// distinguishes the two signup flows.
type User struct {
	ID          string
	Name        string
	Email       string
	Password    string
	Salt        string
	AccessToken string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPassword reports whether the account was registered with a password,
// as opposed to a Facebook-only account.
func (u *User) HasPassword() bool {
	return u.Password != ""
}

// Summary is the public projection of a User returned by the API.
type Summary struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

// Summary returns the public fields of the user.
func (u *User) Summary() Summary {
	return Summary{
		Name:        u.Name,
		ID:          u.ID,
		Email:       u.Email,
		AccessToken: u.AccessToken,
	}
}
