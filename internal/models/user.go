package models

// User is the session-facing identity record. It is created on signup or on
// the first sign-in through the identity delegate and lives for the session.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Profile is the public face of a user, one-to-one via UserID. Email mirrors
// the owning user's email.
type Profile struct {
	UserID      int      `json:"user_id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Location    string   `json:"location"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
	MemberSince string   `json:"member_since"`
	Avatar      string   `json:"avatar,omitempty"`
}
