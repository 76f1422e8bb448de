package entity

// User is a record from the users.json preference file. The backend trusts the
// username as the identity key; PasswordHash is optional (bcrypt) and only
// checked when present.
type User struct {
	Username     string `json:"username"`
	DisplayName  string `json:"display_name,omitempty"`
	PasswordHash string `json:"password_hash,omitempty"`
	NewsSource   string `json:"news_source,omitempty"`
}
