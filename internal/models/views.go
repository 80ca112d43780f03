package models

// UserView is the public projection of a user: the subset of the record that
// is safe to return to clients. Language carries the display string rather
// than the stored code.
type UserView struct {
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Language     string `json:"language"`
	Introduction string `json:"introduction,omitempty"`
}

// NewUserView builds the public projection from the write model.
func NewUserView(u *User) *UserView {
	return &UserView{
		UserID:       u.UserID,
		Username:     u.Username,
		Name:         u.Name,
		Language:     u.Language.DisplayName(),
		Introduction: u.Introduction,
	}
}
