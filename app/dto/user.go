package dto

// UserRequest is the payload for registering a user
type UserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Fullname string `json:"fullname" validate:"required,min=1,max=255"`
}

// UserIDData wraps a newly registered user identifier
type UserIDData struct {
	UserID string `json:"userId"`
}
