package models

// User represents an account owner or invited team member
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Not serialized
	CreatedAt    string `json:"created_at"`
}

// TeamMember represents an owner's invitation for another user to share
// their data scope
type TeamMember struct {
	OwnerID   string `json:"owner_id"`
	Email     string `json:"email"`
	MemberID  string `json:"member_id"`
	CreatedAt string `json:"created_at"`
}
