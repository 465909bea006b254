package domain

import "time"

type Role string

const (
	RoleUser     Role = "user"
	RoleOperator Role = "operator"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated identity a command executes as. It is
// passed explicitly to core operations instead of living in ambient
// session state.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsOperator() bool {
	return p.Role == RoleOperator
}
