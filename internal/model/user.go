package model

type UserRole string

const (
	Student    UserRole = "student"
	Professor  UserRole = "professor"
	Admin      UserRole = "admin"
	SuperAdmin UserRole = "superadmin"
)

// swagger:model UserAccount
type UserAccount struct {
	UUIDBase
	Name  string   `gorm:"size:255" json:"name"`
	Email string   `gorm:"size:255;uniqueIndex" json:"email"`
	Role  UserRole `gorm:"size:50;default:student" json:"role"`
}

func (UserAccount) TableName() string {
	return "user_account"
}
