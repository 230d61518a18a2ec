package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleBusiness UserRole = "business"
)

// Valid reports whether r is one of the registrable roles.
func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RoleBusiness
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FirstName    string    `json:"first_name" gorm:"size:150"`
	LastName     string    `json:"last_name" gorm:"size:150"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	IsStaff      bool      `json:"is_staff" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

// Profile carries the marketplace role and contact data of a user.
// Exactly one profile exists per user.
type Profile struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	UserID       int64     `json:"user" gorm:"not null;uniqueIndex"`
	Type         UserRole  `json:"type" gorm:"size:8;not null;index"`
	Email        string    `json:"email" gorm:"size:254"`
	FirstName    string    `json:"first_name" gorm:"size:150"`
	LastName     string    `json:"last_name" gorm:"size:150"`
	File         string    `json:"file" gorm:"size:80"`
	Location     string    `json:"location" gorm:"size:80"`
	Tel          string    `json:"tel" gorm:"size:30"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours" gorm:"size:50"`
	CreatedAt    time.Time `json:"created_at"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}

func (p *Profile) AccessParties() Parties {
	return Parties{Owner: p.UserID}
}

// DefaultProfile is the profile provisioned for users created outside the
// registration flow.
func DefaultProfile(u *User) *Profile {
	return &Profile{
		UserID:    u.ID,
		Type:      RoleCustomer,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// AuthToken binds the opaque bearer credential to a user. One per user.
type AuthToken struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null;uniqueIndex"`
	Key       string    `gorm:"column:token_key;size:64;not null;uniqueIndex"`
	CreatedAt time.Time
}

// Parties names the users an object is attached to.
type Parties struct {
	Owner    int64
	Customer int64
	Business int64
}
