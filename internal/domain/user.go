package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleCoach Role = "coach"
	RoleAdmin Role = "admin"
)

// User represents a staff account (a Coach or an Admin). Players are not
// users; they live on team rosters.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// TeamIDs lists the teams this coach manages.
	TeamIDs []primitive.ObjectID `bson:"teamIds,omitempty" json:"teamIds,omitempty"`
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
