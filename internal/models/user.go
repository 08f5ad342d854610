package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is one registered account. Only users with Usertype
// "professional" own a Profile and appear in search results.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string        `bson:"username" json:"username"`
	Fullname     string        `bson:"fullname" json:"fullname"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"passwordHash" json:"-"`
	Usertype     UserType      `bson:"usertype" json:"usertype"`
	CreatedAt    int           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    int           `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsProfessional() bool {
	return u.Usertype == UserTypeProfessional
}

// Summary is the only slice of a User that search results expose.
func (u *User) Summary() OwnerSummary {
	return OwnerSummary{
		Username: u.Username,
		Fullname: u.Fullname,
		Email:    u.Email,
	}
}
