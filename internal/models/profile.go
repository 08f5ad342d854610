package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Experience struct {
	Title       string `json:"title" bson:"title"`
	Company     string `json:"company,omitempty" bson:"company,omitempty"`
	StartYear   string `json:"startYear,omitempty" bson:"startYear,omitempty"`
	EndYear     string `json:"endYear,omitempty" bson:"endYear,omitempty"` // year or "Present"
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type Qualification struct {
	Title     string `json:"title" bson:"title"`
	Institute string `json:"institute,omitempty" bson:"institute,omitempty"`
	Year      string `json:"year,omitempty" bson:"year,omitempty"`
}

type Contact struct {
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	Github   string `json:"github,omitempty" bson:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
}

type Metadata struct {
	CreatedAt int `json:"createdAt" bson:"createdAt"`
	UpdatedAt int `json:"updatedAt" bson:"updatedAt"`
}

// Profile is the professional-facing document, one per professional
// user (ownerId is unique). The owner's name lives on the User
// document, not here.
type Profile struct {
	ID             bson.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID        string          `json:"ownerId" bson:"ownerId"`
	Bio            string          `json:"bio,omitempty" bson:"bio,omitempty"`
	Skills         []string        `json:"skills" bson:"skills"`
	Location       string          `json:"location,omitempty" bson:"location,omitempty"`
	Availability   []bool          `json:"availability" bson:"availability"`
	Experience     []Experience    `json:"experience,omitempty" bson:"experience,omitempty"`
	Qualifications []Qualification `json:"qualifications,omitempty" bson:"qualifications,omitempty"`
	Contact        *Contact        `json:"contact,omitempty" bson:"contact,omitempty"`
	EmploymentType EmploymentType  `json:"employmentType" bson:"employmentType"`
	WorkMode       WorkMode        `json:"workMode" bson:"workMode"`
	Metadata       Metadata        `json:"metadata" bson:"metadata"`
}

// NewEmptyProfile is what a user gets when they switch to the
// professional role before filling anything in.
func NewEmptyProfile(ownerID string) *Profile {
	return &Profile{
		OwnerID:        ownerID,
		Skills:         []string{},
		Availability:   make([]bool, 7),
		EmploymentType: EmploymentFullTime,
		WorkMode:       WorkModeRemote,
	}
}

// ActiveDays counts the weekdays marked available.
func (p *Profile) ActiveDays() int {
	n := 0
	for _, day := range p.Availability {
		if day {
			n++
		}
	}
	return n
}

// ScoredProfile is a Profile decorated with the text-index relevance
// score projected by the ranked search stage.
type ScoredProfile struct {
	Profile `bson:",inline"`
	Score   float64 `json:"score" bson:"score"`
}
