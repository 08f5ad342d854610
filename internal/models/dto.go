package models

// OwnerSummary is the identity slice joined onto search results and
// profile reads. Nothing else from the User document is exposed.
type OwnerSummary struct {
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

// SearchResult is a profile joined with its owner's summary. Score is
// only set by the ranked text stage.
type SearchResult struct {
	Profile
	Owner OwnerSummary `json:"owner"`
	Score float64      `json:"score,omitempty"`
}

// ProfileDTO is the owner-editable part of a profile, used by the
// upsert endpoint.
type ProfileDTO struct {
	Bio            string          `json:"bio"`
	Skills         []string        `json:"skills"`
	Location       string          `json:"location"`
	Availability   []bool          `json:"availability"`
	Experience     []Experience    `json:"experience"`
	Qualifications []Qualification `json:"qualifications"`
	Contact        *Contact        `json:"contact"`
	EmploymentType EmploymentType  `json:"employmentType"`
	WorkMode       WorkMode        `json:"workMode"`
}

// RecommendationResponse is the skill-recommendation payload: the
// skills on file and newline-joined guidance derived from the lexicon.
type RecommendationResponse struct {
	User              string   `json:"user"`
	CurrentSkills     []string `json:"currentSkills"`
	AIRecommendations string   `json:"aiRecommendations"`
}

type RegisterRequest struct {
	Username string   `json:"username"`
	Fullname string   `json:"fullname"`
	Email    string   `json:"email_address"`
	Usertype UserType `json:"usertype"`
	Password string   `json:"password"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"` // username or email
	Password   string `json:"password"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type UserResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Fullname string   `json:"fullname"`
	Email    string   `json:"email"`
	Usertype UserType `json:"usertype"`
}

type UpdateUsernameRequest struct {
	Username string `json:"username"`
}

type UpdateEmailRequest struct {
	Email string `json:"email_address"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
