package models

type UserType string

const (
	UserTypeSeeker       UserType = "user"
	UserTypeProfessional UserType = "professional"
)

type EmploymentType string

const (
	EmploymentFullTime  EmploymentType = "full-time"
	EmploymentPartTime  EmploymentType = "part-time"
	EmploymentFreelance EmploymentType = "freelance"
	EmploymentContract  EmploymentType = "contract"
)

type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeOnsite WorkMode = "onsite"
	WorkModeHybrid WorkMode = "hybrid"
)
