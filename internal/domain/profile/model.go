package profile

import (
	"io"
	"time"
)

// Profile is stored as a single flat row; the embedded groups only exist on the Go side.
type Profile struct {
	ID        int64  `gorm:"primaryKey"`
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`

	Contact        Contact        `gorm:"embedded"`
	JobPreferences JobPreferences `gorm:"embedded"`
	Employment     Employment     `gorm:"embedded"`
	Education      Education      `gorm:"embedded"`
	Resume         Resume         `gorm:"embedded"`
	Certification  Certification  `gorm:"embedded"`
	Project        Project        `gorm:"embedded"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type Contact struct {
	MobileNumber      *string
	ProfessionalTitle *string
	Location          *string
	ProfessionalBio   *string `gorm:"type:text"`
	JobAlerts         bool    `gorm:"not null"`
	LinkedinProfile   *string
	PortfolioWebsite  *string
	GithubProfile     *string
	ProfileImage      *string
}

// JobPreferences.JobTitles is a raw comma-separated string.
type JobPreferences struct {
	JobTitles         *string
	WorkType          *string
	CurrentSalary     *string
	ExpectedSalary    *string
	AvailabilityStart *string
	Relocate          bool `gorm:"not null"`
	Remote            bool `gorm:"not null"`
	Hybrid            bool `gorm:"not null"`
}

type Employment struct {
	CompanyName      *string
	JobTitle         *string
	JobLocation      *string
	StartDate        *string
	EndDate          *string
	CurrentlyWorking bool    `gorm:"not null"`
	Responsibilities *string `gorm:"type:text"`
	Skills           *string
}

type Education struct {
	EducationLevel    *string
	FieldOfStudy      *string
	CollegeName       *string
	EduStartYear      *string
	EduEndYear        *string
	CurrentlyStudying bool `gorm:"not null"`
}

type Resume struct {
	ResumeSkills *string
	ResumeFile   *string
}

type Certification struct {
	CertificateName *string
	IssuingOrg      *string
	IssueDate       *string
	ExpiryDate      *string
	CredentialURL   *string
}

type Project struct {
	ProjectName        *string
	Technologies       *string
	ProjectDescription *string `gorm:"type:text"`
	ProjectLink        *string
	ProjectImageURL    *string
}

// Upload is a file attached to a create request.
type Upload struct {
	Filename string
	Content  io.Reader
}

// CreateProfileInput carries every form value. File path fields inside the groups
// are ignored; they are filled from the stored uploads.
type CreateProfileInput struct {
	FirstName string
	LastName  string
	Email     string

	Contact        Contact
	JobPreferences JobPreferences
	Employment     Employment
	Education      Education
	Resume         Resume
	Certification  Certification
	Project        Project

	ProfileImage *Upload
	ResumeFile   *Upload
	ProjectImage *Upload
}

// UpdateProfileInput only carries first_name; nothing else is writable after create.
type UpdateProfileInput struct {
	ID        int64
	FirstName string
}
