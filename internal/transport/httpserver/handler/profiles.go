package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	profiledomain "profile-service/internal/domain/profile"
)

type profileResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`

	MobileNumber      *string `json:"mobile_number"`
	ProfessionalTitle *string `json:"professional_title"`
	Location          *string `json:"location"`
	ProfessionalBio   *string `json:"professional_bio"`
	JobAlerts         bool    `json:"job_alerts"`
	LinkedinProfile   *string `json:"linkedin_profile"`
	PortfolioWebsite  *string `json:"portfolio_website"`
	GithubProfile     *string `json:"github_profile"`
	ProfileImage      *string `json:"profile_image"`

	JobTitles         *string `json:"job_titles"`
	WorkType          *string `json:"work_type"`
	CurrentSalary     *string `json:"current_salary"`
	ExpectedSalary    *string `json:"expected_salary"`
	AvailabilityStart *string `json:"availability_start"`
	Relocate          bool    `json:"relocate"`
	Remote            bool    `json:"remote"`
	Hybrid            bool    `json:"hybrid"`

	CompanyName      *string `json:"company_name"`
	JobTitle         *string `json:"job_title"`
	JobLocation      *string `json:"job_location"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	CurrentlyWorking bool    `json:"currently_working"`
	Responsibilities *string `json:"responsibilities"`
	Skills           *string `json:"skills"`

	EducationLevel    *string `json:"education_level"`
	FieldOfStudy      *string `json:"field_of_study"`
	CollegeName       *string `json:"college_name"`
	EduStartYear      *string `json:"edu_start_year"`
	EduEndYear        *string `json:"edu_end_year"`
	CurrentlyStudying bool    `json:"currently_studying"`

	ResumeSkills *string `json:"resume_skills"`
	ResumeFile   *string `json:"resume_file"`

	CertificateName *string `json:"certificate_name"`
	IssuingOrg      *string `json:"issuing_org"`
	IssueDate       *string `json:"issue_date"`
	ExpiryDate      *string `json:"expiry_date"`
	CredentialURL   *string `json:"credential_url"`

	ProjectName        *string `json:"project_name"`
	Technologies       *string `json:"technologies"`
	ProjectDescription *string `json:"project_description"`
	ProjectLink        *string `json:"project_link"`
	ProjectImageURL    *string `json:"project_image_url"`
}

func toProfileResponse(p profiledomain.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,

		MobileNumber:      p.Contact.MobileNumber,
		ProfessionalTitle: p.Contact.ProfessionalTitle,
		Location:          p.Contact.Location,
		ProfessionalBio:   p.Contact.ProfessionalBio,
		JobAlerts:         p.Contact.JobAlerts,
		LinkedinProfile:   p.Contact.LinkedinProfile,
		PortfolioWebsite:  p.Contact.PortfolioWebsite,
		GithubProfile:     p.Contact.GithubProfile,
		ProfileImage:      p.Contact.ProfileImage,

		JobTitles:         p.JobPreferences.JobTitles,
		WorkType:          p.JobPreferences.WorkType,
		CurrentSalary:     p.JobPreferences.CurrentSalary,
		ExpectedSalary:    p.JobPreferences.ExpectedSalary,
		AvailabilityStart: p.JobPreferences.AvailabilityStart,
		Relocate:          p.JobPreferences.Relocate,
		Remote:            p.JobPreferences.Remote,
		Hybrid:            p.JobPreferences.Hybrid,

		CompanyName:      p.Employment.CompanyName,
		JobTitle:         p.Employment.JobTitle,
		JobLocation:      p.Employment.JobLocation,
		StartDate:        p.Employment.StartDate,
		EndDate:          p.Employment.EndDate,
		CurrentlyWorking: p.Employment.CurrentlyWorking,
		Responsibilities: p.Employment.Responsibilities,
		Skills:           p.Employment.Skills,

		EducationLevel:    p.Education.EducationLevel,
		FieldOfStudy:      p.Education.FieldOfStudy,
		CollegeName:       p.Education.CollegeName,
		EduStartYear:      p.Education.EduStartYear,
		EduEndYear:        p.Education.EduEndYear,
		CurrentlyStudying: p.Education.CurrentlyStudying,

		ResumeSkills: p.Resume.ResumeSkills,
		ResumeFile:   p.Resume.ResumeFile,

		CertificateName: p.Certification.CertificateName,
		IssuingOrg:      p.Certification.IssuingOrg,
		IssueDate:       p.Certification.IssueDate,
		ExpiryDate:      p.Certification.ExpiryDate,
		CredentialURL:   p.Certification.CredentialURL,

		ProjectName:        p.Project.ProjectName,
		Technologies:       p.Project.Technologies,
		ProjectDescription: p.Project.ProjectDescription,
		ProjectLink:        p.Project.ProjectLink,
		ProjectImageURL:    p.Project.ProjectImageURL,
	}
}

func (h *Handlers) ListProfiles(w http.ResponseWriter, r *http.Request) {
	items, err := h.Profiles.ListProfiles(r.Context())
	if err != nil {
		h.log.InternalError("profiles: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]profileResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toProfileResponse(item))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	profile, err := h.Profiles.GetProfile(r.Context(), id)
	if err != nil {
		h.writeProfileError(w, "profiles: get failed", err, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(*profile))
}

func (h *Handlers) CreateProfile(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r, h.maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form", "invalid form body")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	input, err := buildCreateInput(r.PostForm)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	parts := []struct {
		key string
		dst **profiledomain.Upload
	}{
		{key: "profile_image", dst: &input.ProfileImage},
		{key: "resume_file", dst: &input.ResumeFile},
		{key: "project_image", dst: &input.ProjectImage},
	}
	for _, part := range parts {
		header := formFile(r.MultipartForm, part.key)
		if header == nil {
			continue
		}
		f, err := header.Open()
		if err != nil {
			h.log.InternalError("profiles: open file part failed", err, "field", part.key)
			writeError(w, http.StatusBadRequest, "invalid_form", "invalid file part")
			return
		}
		opened = append(opened, f)
		*part.dst = &profiledomain.Upload{Filename: header.Filename, Content: f}
	}

	created, err := h.Profiles.CreateProfile(r.Context(), input)
	if err != nil {
		h.writeProfileError(w, "profiles: create failed", err, "email", input.Email)
		return
	}

	h.log.Info("profiles: created", "id", created.ID)
	writeJSON(w, http.StatusOK, toProfileResponse(*created))
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := parseForm(r, h.maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form", "invalid form body")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	updated, err := h.Profiles.UpdateProfile(r.Context(), profiledomain.UpdateProfileInput{
		ID:        id,
		FirstName: r.PostForm.Get("first_name"),
	})
	if err != nil {
		h.writeProfileError(w, "profiles: update failed", err, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(*updated))
}

func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Profiles.DeleteProfile(r.Context(), id); err != nil {
		h.writeProfileError(w, "profiles: delete failed", err, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, detailResponse{Detail: "Profile deleted successfully"})
}

func (h *Handlers) writeProfileError(w http.ResponseWriter, message string, err error, args ...any) {
	switch {
	case errors.Is(err, profiledomain.ErrProfileNotFound):
		h.log.BusinessError(message, err, args...)
		writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
	case errors.Is(err, profiledomain.ErrValidation):
		h.log.BusinessError(message, err, args...)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, profiledomain.ErrEmailTaken):
		h.log.BusinessError(message, err, args...)
		writeError(w, http.StatusConflict, "email_taken", "email already registered")
	default:
		h.log.InternalError(message, err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func buildCreateInput(form url.Values) (profiledomain.CreateProfileInput, error) {
	bools := make(map[string]bool, 6)
	for _, key := range []string{"job_alerts", "relocate", "remote", "hybrid", "currently_working", "currently_studying"} {
		value, err := formBool(form, key)
		if err != nil {
			return profiledomain.CreateProfileInput{}, err
		}
		bools[key] = value
	}

	return profiledomain.CreateProfileInput{
		FirstName: form.Get("first_name"),
		LastName:  form.Get("last_name"),
		Email:     form.Get("email"),
		Contact: profiledomain.Contact{
			MobileNumber:      formString(form, "mobile_number"),
			ProfessionalTitle: formString(form, "professional_title"),
			Location:          formString(form, "location"),
			ProfessionalBio:   formString(form, "professional_bio"),
			JobAlerts:         bools["job_alerts"],
			LinkedinProfile:   formString(form, "linkedin_profile"),
			PortfolioWebsite:  formString(form, "portfolio_website"),
			GithubProfile:     formString(form, "github_profile"),
		},
		JobPreferences: profiledomain.JobPreferences{
			JobTitles:         formString(form, "job_titles"),
			WorkType:          formString(form, "work_type"),
			CurrentSalary:     formString(form, "current_salary"),
			ExpectedSalary:    formString(form, "expected_salary"),
			AvailabilityStart: formString(form, "availability_start"),
			Relocate:          bools["relocate"],
			Remote:            bools["remote"],
			Hybrid:            bools["hybrid"],
		},
		Employment: profiledomain.Employment{
			CompanyName:      formString(form, "company_name"),
			JobTitle:         formString(form, "job_title"),
			JobLocation:      formString(form, "job_location"),
			StartDate:        formString(form, "start_date"),
			EndDate:          formString(form, "end_date"),
			CurrentlyWorking: bools["currently_working"],
			Responsibilities: formString(form, "responsibilities"),
			Skills:           formString(form, "skills"),
		},
		Education: profiledomain.Education{
			EducationLevel:    formString(form, "education_level"),
			FieldOfStudy:      formString(form, "field_of_study"),
			CollegeName:       formString(form, "college_name"),
			EduStartYear:      formString(form, "edu_start_year"),
			EduEndYear:        formString(form, "edu_end_year"),
			CurrentlyStudying: bools["currently_studying"],
		},
		Resume: profiledomain.Resume{
			ResumeSkills: formString(form, "resume_skills"),
		},
		Certification: profiledomain.Certification{
			CertificateName: formString(form, "certificate_name"),
			IssuingOrg:      formString(form, "issuing_org"),
			IssueDate:       formString(form, "issue_date"),
			ExpiryDate:      formString(form, "expiry_date"),
			CredentialURL:   formString(form, "credential_url"),
		},
		Project: profiledomain.Project{
			ProjectName:        formString(form, "project_name"),
			Technologies:       formString(form, "technologies"),
			ProjectDescription: formString(form, "project_description"),
			ProjectLink:        formString(form, "project_link"),
		},
	}, nil
}
