package models

// Data Transfer Objects

type SignupRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=1,max=128"`
	LastName    string `json:"lastName" validate:"required,min=1,max=128"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	Profession  string `json:"profession" validate:"required,oneof=student teacher"`
	ClassName   string `json:"className" validate:"max=128"`
	CollegeName string `json:"collegeName" validate:"max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirm struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName" validate:"omitempty,min=1,max=128"`
	LastName    *string `json:"lastName" validate:"omitempty,min=1,max=128"`
	ClassName   *string `json:"className" validate:"omitempty,max=128"`
	CollegeName *string `json:"collegeName" validate:"omitempty,max=255"`
}

type CreateSubjectRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=255"`
	Instructor string `json:"instructor" validate:"max=255"`
}

type CreateAssignmentRequest struct {
	SubjectID string   `json:"subjectId" validate:"required,uuid"`
	Title     string   `json:"title" validate:"required,min=1,max=255"`
	DueDate   string   `json:"dueDate" validate:"required"`
	Status    string   `json:"status" validate:"omitempty,oneof=Pending Completed"`
	Grade     *float64 `json:"grade" validate:"omitempty,min=0,max=100"`
}

type UpdateAssignmentRequest struct {
	Title   *string  `json:"title" validate:"omitempty,min=1,max=255"`
	DueDate *string  `json:"dueDate"`
	Status  *string  `json:"status" validate:"omitempty,oneof=Pending Completed"`
	Grade   *float64 `json:"grade" validate:"omitempty,min=0,max=100"`
}

type CreateMaterialRequest struct {
	SubjectID   string `json:"subjectId" validate:"required,uuid"`
	Type        string `json:"type" validate:"required,oneof=Notes Practicals PYQ"`
	ContentType string `json:"contentType" validate:"required,oneof=link text"`
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Content     string `json:"content" validate:"required"`
	IsPublic    bool   `json:"isPublic"`
}

type CreateTimetableEntryRequest struct {
	Type      string `json:"type" validate:"required,oneof=lecture written_exam practical_exam"`
	Day       string `json:"day" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday"`
	Date      string `json:"date"`
	StartTime string `json:"startTime" validate:"required,len=5"`
	EndTime   string `json:"endTime" validate:"required,len=5"`
	Subject   string `json:"subject" validate:"required,max=255"`
	Details   string `json:"details" validate:"max=2000"`
}

type UpdateTimetableEntryRequest struct {
	Day       *string `json:"day" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday"`
	Date      *string `json:"date"`
	StartTime *string `json:"startTime" validate:"omitempty,len=5"`
	EndTime   *string `json:"endTime" validate:"omitempty,len=5"`
	Subject   *string `json:"subject" validate:"omitempty,max=255"`
	Details   *string `json:"details" validate:"omitempty,max=2000"`
}

type CreateFeedbackRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Feedback string `json:"feedback" validate:"required,min=1,max=4000"`
}

type SavePlanRequest struct {
	SubjectID   string `json:"subjectId" validate:"required,uuid"`
	Day         string `json:"day" validate:"required,max=16"`
	Time        string `json:"time" validate:"required,max=32"`
	Topic       string `json:"topic" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}
