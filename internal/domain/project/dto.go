package project

type ContactInput struct {
	Name    string  `json:"name" binding:"required,max=200" example:"Dana Cohen"`
	Phone   *string `json:"phone,omitempty" binding:"omitempty,max=32" example:"050-1234567"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email" example:"dana@example.com"`
	Address *string `json:"address,omitempty" binding:"omitempty,max=300"`
	City    *string `json:"city,omitempty" binding:"omitempty,max=100"`
	Notes   *string `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

type CreateProjectDTO struct {
	Name        string        `json:"name" binding:"required,min=1,max=200" example:"Kitchen renovation"`
	Description *string       `json:"description,omitempty" binding:"omitempty,max=2000"`
	Contact     *ContactInput `json:"contact,omitempty"`
}

type UpdateProjectDTO struct {
	Name        *string       `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string       `json:"description,omitempty" binding:"omitempty,max=2000"`
	Contact     *ContactInput `json:"contact,omitempty"`
}

type UpdateStatusDTO struct {
	Status Status `json:"status" binding:"required" example:"approved"`
}

// StepStatus is the progress of one document step in a project's workflow.
type StepStatus string

const (
	StepNotStarted StepStatus = "not_started"
	StepCreated    StepStatus = "created"
	StepSent       StepStatus = "sent"
	StepSigned     StepStatus = "signed"
)

type WorkflowStep struct {
	Type   string     `json:"type"`
	Status StepStatus `json:"status"`
	FormID *string    `json:"form_id,omitempty"`
}
