package schedule

type GenerateRequest struct {
	Date string `json:"date" validate:"required,dateymd"`
}

type CompleteRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}
