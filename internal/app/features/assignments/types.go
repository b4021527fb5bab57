// internal/app/features/assignments/types.go
package assignments

type assignInput struct {
	UserID      string   `json:"user_id" validate:"required,objectid" label:"user ID"`
	QuestionIDs []string `json:"question_ids" validate:"required,min=1,max=500" label:"Question IDs"`
}

type assignResult struct {
	Message           string `json:"message"`
	AssignmentID      string `json:"assignment_id"`
	AssignedQuestions int    `json:"assigned_questions"`
}

type editAssignmentInput struct {
	QuestionIDs *[]string `json:"question_ids" validate:"omitempty,max=500" label:"Question IDs"`
	IsActive    *bool     `json:"is_active"`
}
