// internal/app/features/admin/types.go
package admin

type superAdminInput struct {
	Username string `json:"username" validate:"required,min=3,max=50" label:"Username"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required,min=6,password" label:"Password"`
}

type resetPasswordInput struct {
	NewPassword string `json:"new_password" validate:"required,min=6,password" label:"Password"`
}

type systemStatus struct {
	SystemStatus    string           `json:"system_status"`
	UserCounts      map[string]int64 `json:"user_counts"`
	CompanyCount    int64            `json:"company_count"`
	ISOCount        int64            `json:"iso_count"`
	SubmissionCount int64            `json:"submission_count"`
	TotalUsers      int64            `json:"total_users"`
}
