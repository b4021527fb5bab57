// internal/app/features/users/types.go
package users

// createUserInput is the POST /users body.
type createUserInput struct {
	Username        string  `json:"username" validate:"required,min=3,max=50" label:"Username"`
	Email           string  `json:"email" validate:"required,email" label:"Email"`
	Role            string  `json:"roletype" validate:"required,role" label:"Role"`
	Password        string  `json:"password" validate:"required,min=6,password" label:"Password"`
	CompanyID       *string `json:"company_id" validate:"omitempty,objectid" label:"company ID"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,gte=0,lte=50" label:"Experience years"`
	IsActive        *bool   `json:"is_active"`
}

// editUserInput is the PUT /users/{id} body; absent fields are left unchanged.
type editUserInput struct {
	Username        *string `json:"username" validate:"omitempty,min=3,max=50" label:"Username"`
	Email           *string `json:"email" validate:"omitempty,email" label:"Email"`
	Role            *string `json:"roletype" validate:"omitempty,role" label:"Role"`
	Password        *string `json:"password" validate:"omitempty,min=6,password" label:"Password"`
	CompanyID       *string `json:"company_id" validate:"omitempty,objectid" label:"company ID"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,gte=0,lte=50" label:"Experience years"`
	IsActive        *bool   `json:"is_active"`
}
