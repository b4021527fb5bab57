// internal/app/features/companies/types.go
package companies

type createCompanyInput struct {
	Name        string  `json:"company_name" validate:"required,min=1,max=200" label:"Company name"`
	Description *string `json:"company_description" validate:"omitempty,max=1000" label:"Company description"`
	UserID      string  `json:"user_id" validate:"required,objectid" label:"user ID"`
	ISOID       string  `json:"iso_id" validate:"required,objectid" label:"ISO ID"`
	IsActive    *bool   `json:"is_active"`
}

type editCompanyInput struct {
	Name        *string `json:"company_name" validate:"omitempty,min=1,max=200" label:"Company name"`
	Description *string `json:"company_description" validate:"omitempty,max=1000" label:"Company description"`
	UserID      *string `json:"user_id" validate:"omitempty,objectid" label:"user ID"`
	ISOID       *string `json:"iso_id" validate:"omitempty,objectid" label:"ISO ID"`
	IsActive    *bool   `json:"is_active"`
}
