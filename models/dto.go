package models

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

type CreateServiceRequest struct {
	Title       string   `json:"title" binding:"required,notblank"`
	Description string   `json:"description" binding:"required,notblank"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

type CreateReviewRequest struct {
	TechnicianID int     `json:"technicianId" binding:"required,gt=0"`
	Rating       int     `json:"rating" binding:"required,min=1,max=5"`
	Comment      *string `json:"comment"`
}

// UpdateTechnicianRequest carries a partial profile update; nil fields
// are left unchanged.
type UpdateTechnicianRequest struct {
	CategoryID  *int    `json:"category_id" binding:"omitempty,gt=0"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	WhatsApp    *string `json:"whatsapp" binding:"omitempty,max=32"`
}

func (r UpdateTechnicianRequest) Empty() bool {
	return r.CategoryID == nil && r.Description == nil && r.WhatsApp == nil
}
