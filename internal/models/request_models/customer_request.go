package request_models

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required,min=7,max=20"`
	Address string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,min=7,max=20"`
	Address *string `json:"address"`
	Status  *string `json:"status" binding:"omitempty,oneof=active inactive"`
}
