package request

import "roomledger/internal/usecase/commands"

type RegisterGuestRequest struct {
	FullName string `json:"full_name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,max=254"`
	Phone    string `json:"phone" binding:"max=40"`
	Password string `json:"password" binding:"required,max=72"`
}

func (r RegisterGuestRequest) ToInput() commands.RegisterGuestInput {
	return commands.RegisterGuestInput{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
	}
}
