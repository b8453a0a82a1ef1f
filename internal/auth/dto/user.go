package dto

import (
	"github.com/ancheloroman23/EasyLogin/internal/auth/domain"
	"github.com/ancheloroman23/EasyLogin/pkg/constant"
)

type UserOutput struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	AuthToken string `json:"authToken"`
}

// NewUserOutput projects a stored user into its response shape. The real id is
// withheld (always zero on the wire) and the password field carries a fixed
// placeholder, never the hash. The entity itself is left untouched.
func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		Name:      u.Name,
		Surname:   u.Surname,
		Username:  u.Username,
		Password:  constant.PasswordPlaceholder,
		Email:     u.Email,
		AuthToken: u.AuthToken,
	}
}
