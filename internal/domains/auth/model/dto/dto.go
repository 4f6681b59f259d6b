package dto

import (
	"mentorbook/infras/jwt"
	userModel "mentorbook/internal/domains/user/model"
	userDto "mentorbook/internal/domains/user/model/dto"
	"mentorbook/shared/constant"
	gModel "mentorbook/shared/model"
	"mentorbook/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string  `json:"email"               validate:"required,email"`
	Password string  `json:"password"            validate:"required,min=8,max=72"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
}

// ToUserModel opens a member account holding the initial coin grant.
func (r *RegisterRequest) ToUserModel(actor, hashedPassword string, coins int) userModel.User {
	now := timezone.Now()

	return userModel.User{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		Level:    constant.RoleUser,
		FullName: r.FullName,
		Active:   true,
		Coins:    coins,
		Metadata: gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: actor, ModifiedBy: actor},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// Tokens is the body of a refresh and the token half of a login.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *Tokens) FromTokenPair(pair *jwt.TokenPair) {
	t.AccessToken = pair.AccessToken
	t.RefreshToken = pair.RefreshToken
	t.ExpiresIn = pair.ExpiresIn
}

type LoginResponse struct {
	Tokens
	User userDto.UserResponse `json:"user"`
}

type RefreshTokenResponse = Tokens
