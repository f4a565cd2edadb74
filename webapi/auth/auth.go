// Package auth exposes registration and login endpoints.
package auth

import (
	"github.com/gofiber/fiber/v2"

	authsvc "github.com/valutatrade/valutatrade-hub/pkg/service/auth"
	usersvc "github.com/valutatrade/valutatrade-hub/pkg/service/user"
	"github.com/valutatrade/valutatrade-hub/webapi/common"
)

// RegisterInput is the request body for POST /auth/register.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput is the request body for POST /auth/login.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Routes registers the authentication endpoints.
func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service) {
	app.Post("/auth/register", Register(userSvc))
	app.Post("/auth/login", Login(userSvc, authSvc))
}

// Register creates a new account.
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Register(input.Username, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Registration failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", fiber.Map{
			"id":       u.ID,
			"username": u.Username,
		})
	}
}

// Login authenticates a user and returns a JWT token.
func Login(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Authenticate(input.Username, input.Password)
		if err != nil {
			// Unknown user and wrong password are indistinguishable to the
			// client.
			return common.ProblemDetailsJSON(c, "Invalid username or password", nil,
				"Username or password is incorrect", fiber.StatusUnauthorized)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}
