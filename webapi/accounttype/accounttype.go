// Package accounttype exposes the account type templates over HTTP.
package accounttype

import (
	"github.com/amirasaad/accounts/pkg/domain/account"
	accounttypesvc "github.com/amirasaad/accounts/pkg/service/accounttype"
	"github.com/amirasaad/accounts/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers HTTP routes for account type operations.
//
// Routes:
//   - GET    /accounttypes        : List every account type.
//   - GET    /accounttypes/:name  : Fetch one account type by name.
//   - POST   /accounttypes        : Store a new account type.
//   - DELETE /accounttypes/:name  : Remove an account type.
//
// The mutating routes run behind protected.
func Routes(app fiber.Router, svc *accounttypesvc.Service, protected fiber.Handler) {
	app.Get("/accounttypes", ListAccountTypes(svc))
	app.Get("/accounttypes/:name", GetAccountType(svc))
	app.Post("/accounttypes", protected, CreateAccountType(svc))
	app.Delete("/accounttypes/:name", protected, DeleteAccountType(svc))
}

// ListAccountTypes returns a handler listing every stored account type.
func ListAccountTypes(svc *accounttypesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		types, err := svc.GetAccountTypes(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list account types: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list account types", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account types fetched", types)
	}
}

// GetAccountType returns a handler fetching the account type named in the path.
func GetAccountType(svc *accounttypesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		at, err := svc.GetAccountTypeByName(c.UserContext(), c.Params("name"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch account type", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account type fetched", at)
	}
}

// CreateAccountType returns a handler storing the account type in the body.
// A name that is already taken yields 409.
func CreateAccountType(svc *accounttypesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[account.AccountType](c)
		if input == nil {
			return err // error response already written
		}
		if err := svc.CreateAccountType(c.UserContext(), input); err != nil {
			log.Errorf("Failed to create account type %q: %v", input.Name, err)
			return common.ProblemDetailsJSON(c, "Failed to create account type", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account type created", input)
	}
}

// DeleteAccountType returns a handler removing the account type named in the path.
func DeleteAccountType(svc *accounttypesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteAccountType(c.UserContext(), c.Params("name")); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete account type", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
