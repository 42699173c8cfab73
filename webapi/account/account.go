// Package account exposes accounts and their valuations over HTTP.
package account

import (
	"strconv"

	"github.com/amirasaad/accounts/pkg/domain/account"
	accountsvc "github.com/amirasaad/accounts/pkg/service/account"
	"github.com/amirasaad/accounts/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-sql/civil"
)

// Routes registers HTTP routes for account operations.
//
// Routes:
//   - GET    /accounts            : List accounts, optionally filtered by account_type and active.
//   - GET    /accounts/:id        : Fetch one account.
//   - POST   /accounts            : Create an account from an existing account type.
//   - PUT    /accounts/:id        : Replace an account document and its active flag.
//   - DELETE /accounts/:id        : Remove an account.
//   - POST   /accounts/:id/solve  : Solve the instalment up to the account horizon.
//   - GET    /accounts/:id/value  : Forecast the account up to action_date with a trace.
//
// Create, update, delete and solve run behind protected.
func Routes(app fiber.Router, svc *accountsvc.Service, protected fiber.Handler) {
	app.Get("/accounts", ListAccounts(svc))
	app.Get("/accounts/:id", GetAccount(svc))
	app.Post("/accounts", protected, CreateAccount(svc))
	app.Put("/accounts/:id", protected, UpdateAccount(svc))
	app.Delete("/accounts/:id", protected, DeleteAccount(svc))
	app.Post("/accounts/:id/solve", protected, Solve(svc))
	app.Get("/accounts/:id/value", Value(svc))
}

func accountID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func invalidAccountID(c *fiber.Ctx, err error) error {
	return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be an integer", fiber.StatusBadRequest)
}

// ListAccounts returns a handler listing accounts. The account_type and
// active query parameters narrow the result.
func ListAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter account.Filter
		if name := c.Query("account_type"); name != "" {
			filter.AccountTypeName = &name
		}
		if raw := c.Query("active"); raw != "" {
			active, err := strconv.ParseBool(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid filter", err, "active must be a boolean", fiber.StatusBadRequest)
			}
			filter.Active = &active
		}
		accounts, err := svc.GetAccounts(c.UserContext(), filter)
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", accounts)
	}
}

// GetAccount returns a handler fetching the account with the id in the path.
func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return invalidAccountID(c, err)
		}
		acc, err := svc.GetAccountByID(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", acc)
	}
}

// CreateAccount returns a handler creating an account from the body.
// The account type must already exist.
func CreateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[account.Account](c)
		if input == nil {
			return err // error response already written
		}
		acc, err := svc.CreateAccount(c.UserContext(), input)
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", acc)
	}
}

// UpdateAccount returns a handler replacing the stored account document.
func UpdateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return invalidAccountID(c, err)
		}
		input, err := common.BindAndValidate[UpdateAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		if err := svc.UpdateAccount(c.UserContext(), id, &input.Account, input.Active); err != nil {
			log.Errorf("Failed to update account %d: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to update account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", fiber.Map{"account_id": id, "active": input.Active})
	}
}

// DeleteAccount returns a handler removing the account with the id in the path.
func DeleteAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return invalidAccountID(c, err)
		}
		if err := svc.DeleteAccount(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete account", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Solve returns a handler solving the instalment of an account.
// Without a configured valuation engine it answers 503.
func Solve(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return invalidAccountID(c, err)
		}
		result, err := svc.Solve(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to solve account %d: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to solve account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account solved", result)
	}
}

// Value returns a handler forecasting an account up to the action_date query parameter.
func Value(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return invalidAccountID(c, err)
		}
		actionDate, err := civil.ParseDate(c.Query("action_date"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid action date", err, "action_date must be a YYYY-MM-DD date", fiber.StatusBadRequest)
		}
		result, err := svc.Value(c.UserContext(), id, actionDate)
		if err != nil {
			log.Errorf("Failed to value account %d: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to value account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account valued", result)
	}
}
