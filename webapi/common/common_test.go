package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/amirasaad/accounts/pkg/domain"
	"github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/amirasaad/accounts/pkg/testutils"
	"github.com/amirasaad/accounts/pkg/valuation"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.NewNotFound(domain.KindAccount, 3), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("solve: %w", domain.NewNotFound(domain.KindAccountType, "loan")), http.StatusNotFound},
		{"already exists", fmt.Errorf("%w: duplicate", domain.ErrAlreadyExists), http.StatusConflict},
		{"validation", fmt.Errorf("%w: name", domain.ErrValidation), http.StatusBadRequest},
		{"missing type", account.ErrAccountTypeRequired, http.StatusBadRequest},
		{"no horizon", fmt.Errorf("solve account 1: %w", account.ErrNoHorizon), http.StatusUnprocessableEntity},
		{"engine unavailable", fmt.Errorf("value account 1: %w", valuation.ErrEngineUnavailable), http.StatusServiceUnavailable},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorToStatusCode(tt.err))
		})
	}
}

type createInput struct {
	Name  string `json:"name" validate:"required"`
	Label string `json:"label"`
}

func newBindApp() *fiber.App {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		input, err := BindAndValidate[createInput](c)
		if input == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "created", input)
	})
	return app
}

func TestBindAndValidate(t *testing.T) {
	app := newBindApp()

	t.Run("valid body", func(t *testing.T) {
		resp := testutils.MakeRequest(t, app, fiber.MethodPost, "/", `{"name":"saving","label":"Saving"}`)
		defer resp.Body.Close() //nolint: errcheck
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "created", body.Message)
	})

	t.Run("missing required field", func(t *testing.T) {
		resp := testutils.MakeRequest(t, app, fiber.MethodPost, "/", `{"label":"Saving"}`)
		defer resp.Body.Close() //nolint: errcheck
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))

		var pd ProblemDetails
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
		assert.Equal(t, "Validation failed", pd.Title)
		assert.Equal(t, map[string]any{"Name": "failed on 'required'"}, pd.Errors)
	})

	t.Run("malformed json", func(t *testing.T) {
		resp := testutils.MakeRequest(t, app, fiber.MethodPost, "/", `{"name":`)
		defer resp.Body.Close() //nolint: errcheck
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestProblemDetailsJSON(t *testing.T) {
	app := fiber.New()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Account not found", domain.NewNotFound(domain.KindAccount, 9))
	})
	app.Get("/override", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Invalid account id", errors.New("strconv"), "id must be an integer", fiber.StatusBadRequest)
	})

	resp := testutils.MakeRequest(t, app, fiber.MethodGet, "/missing", "")
	defer resp.Body.Close() //nolint: errcheck
	var pd ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, fiber.StatusNotFound, pd.Status)
	assert.Equal(t, "Account not found, key: 9", pd.Detail)
	assert.Equal(t, "/missing", pd.Instance)

	resp2 := testutils.MakeRequest(t, app, fiber.MethodGet, "/override", "")
	defer resp2.Body.Close() //nolint: errcheck
	var pd2 ProblemDetails
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&pd2))
	assert.Equal(t, fiber.StatusBadRequest, resp2.StatusCode)
	assert.Equal(t, "id must be an integer", pd2.Detail)
}
