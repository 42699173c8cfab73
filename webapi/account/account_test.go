package account

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/amirasaad/accounts/internal/fixtures/mocks"
	"github.com/amirasaad/accounts/pkg/domain"
	"github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/amirasaad/accounts/pkg/middleware"
	accountsvc "github.com/amirasaad/accounts/pkg/service/account"
	"github.com/amirasaad/accounts/pkg/testutils"
	"github.com/amirasaad/accounts/pkg/valuation"
	"github.com/amirasaad/accounts/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountHandlersTestSuite struct {
	suite.Suite
	accounts *mocks.MockAccountRepository
	types    *mocks.MockAccountTypeRepository
	engine   *mocks.MockEngine
	app      *fiber.App
}

func (s *AccountHandlersTestSuite) SetupTest() {
	s.accounts = mocks.NewMockAccountRepository(s.T())
	s.types = mocks.NewMockAccountTypeRepository(s.T())
	s.engine = mocks.NewMockEngine(s.T())
	s.app = fiber.New()
	Routes(s.app, accountsvc.New(s.accounts, s.types, s.engine, testutils.DiscardLogger()), middleware.JwtProtected(nil))
}

func TestAccountHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlersTestSuite))
}

func stored(id int64) *account.Account {
	return &account.Account{
		ID:              id,
		AccountTypeName: "saving",
		StartDate:       civil.Date{Year: 2024, Month: time.January, Day: 1},
		Dates:           map[string]civil.Date{account.EndDateKey: {Year: 2025, Month: time.January, Day: 1}},
		Properties:      map[string]decimal.Decimal{},
		Positions:       map[string]decimal.Decimal{},
		Instalments:     map[string]decimal.Decimal{},
	}
}

func (s *AccountHandlersTestSuite) TestCreate() {
	s.Run("created", func() {
		saving := account.NewAccountType("saving", "Saving Account")
		s.types.EXPECT().GetByName(mock.Anything, "saving").Return(saving, nil).Once()
		s.accounts.EXPECT().Create(mock.Anything, mock.Anything).Return(int64(7), nil).Once()

		body := `{"account_type_name":"saving","start_date":"2024-01-01","properties":{"rate":"0.02"}}`
		resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPost, "/accounts", body)
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusCreated, resp.StatusCode)

		var out struct {
			Data account.Account `json:"data"`
		}
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
		s.Equal(int64(7), out.Data.ID)
		s.False(out.Data.Active)
	})

	s.Run("unknown account type", func() {
		s.types.EXPECT().GetByName(mock.Anything, "Loan").
			Return(nil, domain.NewNotFound(domain.KindAccountType, "Loan")).Once()

		resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPost, "/accounts", `{"account_type_name":"Loan"}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusNotFound, resp.StatusCode)
	})

	s.Run("missing account type", func() {
		resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPost, "/accounts", `{"start_date":"2024-01-01"}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	})
}

func (s *AccountHandlersTestSuite) TestList() {
	s.Run("filters", func() {
		s.accounts.EXPECT().List(mock.Anything, mock.MatchedBy(func(f account.Filter) bool {
			return f.AccountTypeName != nil && *f.AccountTypeName == "saving" &&
				f.Active != nil && *f.Active
		})).Return([]*account.Account{stored(1)}, nil).Once()

		resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/accounts?account_type=saving&active=true", "")
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusOK, resp.StatusCode)
	})

	s.Run("no filter", func() {
		s.accounts.EXPECT().List(mock.Anything, account.Filter{}).Return([]*account.Account{}, nil).Once()
		resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/accounts", "")
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusOK, resp.StatusCode)
	})

	s.Run("bad active flag", func() {
		resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/accounts?active=maybe", "")
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	})
}

func (s *AccountHandlersTestSuite) TestGetAndDelete() {
	s.accounts.EXPECT().GetByID(mock.Anything, int64(3)).Return(stored(3), nil).Once()
	s.accounts.EXPECT().GetByID(mock.Anything, int64(4)).
		Return(nil, domain.NewNotFound(domain.KindAccount, 4)).Once()
	s.accounts.EXPECT().DeleteByID(mock.Anything, int64(3)).Return(nil).Once()

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/accounts/3", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/accounts/4", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/accounts/abc", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodDelete, "/accounts/3", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
}

func (s *AccountHandlersTestSuite) TestUpdate() {
	s.accounts.EXPECT().Update(mock.Anything, int64(5), mock.MatchedBy(func(acc *account.Account) bool {
		return acc.AccountTypeName == "saving"
	}), true).Return(nil).Once()

	body := `{"active":true,"account":{"account_type_name":"saving","start_date":"2024-01-01"}}`
	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPut, "/accounts/5", body)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *AccountHandlersTestSuite) TestSolve() {
	acc := stored(9)
	saving := account.NewAccountType("saving", "Saving Account")
	v := mocks.NewMockValuation(s.T())

	s.accounts.EXPECT().GetByID(mock.Anything, int64(9)).Return(acc, nil).Once()
	s.types.EXPECT().GetByName(mock.Anything, "saving").Return(saving, nil).Once()
	s.engine.On("NewValuation", acc, saving, acc.Dates[account.EndDateKey], false).Return(v, nil).Once()
	v.On("SolveInstalment", mock.Anything).Return(nil).Once()
	v.On("Result").Return(&valuation.Result{Account: acc, Date: acc.Dates[account.EndDateKey]}).Once()

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPost, "/accounts/9/solve", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *AccountHandlersTestSuite) TestValue() {
	s.Run("engine unavailable", func() {
		acc := stored(2)
		s.accounts.EXPECT().GetByID(mock.Anything, int64(2)).Return(acc, nil).Once()
		s.types.EXPECT().GetByName(mock.Anything, "saving").
			Return(account.NewAccountType("saving", ""), nil).Once()
		s.engine.On("NewValuation", acc, mock.Anything, civil.Date{Year: 2024, Month: time.June, Day: 30}, true).
			Return(nil, valuation.ErrEngineUnavailable).Once()

		resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/accounts/2/value?action_date=2024-06-30", "")
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusServiceUnavailable, resp.StatusCode)

		var pd common.ProblemDetails
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
		s.Equal("Failed to value account", pd.Title)
	})

	s.Run("missing action date", func() {
		resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/accounts/2/value", "")
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	})
}
