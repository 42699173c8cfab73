package accounttype_test

import (
	"context"
	"testing"

	"github.com/amirasaad/accounts/internal/fixtures/mocks"
	"github.com/amirasaad/accounts/pkg/domain"
	"github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/amirasaad/accounts/pkg/service/accounttype"
	"github.com/amirasaad/accounts/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSavingAccountTypeScenario(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockAccountTypeRepository(t)
	svc := accounttype.New(repo, testutils.DiscardLogger())

	saving := account.NewAccountType("saving", "Saving Account")
	repo.EXPECT().Create(mock.Anything, saving).Return(nil).Once()
	repo.EXPECT().List(mock.Anything).Return([]*account.AccountType{saving}, nil).Once()
	repo.EXPECT().DeleteByName(mock.Anything, "saving").Return(nil).Once()
	repo.EXPECT().DeleteByName(mock.Anything, "saving").
		Return(domain.NewNotFound(domain.KindAccountType, "saving")).Once()

	require.NoError(t, svc.CreateAccountType(ctx, saving))

	list, err := svc.GetAccountTypes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "saving", list[0].Name)
	assert.Equal(t, "Saving Account", list[0].Label)

	require.NoError(t, svc.DeleteAccountType(ctx, "saving"))
	err = svc.DeleteAccountType(ctx, "saving")
	nf, ok := domain.AsNotFound(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindAccountType, nf.Kind)
}

func TestGetAccountTypeByName(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockAccountTypeRepository(t)
	svc := accounttype.New(repo, testutils.DiscardLogger())

	repo.EXPECT().GetByName(mock.Anything, "loan").
		Return(nil, domain.NewNotFound(domain.KindAccountType, "loan")).Once()
	repo.EXPECT().GetByName(mock.Anything, "saving").
		Return(account.NewAccountType("saving", "Saving Account"), nil).Once()

	_, err := svc.GetAccountTypeByName(ctx, "loan")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	at, err := svc.GetAccountTypeByName(ctx, "saving")
	require.NoError(t, err)
	assert.Equal(t, "Saving Account", at.Label)
}

func TestCreateAccountTypeNormalizes(t *testing.T) {
	repo := mocks.NewMockAccountTypeRepository(t)
	svc := accounttype.New(repo, testutils.DiscardLogger())

	at := &account.AccountType{Name: "bare"}
	repo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(in *account.AccountType) bool {
		return in.TransactionTypes != nil && in.RateTypes != nil
	})).Return(nil).Once()

	require.NoError(t, svc.CreateAccountType(context.Background(), at))
}
