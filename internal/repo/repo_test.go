package repo

import (
	"testing"

	"github.com/GlebRadaev/novafunded/internal/pg"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	mockTxManager := pg.NewMockTXManager(ctrl)
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()

	return repo, mockDB, mockTxManager
}

func TestNew(t *testing.T) {
	repo, mock, txManager := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.PlanRepo)
	assert.NotNil(t, repo.PaymentRepo)
	assert.NotNil(t, repo.ChallengeRepo)
	assert.Same(t, txManager, repo.TXManager)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
