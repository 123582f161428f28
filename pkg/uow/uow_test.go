package uow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fsdevblog/paydesk/pkg/uow"
	"github.com/fsdevblog/paydesk/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
)

type fakeRepo struct {
	conn uow.DBTX
}

type UOWTestSuite struct {
	suite.Suite
	mockConn *mocks.MockBeginner
	unit     *uow.UnitOfWork
}

func TestUOWSuite(t *testing.T) {
	suite.Run(t, new(UOWTestSuite))
}

func (s *UOWTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockConn = mocks.NewMockBeginner(ctrl)
	s.unit = uow.NewUnitOfWork(s.mockConn)
}

func (s *UOWTestSuite) TestRegister() {
	factory := func(conn uow.DBTX) uow.Repository { return &fakeRepo{conn: conn} }

	s.Require().NoError(s.unit.Register("fake", factory))
	s.Require().ErrorIs(s.unit.Register("fake", factory), uow.ErrRepositoryAlreadyRegistered)
	s.Require().ErrorIs(s.unit.Register("nil", nil), uow.ErrInvalidRepositoryType)
}

func (s *UOWTestSuite) TestGetRepositoryAs() {
	s.Require().NoError(s.unit.Register("fake", func(conn uow.DBTX) uow.Repository {
		return &fakeRepo{conn: conn}
	}))

	repo, err := uow.GetRepositoryAs[*fakeRepo](s.unit, "fake")
	s.Require().NoError(err)
	// вне транзакции репозиторий работает с пулом.
	s.Same(s.mockConn, repo.conn)

	_, err = uow.GetRepositoryAs[*fakeRepo](s.unit, "missing")
	s.Require().ErrorIs(err, uow.ErrRepositoryNotRegistered)

	_, err = uow.GetRepositoryAs[string](s.unit, "fake")
	s.Require().ErrorIs(err, uow.ErrInvalidRepositoryType)
}

func (s *UOWTestSuite) TestDo_BeginError() {
	beginErr := errors.New("connection refused")
	s.mockConn.EXPECT().
		BeginTx(gomock.Any(), pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadOnly}).
		Return(nil, beginErr)

	called := false
	err := s.unit.Do(s.T().Context(), func(context.Context, uow.TX) error {
		called = true
		return nil
	}, uow.WithIsoLevel(pgx.Serializable), uow.ReadOnly())

	s.Require().ErrorIs(err, beginErr)
	s.False(called)
}

func (s *UOWTestSuite) TestTransactionGetCachesRepository() {
	var created int
	tx := uow.NewTransaction(nil, map[uow.RepositoryName]uow.RepositoryFactory{
		"fake": func(conn uow.DBTX) uow.Repository {
			created++
			return &fakeRepo{conn: conn}
		},
	})

	first, err := uow.GetAs[*fakeRepo](tx, "fake")
	s.Require().NoError(err)
	second, err := uow.GetAs[*fakeRepo](tx, "fake")
	s.Require().NoError(err)

	s.Same(first, second)
	s.Equal(1, created)

	_, err = tx.Get("missing")
	s.Require().ErrorIs(err, uow.ErrRepositoryNotRegistered)
}
