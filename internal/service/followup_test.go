package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	cacheMocks "salescrm/internal/cache/mocks"
	"salescrm/internal/model"
	rpsMocks "salescrm/internal/repository/mocks"
)

var testFollowUpCtx = context.Background()
var testFollowedAt = time.Date(2024, time.March, 12, 11, 0, 0, 0, time.UTC)

type followUpServiceTestSuite struct {
	suite.Suite
	followUpSvc       FollowUpService
	transactorMock    *rpsMocks.Transactor
	followUpRpsMock   *rpsMocks.FollowUpRepository
	customerRpsMock   *rpsMocks.CustomerRepository
	logRpsMock        *rpsMocks.SystemLogRepository
	customerCacheMock *cacheMocks.CustomerCacheRepository
}

func (s *followUpServiceTestSuite) SetupSuite() {
	s.transactorMock = rpsMocks.NewTransactor(s.T())
	s.transactorMock.On(
		"WithinTransaction",
		testFollowUpCtx,
		mock.AnythingOfType("func(context.Context) error"),
	).Return(func(ctx context.Context, txFunc func(ctx context.Context) error) error {
		return txFunc(ctx)
	})
}

func (s *followUpServiceTestSuite) SetupTest() {
	t := s.T()
	s.followUpRpsMock = rpsMocks.NewFollowUpRepository(t)
	s.customerRpsMock = rpsMocks.NewCustomerRepository(t)
	s.logRpsMock = rpsMocks.NewSystemLogRepository(t)
	s.customerCacheMock = cacheMocks.NewCustomerCacheRepository(t)
	s.followUpSvc = NewFollowUpService(
		s.transactorMock,
		s.followUpRpsMock,
		s.customerRpsMock,
		s.logRpsMock,
		s.customerCacheMock,
	)
}

func (s *followUpServiceTestSuite) TestCreateTouchesCustomer() {
	ownerID := testSalesActor.ID
	customer := &model.Customer{
		ID:      "ecc770d9-4576-4f72-affa-8b1454246692",
		Status:  model.CustomerStatusAssigned,
		OwnerID: &ownerID,
	}
	in := NewFollowUpInput{
		CustomerID: customer.ID,
		Content:    "called, interested in renewal",
		Type:       model.FollowUpTypePhone,
	}

	s.customerRpsMock.On("FindByID", testFollowUpCtx, customer.ID).Return(customer, nil).Once()
	s.followUpRpsMock.On("Create", testFollowUpCtx, mock.AnythingOfType("*model.FollowUp")).Return(nil).Once()
	s.customerRpsMock.On("TouchLastFollowUp", testFollowUpCtx, customer.ID, testFollowedAt).Return(nil).Once()
	s.logRpsMock.On("Create", testFollowUpCtx, mock.AnythingOfType("*model.SystemLog")).Return(nil).Once()
	s.customerCacheMock.On("DeleteByID", testFollowUpCtx, customer.ID).Return(nil).Once()

	s.T().Log("follow-up must also move the customer's last follow-up timestamp")
	{
		followUp, err := s.followUpSvc.Create(testFollowUpCtx, in, testSalesActor, testFollowedAt)
		s.Require().NoError(err, "no error must be raised")
		s.Assert().Equal(testSalesActor.ID, followUp.UserID)
		s.customerRpsMock.AssertCalled(s.T(), "TouchLastFollowUp", testFollowUpCtx, customer.ID, testFollowedAt)
	}
}

func (s *followUpServiceTestSuite) TestCreateForbiddenForNonOwner() {
	ownerID := "b11cbb77-6f8d-44bb-a843-ef1120a4d886"
	customer := &model.Customer{
		ID:      "ecc770d9-4576-4f72-affa-8b1454246692",
		Status:  model.CustomerStatusAssigned,
		OwnerID: &ownerID,
	}
	in := NewFollowUpInput{
		CustomerID: customer.ID,
		Content:    "note",
		Type:       model.FollowUpTypeWechat,
	}

	s.customerRpsMock.On("FindByID", testFollowUpCtx, customer.ID).Return(customer, nil).Once()

	s.T().Log("sales user records a follow-up on a colleague's customer")
	{
		_, err := s.followUpSvc.Create(testFollowUpCtx, in, testSalesActor, testFollowedAt)
		s.Assert().Error(err, "actor is not the owner but no error raised")

		var httpErr *echo.HTTPError
		s.Require().ErrorAs(err, &httpErr, "error must be echo error")
		s.Assert().Equal(http.StatusForbidden, httpErr.Code)
		s.followUpRpsMock.AssertNotCalled(s.T(), "Create", mock.Anything, mock.AnythingOfType("*model.FollowUp"))
	}
}

func (s *followUpServiceTestSuite) TestFindByCustomerID() {
	ownerID := testSalesActor.ID
	customer := &model.Customer{
		ID:      "ecc770d9-4576-4f72-affa-8b1454246692",
		Status:  model.CustomerStatusAssigned,
		OwnerID: &ownerID,
	}
	followUps := []*model.FollowUp{
		{ID: "4be5ec8c-6efc-44cc-9eca-8a184683e4c9", CustomerID: customer.ID, UserID: ownerID},
	}

	s.customerRpsMock.On("FindByID", testFollowUpCtx, customer.ID).Return(customer, nil).Once()
	s.followUpRpsMock.On("FindByCustomerID", testFollowUpCtx, customer.ID).Return(followUps, nil).Once()

	s.T().Log("owner lists follow-ups of own customer")
	{
		found, err := s.followUpSvc.FindByCustomerID(testFollowUpCtx, customer.ID, testSalesActor)
		s.Require().NoError(err, "no error must be raised")
		s.Assert().Len(found, 1)
	}
}

// start follow-up service test suite
func TestFollowUpServiceTestSuite(t *testing.T) {
	suite.Run(t, new(followUpServiceTestSuite))
}
