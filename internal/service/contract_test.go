package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"salescrm/internal/model"
	rpsMocks "salescrm/internal/repository/mocks"
)

var testContractCtx = context.Background()
var testSignedAt = time.Date(2024, time.March, 12, 11, 0, 0, 0, time.UTC)

type contractServiceTestSuite struct {
	suite.Suite
	contractSvc     ContractService
	transactorMock  *rpsMocks.Transactor
	contractRpsMock *rpsMocks.ContractRepository
	paymentRpsMock  *rpsMocks.PaymentRepository
	customerRpsMock *rpsMocks.CustomerRepository
	logRpsMock      *rpsMocks.SystemLogRepository
}

func (s *contractServiceTestSuite) SetupSuite() {
	s.transactorMock = rpsMocks.NewTransactor(s.T())
	s.transactorMock.On(
		"WithinTransaction",
		testContractCtx,
		mock.AnythingOfType("func(context.Context) error"),
	).Return(func(ctx context.Context, txFunc func(ctx context.Context) error) error {
		return txFunc(ctx)
	})
}

func (s *contractServiceTestSuite) SetupTest() {
	t := s.T()
	s.contractRpsMock = rpsMocks.NewContractRepository(t)
	s.paymentRpsMock = rpsMocks.NewPaymentRepository(t)
	s.customerRpsMock = rpsMocks.NewCustomerRepository(t)
	s.logRpsMock = rpsMocks.NewSystemLogRepository(t)
	s.contractSvc = NewContractService(
		s.transactorMock,
		s.contractRpsMock,
		s.paymentRpsMock,
		s.customerRpsMock,
		s.logRpsMock,
	)
}

func (s *contractServiceTestSuite) executingContract() *model.Contract {
	return &model.Contract{
		ID:           "0e7b3e05-f60a-48a5-9b4f-4e9d8355c0fa",
		SerialNumber: "CTR-20240312-001",
		CustomerID:   "ecc770d9-4576-4f72-affa-8b1454246692",
		Amount:       decimal.NewFromInt(10000),
		SignDate:     testSignedAt,
		Status:       model.ContractStatusExecuting,
		CreatedAt:    testSignedAt,
	}
}

func (s *contractServiceTestSuite) TestCreateFirstSerialOfDay() {
	customer := &model.Customer{ID: "ecc770d9-4576-4f72-affa-8b1454246692", Status: model.CustomerStatusAssigned}
	in := NewContractInput{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(10000),
		SignDate:   testSignedAt,
	}

	s.customerRpsMock.On("FindByID", testContractCtx, customer.ID).Return(customer, nil).Once()
	s.contractRpsMock.On("LastSerialNumber", testContractCtx, "CTR-20240312-").Return("", nil).Once()
	s.contractRpsMock.On("Create", testContractCtx, mock.AnythingOfType("*model.Contract")).Return(nil).Once()
	s.logRpsMock.On("Create", testContractCtx, mock.AnythingOfType("*model.SystemLog")).Return(nil).Once()

	s.T().Log("first contract of the day gets sequence 001")
	{
		contract, err := s.contractSvc.Create(testContractCtx, in, testSalesActor, testSignedAt)
		s.Require().NoError(err, "no error must be raised")
		s.Assert().Equal("CTR-20240312-001", contract.SerialNumber)
		s.Assert().Equal(model.ContractStatusExecuting, contract.Status)
	}
}

func (s *contractServiceTestSuite) TestCreateIncrementsSerial() {
	customer := &model.Customer{ID: "ecc770d9-4576-4f72-affa-8b1454246692", Status: model.CustomerStatusAssigned}
	in := NewContractInput{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(500),
		SignDate:   testSignedAt,
	}

	s.customerRpsMock.On("FindByID", testContractCtx, customer.ID).Return(customer, nil).Once()
	s.contractRpsMock.On("LastSerialNumber", testContractCtx, "CTR-20240312-").Return("CTR-20240312-007", nil).Once()
	s.contractRpsMock.On("Create", testContractCtx, mock.AnythingOfType("*model.Contract")).Return(nil).Once()
	s.logRpsMock.On("Create", testContractCtx, mock.AnythingOfType("*model.SystemLog")).Return(nil).Once()

	s.T().Log("serial must continue from the highest existing one")
	{
		contract, err := s.contractSvc.Create(testContractCtx, in, testSalesActor, testSignedAt)
		s.Require().NoError(err, "no error must be raised")
		s.Assert().Equal("CTR-20240312-008", contract.SerialNumber)
	}
}

func (s *contractServiceTestSuite) TestCreateMissingCustomer() {
	in := NewContractInput{
		CustomerID: "6c4e8907-04b4-4e19-87c4-84257efae1a2",
		Amount:     decimal.NewFromInt(500),
		SignDate:   testSignedAt,
	}

	s.customerRpsMock.On("FindByID", testContractCtx, in.CustomerID).Return(nil, nil).Once()

	s.T().Log("contract for a customer which does not exist")
	{
		_, err := s.contractSvc.Create(testContractCtx, in, testSalesActor, testSignedAt)
		s.Assert().Error(err, "customer does not exist but no error raised")

		var httpErr *echo.HTTPError
		s.Require().ErrorAs(err, &httpErr, "error must be echo error")
		s.Assert().Equal(http.StatusNotFound, httpErr.Code)
	}
}

func (s *contractServiceTestSuite) TestAddPaymentPartial() {
	contract := s.executingContract()
	in := NewPaymentInput{
		ContractID:  contract.ID,
		Amount:      decimal.NewFromInt(4000),
		PaymentDate: testSignedAt,
	}

	s.contractRpsMock.On("FindByID", testContractCtx, contract.ID).Return(contract, nil).Once()
	s.paymentRpsMock.On("Create", testContractCtx, mock.AnythingOfType("*model.Payment")).Return(nil).Once()
	s.paymentRpsMock.On("TotalByContractID", testContractCtx, contract.ID).Return(decimal.NewFromInt(4000), nil).Once()
	s.logRpsMock.On("Create", testContractCtx, mock.AnythingOfType("*model.SystemLog")).Return(nil).Once()

	s.T().Log("partial payment must not complete the contract")
	{
		_, err := s.contractSvc.AddPayment(testContractCtx, in, testSalesActor, testSignedAt)
		s.Require().NoError(err, "no error must be raised")
		s.contractRpsMock.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	}
}

func (s *contractServiceTestSuite) TestAddPaymentCompletesContract() {
	contract := s.executingContract()
	in := NewPaymentInput{
		ContractID:  contract.ID,
		Amount:      decimal.NewFromInt(6000),
		PaymentDate: testSignedAt,
	}

	s.contractRpsMock.On("FindByID", testContractCtx, contract.ID).Return(contract, nil).Once()
	s.paymentRpsMock.On("Create", testContractCtx, mock.AnythingOfType("*model.Payment")).Return(nil).Once()
	s.paymentRpsMock.On("TotalByContractID", testContractCtx, contract.ID).Return(decimal.NewFromInt(10000), nil).Once()
	s.contractRpsMock.On("UpdateStatus", testContractCtx, contract.ID, model.ContractStatusCompleted).Return(nil).Once()
	s.logRpsMock.On("Create", testContractCtx, mock.AnythingOfType("*model.SystemLog")).Return(nil).Once()

	s.T().Log("payment covering the full amount completes the contract")
	{
		_, err := s.contractSvc.AddPayment(testContractCtx, in, testSalesActor, testSignedAt)
		s.Require().NoError(err, "no error must be raised")
		s.contractRpsMock.AssertCalled(s.T(), "UpdateStatus", testContractCtx, contract.ID, model.ContractStatusCompleted)
	}
}

func (s *contractServiceTestSuite) TestAddPaymentCancelledContract() {
	contract := s.executingContract()
	contract.Status = model.ContractStatusCancelled
	in := NewPaymentInput{
		ContractID:  contract.ID,
		Amount:      decimal.NewFromInt(100),
		PaymentDate: testSignedAt,
	}

	s.contractRpsMock.On("FindByID", testContractCtx, contract.ID).Return(contract, nil).Once()

	s.T().Log("payment against a cancelled contract")
	{
		_, err := s.contractSvc.AddPayment(testContractCtx, in, testSalesActor, testSignedAt)
		s.Assert().Error(err, "contract is cancelled but no error raised")

		var httpErr *echo.HTTPError
		s.Require().ErrorAs(err, &httpErr, "error must be echo error")
		s.Assert().Equal(http.StatusBadRequest, httpErr.Code)
		s.paymentRpsMock.AssertNotCalled(s.T(), "Create", mock.Anything, mock.AnythingOfType("*model.Payment"))
	}
}

func (s *contractServiceTestSuite) TestFindByCustomerIDIncludesPaidTotals() {
	customerID := "ecc770d9-4576-4f72-affa-8b1454246692"
	partiallyPaid := s.executingContract()
	unpaid := &model.Contract{
		ID:           "9f0775ff-bd70-4dd2-8289-a2897c4f5c9a",
		SerialNumber: "CTR-20240312-002",
		CustomerID:   customerID,
		Amount:       decimal.NewFromInt(2500),
		SignDate:     testSignedAt,
		Status:       model.ContractStatusExecuting,
		CreatedAt:    testSignedAt,
	}

	s.contractRpsMock.On("FindByCustomerID", testContractCtx, customerID).
		Return([]*model.Contract{partiallyPaid, unpaid}, nil).Once()
	s.paymentRpsMock.On("TotalByContractID", testContractCtx, partiallyPaid.ID).
		Return(decimal.NewFromInt(4000), nil).Once()
	s.paymentRpsMock.On("TotalByContractID", testContractCtx, unpaid.ID).
		Return(decimal.Zero, nil).Once()

	s.T().Log("listing carries the paid total per contract")
	{
		contracts, err := s.contractSvc.FindByCustomerID(testContractCtx, customerID)
		s.Require().NoError(err, "no error must be raised")
		s.Require().Len(contracts, 2)
		s.Assert().True(contracts[0].PaidAmount.Equal(decimal.NewFromInt(4000)),
			"paid total must be aggregated from payments, got %s", contracts[0].PaidAmount)
		s.Assert().True(contracts[1].PaidAmount.IsZero(),
			"contract without payments must report a zero paid total")
	}
}

// start contract service test suite
func TestContractServiceTestSuite(t *testing.T) {
	suite.Run(t, new(contractServiceTestSuite))
}
