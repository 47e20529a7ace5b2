package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quillbooks/invoicing_backend/internal/apperrors"
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	portssvc "github.com/quillbooks/invoicing_backend/internal/core/ports/services"
	"github.com/quillbooks/invoicing_backend/internal/core/services"
	"github.com/quillbooks/invoicing_backend/internal/dto"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockProductRepo *MockProductRepository
	mockClientRepo  *MockClientRepository
	service         portssvc.InvoiceSvcFacade
	ctx             context.Context
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockProductRepo, suite.mockClientRepo, false)
	suite.ctx = context.Background()
}

func (suite *InvoiceServiceTestSuite) activeClient() *domain.Client {
	return &domain.Client{
		ClientID: uuid.NewString(),
		Name:     "Acme GmbH",
		Email:    "billing@acme.example",
		IsActive: true,
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Proforma_Success() {
	client := suite.activeClient()
	productID := uuid.NewString()
	products := map[string]domain.Product{
		productID: {ProductID: productID, Name: "Consulting day", Price: decimal.NewFromInt(800), IsService: true, IsActive: true},
	}
	req := dto.CreateInvoiceRequest{
		Type:     domain.InvoiceTypeProforma,
		ClientID: client.ClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: productID, Quantity: 3}},
		Tax:      decimal.NewFromInt(456),
		DueDate:  time.Now().Add(14 * 24 * time.Hour),
	}

	suite.mockClientRepo.On("FindClientByID", suite.ctx, client.ClientID).Return(client, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", suite.ctx, []string{productID}).Return(products, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", suite.ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) {
			saved := args.Get(1).(domain.Invoice)
			suite.Require().Len(saved.Items, 1)
			suite.True(saved.Subtotal.Equal(decimal.NewFromInt(2400)))
			suite.True(saved.Total.Equal(decimal.NewFromInt(2856)))
			suite.Equal("Consulting day", saved.Items[0].ProductName)
			suite.True(saved.Items[0].UnitPrice.Equal(decimal.NewFromInt(800)))
			suite.Equal(domain.InvoiceStatusDraft, saved.Status)
			suite.Empty(saved.Number)
		}).
		Return(&domain.Invoice{
			InvoiceID: uuid.NewString(),
			Number:    "PRO-2026-000001",
			Type:      domain.InvoiceTypeProforma,
			ClientID:  client.ClientID,
			Status:    domain.InvoiceStatusDraft,
		}, nil).Once()

	stored, err := suite.service.CreateInvoice(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("PRO-2026-000001", stored.Number)
	// Pro-forma creation never touches stock.
	suite.mockProductRepo.AssertNotCalled(suite.T(), "DecrementStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ClientNotFound() {
	clientID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		Type:     domain.InvoiceTypeProforma,
		ClientID: clientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		DueDate:  time.Now(),
	}

	suite.mockClientRepo.On("FindClientByID", suite.ctx, clientID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateInvoice(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_UnknownProduct() {
	client := suite.activeClient()
	productID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		Type:     domain.InvoiceTypeFinal,
		ClientID: client.ClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: productID, Quantity: 2}},
		DueDate:  time.Now(),
	}

	suite.mockClientRepo.On("FindClientByID", suite.ctx, client.ClientID).Return(client, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", suite.ctx, []string{productID}).Return(map[string]domain.Product{}, nil).Once()

	_, err := suite.service.CreateInvoice(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Final_DecrementsStock() {
	client := suite.activeClient()
	productID := uuid.NewString()
	product := domain.Product{ProductID: productID, Name: "Widget", Price: decimal.NewFromInt(10), Stock: 50, IsActive: true}
	req := dto.CreateInvoiceRequest{
		Type:     domain.InvoiceTypeFinal,
		ClientID: client.ClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: productID, Quantity: 5}},
		DueDate:  time.Now(),
	}
	stored := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Number:    "INV-2026-000007",
		Type:      domain.InvoiceTypeFinal,
		ClientID:  client.ClientID,
		Items:     []domain.InvoiceItem{{ProductID: productID, ProductName: "Widget", UnitPrice: decimal.NewFromInt(10), Quantity: 5, Total: decimal.NewFromInt(50)}},
	}

	suite.mockClientRepo.On("FindClientByID", suite.ctx, client.ClientID).Return(client, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", suite.ctx, []string{productID}).Return(map[string]domain.Product{productID: product}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", suite.ctx, mock.AnythingOfType("domain.Invoice")).Return(stored, nil).Once()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, productID).Return(&product, nil).Once()
	suite.mockProductRepo.On("DecrementStock", suite.ctx, productID, int64(5), false, "user-1", mock.AnythingOfType("time.Time")).Return(true, nil).Once()

	_, err := suite.service.CreateInvoice(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Final_InsufficientStockSkipsDecrement() {
	client := suite.activeClient()
	productID := uuid.NewString()
	product := domain.Product{ProductID: productID, Name: "Widget", Price: decimal.NewFromInt(10), Stock: 2, IsActive: true}
	req := dto.CreateInvoiceRequest{
		Type:     domain.InvoiceTypeFinal,
		ClientID: client.ClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: productID, Quantity: 5}},
		DueDate:  time.Now(),
	}
	stored := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Type:      domain.InvoiceTypeFinal,
		Items:     []domain.InvoiceItem{{ProductID: productID, ProductName: "Widget", UnitPrice: decimal.NewFromInt(10), Quantity: 5, Total: decimal.NewFromInt(50)}},
	}

	suite.mockClientRepo.On("FindClientByID", suite.ctx, client.ClientID).Return(client, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", suite.ctx, []string{productID}).Return(map[string]domain.Product{productID: product}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", suite.ctx, mock.AnythingOfType("domain.Invoice")).Return(stored, nil).Once()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, productID).Return(&product, nil).Once()

	_, err := suite.service.CreateInvoice(suite.ctx, req, "user-1")

	// Insufficient stock never fails the invoice; the decrement is just skipped.
	suite.Require().NoError(err)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "DecrementStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Final_OversellAllowed() {
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockProductRepo, suite.mockClientRepo, true)

	client := suite.activeClient()
	productID := uuid.NewString()
	product := domain.Product{ProductID: productID, Name: "Widget", Price: decimal.NewFromInt(10), Stock: 2, IsActive: true}
	req := dto.CreateInvoiceRequest{
		Type:     domain.InvoiceTypeFinal,
		ClientID: client.ClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: productID, Quantity: 5}},
		DueDate:  time.Now(),
	}
	stored := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Type:      domain.InvoiceTypeFinal,
		Items:     []domain.InvoiceItem{{ProductID: productID, ProductName: "Widget", UnitPrice: decimal.NewFromInt(10), Quantity: 5, Total: decimal.NewFromInt(50)}},
	}

	suite.mockClientRepo.On("FindClientByID", suite.ctx, client.ClientID).Return(client, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", suite.ctx, []string{productID}).Return(map[string]domain.Product{productID: product}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", suite.ctx, mock.AnythingOfType("domain.Invoice")).Return(stored, nil).Once()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, productID).Return(&product, nil).Once()
	suite.mockProductRepo.On("DecrementStock", suite.ctx, productID, int64(5), true, "user-1", mock.AnythingOfType("time.Time")).Return(true, nil).Once()

	_, err := suite.service.CreateInvoice(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ServiceItemLeavesStockAlone() {
	client := suite.activeClient()
	productID := uuid.NewString()
	product := domain.Product{ProductID: productID, Name: "Support plan", Price: decimal.NewFromInt(99), IsService: true, IsActive: true}
	req := dto.CreateInvoiceRequest{
		Type:     domain.InvoiceTypeFinal,
		ClientID: client.ClientID,
		Items:    []dto.InvoiceItemRequest{{ProductID: productID, Quantity: 1}},
		DueDate:  time.Now(),
	}
	stored := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Type:      domain.InvoiceTypeFinal,
		Items:     []domain.InvoiceItem{{ProductID: productID, ProductName: "Support plan", UnitPrice: decimal.NewFromInt(99), Quantity: 1, Total: decimal.NewFromInt(99)}},
	}

	suite.mockClientRepo.On("FindClientByID", suite.ctx, client.ClientID).Return(client, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", suite.ctx, []string{productID}).Return(map[string]domain.Product{productID: product}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", suite.ctx, mock.AnythingOfType("domain.Invoice")).Return(stored, nil).Once()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, productID).Return(&product, nil).Once()

	_, err := suite.service.CreateInvoice(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "DecrementStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_NotFound() {
	invoiceID := uuid.NewString()
	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetInvoiceByID(suite.ctx, invoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_RecomputesTotals() {
	invoiceID := uuid.NewString()
	productID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID: invoiceID,
		Number:    "INV-2026-000003",
		Type:      domain.InvoiceTypeFinal,
		ClientID:  uuid.NewString(),
		Subtotal:  decimal.NewFromInt(100),
		Tax:       decimal.NewFromInt(19),
		Total:     decimal.NewFromInt(119),
		Status:    domain.InvoiceStatusDraft,
	}
	products := map[string]domain.Product{
		productID: {ProductID: productID, Name: "Widget", Price: decimal.NewFromInt(25), Stock: 10, IsActive: true},
	}
	newTax := decimal.NewFromInt(10)
	req := dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductID: productID, Quantity: 4}},
		Tax:   &newTax,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, invoiceID).Return(existing, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", suite.ctx, []string{productID}).Return(products, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", suite.ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(domain.Invoice)
			suite.True(updated.Subtotal.Equal(decimal.NewFromInt(100)))
			suite.True(updated.Tax.Equal(decimal.NewFromInt(10)))
			suite.True(updated.Total.Equal(decimal.NewFromInt(110)))
			// The number survives every update untouched.
			suite.Equal("INV-2026-000003", updated.Number)
		}).
		Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(suite.ctx, invoiceID, req, "user-2")

	suite.Require().NoError(err)
	suite.Equal("user-2", updated.LastUpdatedBy)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestSetStatus_PaidStampsPaymentDate() {
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID: invoiceID,
		Type:      domain.InvoiceTypeFinal,
		Status:    domain.InvoiceStatusSent,
		Total:     decimal.NewFromInt(100),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, invoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", suite.ctx, invoiceID, domain.InvoiceStatusPaid, mock.AnythingOfType("*time.Time"), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.SetStatus(suite.ctx, invoiceID, domain.InvoiceStatusPaid, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusPaid, updated.Status)
	suite.Require().NotNil(updated.PaymentDate)
	suite.WithinDuration(time.Now(), *updated.PaymentDate, 2*time.Second)
}

func (suite *InvoiceServiceTestSuite) TestSetStatus_NonPaidClearsPaymentDate() {
	invoiceID := uuid.NewString()
	paidAt := time.Now().Add(-24 * time.Hour)
	existing := &domain.Invoice{
		InvoiceID:   invoiceID,
		Type:        domain.InvoiceTypeFinal,
		Status:      domain.InvoiceStatusPaid,
		PaymentDate: &paidAt,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, invoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", suite.ctx, invoiceID, domain.InvoiceStatusSent, (*time.Time)(nil), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.SetStatus(suite.ctx, invoiceID, domain.InvoiceStatusSent, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusSent, updated.Status)
	suite.Nil(updated.PaymentDate)
}

func (suite *InvoiceServiceTestSuite) TestConvertToFinal_Success() {
	proformaID := uuid.NewString()
	productID := uuid.NewString()
	product := domain.Product{ProductID: productID, Name: "Widget", Price: decimal.NewFromInt(10), Stock: 100, IsActive: true}
	proforma := &domain.Invoice{
		InvoiceID: proformaID,
		Number:    "PRO-2026-000002",
		Type:      domain.InvoiceTypeProforma,
		ClientID:  uuid.NewString(),
		Items:     []domain.InvoiceItem{{ProductID: productID, ProductName: "Widget", UnitPrice: decimal.NewFromInt(10), Quantity: 6, Total: decimal.NewFromInt(60)}},
		Subtotal:  decimal.NewFromInt(60),
		Tax:       decimal.NewFromInt(11),
		Total:     decimal.NewFromInt(71),
		Status:    domain.InvoiceStatusSent,
	}
	stored := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Number:    "INV-2026-000042",
		Type:      domain.InvoiceTypeFinal,
		ClientID:  proforma.ClientID,
		Items:     proforma.Items,
		Subtotal:  proforma.Subtotal,
		Tax:       proforma.Tax,
		Total:     proforma.Total,
		Status:    proforma.Status,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, proformaID).Return(proforma, nil).Once()
	suite.mockInvoiceRepo.On("SaveConversion", suite.ctx, mock.AnythingOfType("domain.Invoice"), proformaID, "user-1", mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			final := args.Get(1).(domain.Invoice)
			suite.Equal(domain.InvoiceTypeFinal, final.Type)
			suite.Empty(final.Number)
			suite.NotEqual(proformaID, final.InvoiceID)
			suite.True(final.Total.Equal(decimal.NewFromInt(71)))
		}).
		Return(stored, nil).Once()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, productID).Return(&product, nil).Once()
	suite.mockProductRepo.On("DecrementStock", suite.ctx, productID, int64(6), false, "user-1", mock.AnythingOfType("time.Time")).Return(true, nil).Once()

	final, err := suite.service.ConvertToFinal(suite.ctx, proformaID, "user-1")

	suite.Require().NoError(err)
	suite.Equal("INV-2026-000042", final.Number)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestConvertToFinal_NotProforma() {
	invoiceID := uuid.NewString()
	finalInvoice := &domain.Invoice{InvoiceID: invoiceID, Type: domain.InvoiceTypeFinal}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, invoiceID).Return(finalInvoice, nil).Once()

	_, err := suite.service.ConvertToFinal(suite.ctx, invoiceID, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestConvertToFinal_AlreadyConverted() {
	proformaID := uuid.NewString()
	proforma := &domain.Invoice{
		InvoiceID:        proformaID,
		Type:             domain.InvoiceTypeProforma,
		ConvertedToFinal: true,
		FinalInvoiceID:   uuid.NewString(),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, proformaID).Return(proforma, nil).Once()

	_, err := suite.service.ConvertToFinal(suite.ctx, proformaID, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyConverted)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestConvertToFinal_LatchLostRace() {
	proformaID := uuid.NewString()
	proforma := &domain.Invoice{
		InvoiceID: proformaID,
		Type:      domain.InvoiceTypeProforma,
		Items:     []domain.InvoiceItem{},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, proformaID).Return(proforma, nil).Once()
	suite.mockInvoiceRepo.On("SaveConversion", suite.ctx, mock.AnythingOfType("domain.Invoice"), proformaID, "user-1", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrAlreadyConverted).Once()

	_, err := suite.service.ConvertToFinal(suite.ctx, proformaID, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyConverted)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "DecrementStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_PassesFilterAndToken() {
	token := "b3BhcXVl"
	next := "bmV4dA"
	params := dto.ListInvoicesParams{
		Limit:     10,
		NextToken: &token,
		Status:    domain.InvoiceStatusSent,
	}
	invoices := []domain.Invoice{{InvoiceID: uuid.NewString(), Number: "INV-2026-000001", Status: domain.InvoiceStatusSent}}

	suite.mockInvoiceRepo.On("ListInvoices", suite.ctx, mock.AnythingOfType("repositories.InvoiceListFilter"), 10, &token).Return(invoices, &next, nil).Once()

	resp, err := suite.service.ListInvoices(suite.ctx, params)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Invoices, 1)
	suite.Equal("INV-2026-000001", resp.Invoices[0].Number)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_RepoError() {
	invoiceID := uuid.NewString()
	suite.mockInvoiceRepo.On("DeleteInvoice", suite.ctx, invoiceID).Return(assert.AnError).Once()

	err := suite.service.DeleteInvoice(suite.ctx, invoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
