package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CustomerRepository gives the ledger access to the customer records it depends on.
type CustomerRepository interface {
	// FindCustomerByID retrieves a customer.
	FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)

	// FindCustomerByIDForUpdate reads and locks a customer.
	FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID int64) (*domain.Customer, error)

	// AdjustOutstandingInTx adds delta (possibly negative) to the customer's outstanding balance.
	AdjustOutstandingInTx(ctx context.Context, tx pgx.Tx, customerID int64, delta decimal.Decimal, now time.Time) error
}

// InvoiceRepository defines persistence for customer invoices.
type InvoiceRepository interface {
	// SaveInvoiceInTx persists a new invoice and returns its generated id.
	SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) (int64, error)

	// FindInvoiceByID retrieves an invoice.
	FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error)

	// FindInvoiceByIDForUpdate reads and locks an invoice.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID int64) (*domain.Invoice, error)

	// UpdateInvoiceSettlementInTx stores paid amount, prepayment applied, status and ledger link.
	UpdateInvoiceSettlementInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error

	// ListInvoicesByCustomer retrieves a customer's invoices, newest first.
	ListInvoicesByCustomer(ctx context.Context, customerID int64) ([]domain.Invoice, error)
}

// InvoiceRepositoryWithTx extends InvoiceRepository with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepository
	TransactionManager
}
