package actions

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/duitku/duitku-server/internal/storage"
	"github.com/duitku/duitku-server/internal/storage/category"
	"github.com/duitku/duitku-server/internal/storage/savings"
	"github.com/duitku/duitku-server/internal/storage/transaction"
)

func newTestWriter(transactions *mockTransactionTable, pools *mockSavingsTable, categories *mockCategoryTable) *storage.Writer {
	return &storage.Writer{
		Transactions: transactions,
		Savings:      pools,
		Categories:   categories,
	}
}

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) FindByID(ctx context.Context, userID string, id int64) (*transaction.Transaction, error) {
	args := m.Called(ctx, userID, id)
	tx, _ := args.Get(0).(*transaction.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionTable) FindAnyByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*transaction.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionTable) Insert(ctx context.Context, create *transaction.TransactionCreate) (int64, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, userID string) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactionTable) Update(ctx context.Context, userID string, id int64, update *transaction.TransactionUpdate) error {
	return m.Called(ctx, userID, id, update).Error(0)
}

func (m *mockTransactionTable) Delete(ctx context.Context, userID string, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockTransactionTable) Upsert(ctx context.Context, upsert *transaction.TransactionUpsert) (bool, error) {
	args := m.Called(ctx, upsert)
	return args.Bool(0), args.Error(1)
}

type mockSavingsTable struct {
	mock.Mock
}

func (m *mockSavingsTable) FindByID(ctx context.Context, userID string, id int64) (*savings.SavingsPool, error) {
	args := m.Called(ctx, userID, id)
	pool, _ := args.Get(0).(*savings.SavingsPool)
	return pool, args.Error(1)
}

func (m *mockSavingsTable) FindAnyByID(ctx context.Context, id int64) (*savings.SavingsPool, error) {
	args := m.Called(ctx, id)
	pool, _ := args.Get(0).(*savings.SavingsPool)
	return pool, args.Error(1)
}

func (m *mockSavingsTable) Insert(ctx context.Context, create *savings.SavingsPoolCreate) (int64, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSavingsTable) List(ctx context.Context, userID string, order savings.ListOrder) ([]*savings.SavingsPool, error) {
	args := m.Called(ctx, userID, order)
	rows, _ := args.Get(0).([]*savings.SavingsPool)
	return rows, args.Error(1)
}

func (m *mockSavingsTable) Update(ctx context.Context, userID string, id int64, update *savings.SavingsPoolUpdate) error {
	return m.Called(ctx, userID, id, update).Error(0)
}

func (m *mockSavingsTable) UpdateBalance(ctx context.Context, userID string, id int64, currentAmount decimal.Decimal) error {
	return m.Called(ctx, userID, id, currentAmount).Error(0)
}

func (m *mockSavingsTable) Delete(ctx context.Context, userID string, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockSavingsTable) Upsert(ctx context.Context, upsert *savings.SavingsPoolUpsert) (bool, error) {
	args := m.Called(ctx, upsert)
	return args.Bool(0), args.Error(1)
}

type mockCategoryTable struct {
	mock.Mock
}

func (m *mockCategoryTable) FindByID(ctx context.Context, id int64) (*category.Category, error) {
	args := m.Called(ctx, id)
	cat, _ := args.Get(0).(*category.Category)
	return cat, args.Error(1)
}

func (m *mockCategoryTable) FindByNameKind(ctx context.Context, name, kind string) (*category.Category, error) {
	args := m.Called(ctx, name, kind)
	cat, _ := args.Get(0).(*category.Category)
	return cat, args.Error(1)
}

func (m *mockCategoryTable) List(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]*category.Category)
	return rows, args.Error(1)
}
