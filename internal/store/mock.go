package store

import (
	"sync"

	"fjacquet/debt-planner/internal/models"
)

// MockDebtStore is an in-memory DebtRepository for tests.
type MockDebtStore struct {
	mu       sync.Mutex
	Debts    []models.Debt
	Payments []models.Payment

	// Error flags for testing error conditions
	LoadError          error
	SaveError          error
	LoadPaymentsError  error
	AppendPaymentError error

	SaveCalls int
}

var _ DebtRepository = (*MockDebtStore)(nil)

// Load returns a copy of the mock debts.
func (m *MockDebtStore) Load() ([]models.Debt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return models.CloneDebts(m.Debts), nil
}

// Save replaces the mock debts.
func (m *MockDebtStore) Save(debts []models.Debt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Debts = models.CloneDebts(debts)
	m.SaveCalls++
	return nil
}

// LoadPayments returns a copy of the recorded payments.
func (m *MockDebtStore) LoadPayments() ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadPaymentsError != nil {
		return nil, m.LoadPaymentsError
	}
	return append([]models.Payment(nil), m.Payments...), nil
}

// AppendPayment records a payment.
func (m *MockDebtStore) AppendPayment(payment models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendPaymentError != nil {
		return m.AppendPaymentError
	}
	m.Payments = append(m.Payments, payment)
	return nil
}
