// Package store loads and saves the user's debt list and payment history.
// YAML is the primary format; a .csv extension selects CSV instead.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fjacquet/debt-planner/internal/common"
	"fjacquet/debt-planner/internal/currencyutils"
	"fjacquet/debt-planner/internal/dateutils"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"
	"fjacquet/debt-planner/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultDebtsFile is the file name used when none is configured.
const DefaultDebtsFile = "debts.yaml"

// DebtRepository is what the commands need from a debt store.
type DebtRepository interface {
	Load() ([]models.Debt, error)
	Save(debts []models.Debt) error
	LoadPayments() ([]models.Payment, error)
	AppendPayment(payment models.Payment) error
}

// DebtStore persists debts in a single file.
type DebtStore struct {
	FilePath  string
	Delimiter rune
	logger    logging.Logger
}

var _ DebtRepository = (*DebtStore)(nil)

// debtIDSpace namespaces the ids derived for records that have none.
var debtIDSpace = uuid.MustParse("5b0f3c8e-6d2a-4f4e-9a51-0d7c2e9b8a41")

// derivedID is stable for a record at the same position with the same name,
// so repeated loads of an unchanged file agree on it.
func derivedID(position int, name string) string {
	key := strconv.Itoa(position) + ":" + strings.TrimSpace(name)
	return uuid.NewSHA1(debtIDSpace, []byte(key)).String()
}

// NewDebtStore creates a store for filePath. An empty path means
// DefaultDebtsFile looked up in the standard locations.
func NewDebtStore(filePath string, delimiter rune, logger logging.Logger) *DebtStore {
	if filePath == "" {
		filePath = DefaultDebtsFile
	}
	return &DebtStore{
		FilePath:  filePath,
		Delimiter: delimiter,
		logger:    logging.OrNop(logger),
	}
}

// debtFile is the YAML document layout.
type debtFile struct {
	Debts    []debtRecord    `yaml:"debts"`
	Payments []paymentRecord `yaml:"payments,omitempty"`
}

// debtRecord keeps every field as text so that hand-written files may use
// "24.99%" rates or "$1,200" amounts.
type debtRecord struct {
	ID              string `yaml:"id" csv:"id"`
	Name            string `yaml:"name" csv:"name"`
	Category        string `yaml:"category,omitempty" csv:"category"`
	Status          string `yaml:"status,omitempty" csv:"status"`
	CurrentBalance  string `yaml:"current_balance" csv:"current_balance"`
	OriginalBalance string `yaml:"original_balance,omitempty" csv:"original_balance"`
	InterestRate    string `yaml:"interest_rate" csv:"interest_rate"`
	MinimumPayment  string `yaml:"minimum_payment" csv:"minimum_payment"`
	DueDay          string `yaml:"due_day,omitempty" csv:"due_day"`
	PaidOffDate     string `yaml:"paid_off_date,omitempty" csv:"paid_off_date"`
}

type paymentRecord struct {
	DebtID        string `yaml:"debt_id" csv:"debt_id"`
	Date          string `yaml:"date" csv:"date"`
	Amount        string `yaml:"amount" csv:"amount"`
	PrincipalPaid string `yaml:"principal_paid" csv:"principal_paid"`
	InterestPaid  string `yaml:"interest_paid" csv:"interest_paid"`
	Unapplied     string `yaml:"unapplied,omitempty" csv:"unapplied"`
}

// FindDataFile looks for filename as given, under ./data, then under
// ~/.config/debt-planner.
func FindDataFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("data", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "debt-planner", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

func (s *DebtStore) isCSV() bool {
	return strings.EqualFold(filepath.Ext(s.FilePath), ".csv")
}

// resolve returns the existing file, or FilePath itself when nothing exists yet.
func (s *DebtStore) resolve() (string, bool) {
	path, err := FindDataFile(s.FilePath)
	if err != nil {
		return s.FilePath, false
	}
	return path, true
}

func (s *DebtStore) paymentsCSVPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".payments.csv"
}

// Load reads and validates the debt list. Missing ids are derived from the
// record's position and name, and written to the file by the next Save.
// Missing original balances default to the current balance.
func (s *DebtStore) Load() ([]models.Debt, error) {
	path, found := s.resolve()
	if !found {
		return nil, fmt.Errorf("debts file not found: %s: %w", s.FilePath, os.ErrNotExist)
	}
	log := s.logger.WithField(logging.FieldFile, path)

	var records []debtRecord
	if s.isCSV() {
		rows, err := common.ReadCSVFile[debtRecord](path, s.Delimiter, s.logger)
		if err != nil {
			return nil, err
		}
		records = rows
	} else {
		doc, err := readYAML(path)
		if err != nil {
			return nil, err
		}
		records = doc.Debts
	}

	debts := make([]models.Debt, 0, len(records))
	for i, rec := range records {
		debt, err := rec.toDebt(path, i)
		if err != nil {
			log.WithError(err).Error("Invalid debt record")
			return nil, err
		}
		if strings.TrimSpace(rec.ID) == "" {
			log.Info("Derived id for debt without one",
				logging.Field{Key: logging.FieldDebtID, Value: debt.ID})
		}
		debts = append(debts, debt)
	}

	if err := validation.ValidateDebts(debts, log); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug("Loaded debts", logging.Field{Key: logging.FieldCount, Value: len(debts)})
	return debts, nil
}

// Save writes the debt list, keeping any payment history already on file.
func (s *DebtStore) Save(debts []models.Debt) error {
	path, found := s.resolve()
	log := s.logger.WithField(logging.FieldFile, path)

	records := make([]debtRecord, len(debts))
	for i, d := range debts {
		records[i] = fromDebt(d)
	}

	if s.isCSV() {
		return common.WriteCSVFile(path, records, s.Delimiter, s.logger)
	}

	doc := &debtFile{}
	if found {
		existing, err := readYAML(path)
		if err != nil {
			return err
		}
		doc.Payments = existing.Payments
	}
	doc.Debts = records

	if err := writeYAML(path, doc); err != nil {
		log.WithError(err).Error("Failed to save debts")
		return err
	}
	log.Debug("Saved debts", logging.Field{Key: logging.FieldCount, Value: len(debts)})
	return nil
}

// LoadPayments returns the recorded payment history, oldest first.
func (s *DebtStore) LoadPayments() ([]models.Payment, error) {
	path, found := s.resolve()

	var records []paymentRecord
	if s.isCSV() {
		paymentsPath := s.paymentsCSVPath(path)
		if _, err := os.Stat(paymentsPath); errors.Is(err, os.ErrNotExist) {
			return []models.Payment{}, nil
		}
		rows, err := common.ReadCSVFile[paymentRecord](paymentsPath, s.Delimiter, s.logger)
		if err != nil {
			return nil, err
		}
		records = rows
	} else {
		if !found {
			return []models.Payment{}, nil
		}
		doc, err := readYAML(path)
		if err != nil {
			return nil, err
		}
		records = doc.Payments
	}

	payments := make([]models.Payment, 0, len(records))
	for _, rec := range records {
		p, err := rec.toPayment(path)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// AppendPayment adds one payment to the history.
func (s *DebtStore) AppendPayment(payment models.Payment) error {
	path, found := s.resolve()
	rec := fromPayment(payment)

	if s.isCSV() {
		paymentsPath := s.paymentsCSVPath(path)
		var rows []paymentRecord
		if _, err := os.Stat(paymentsPath); err == nil {
			existing, err := common.ReadCSVFile[paymentRecord](paymentsPath, s.Delimiter, s.logger)
			if err != nil {
				return err
			}
			rows = existing
		}
		return common.WriteCSVFile(paymentsPath, append(rows, rec), s.Delimiter, s.logger)
	}

	doc := &debtFile{}
	if found {
		existing, err := readYAML(path)
		if err != nil {
			return err
		}
		doc = existing
	}
	doc.Payments = append(doc.Payments, rec)
	return writeYAML(path, doc)
}

func readYAML(path string) (*debtFile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's configuration
	if err != nil {
		return nil, fmt.Errorf("error reading debts file: %w", err)
	}

	doc := &debtFile{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, &planerror.ValidationError{FilePath: path, Reason: err.Error()}
	}
	return doc, nil
}

func writeYAML(path string, doc *debtFile) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling debts: %w", err)
	}
	if err := os.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing debts file: %w", err)
	}
	return nil
}

func (r debtRecord) toDebt(source string, position int) (models.Debt, error) {
	fail := func(field, value string, err error) (models.Debt, error) {
		return models.Debt{}, &planerror.ParseError{Source: source, Field: field, Value: value, Err: err}
	}

	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = derivedID(position, r.Name)
	}
	category, err := models.ParseCategory(r.Category)
	if err != nil {
		return fail("category", r.Category, err)
	}
	status, err := models.ParseStatus(r.Status)
	if err != nil {
		return fail("status", r.Status, err)
	}
	current, err := currencyutils.ParseAmount(r.CurrentBalance)
	if err != nil {
		return fail("current_balance", r.CurrentBalance, err)
	}
	original := current
	if strings.TrimSpace(r.OriginalBalance) != "" {
		if original, err = currencyutils.ParseAmount(r.OriginalBalance); err != nil {
			return fail("original_balance", r.OriginalBalance, err)
		}
	}
	rate, err := currencyutils.ParseRate(r.InterestRate)
	if err != nil {
		return fail("interest_rate", r.InterestRate, err)
	}
	minimum, err := currencyutils.ParseAmount(r.MinimumPayment)
	if err != nil {
		return fail("minimum_payment", r.MinimumPayment, err)
	}
	dueDay := 0
	if s := strings.TrimSpace(r.DueDay); s != "" {
		if dueDay, err = strconv.Atoi(s); err != nil {
			return fail("due_day", r.DueDay, err)
		}
	}

	debt := models.Debt{
		ID:              id,
		Name:            strings.TrimSpace(r.Name),
		Category:        category,
		Status:          status,
		CurrentBalance:  current,
		OriginalBalance: original,
		InterestRate:    rate,
		MinimumPayment:  minimum,
		DueDay:          dueDay,
	}
	if debt.Name == "" {
		debt.Name = id
	}

	paidOn, err := dateutils.ParseDateString(r.PaidOffDate)
	if err != nil {
		return fail("paid_off_date", r.PaidOffDate, err)
	}
	if !paidOn.IsZero() {
		debt.PaidOffDate = &paidOn
	}
	return debt, nil
}

func fromDebt(d models.Debt) debtRecord {
	rec := debtRecord{
		ID:              d.ID,
		Name:            d.Name,
		Category:        string(d.Category),
		Status:          string(d.Status),
		CurrentBalance:  d.CurrentBalance.StringFixed(models.MinorUnitPlaces),
		OriginalBalance: d.OriginalBalance.StringFixed(models.MinorUnitPlaces),
		InterestRate:    d.InterestRate.String(),
		MinimumPayment:  d.MinimumPayment.StringFixed(models.MinorUnitPlaces),
	}
	if d.DueDay > 0 {
		rec.DueDay = strconv.Itoa(d.DueDay)
	}
	if d.PaidOffDate != nil {
		rec.PaidOffDate = dateutils.ToISODate(*d.PaidOffDate)
	}
	return rec
}

func (r paymentRecord) toPayment(source string) (models.Payment, error) {
	var firstErr error
	amount := func(field, value string) decimal.Decimal {
		v, err := currencyutils.ParseAmount(value)
		if err != nil && firstErr == nil {
			firstErr = &planerror.ParseError{Source: source, Field: field, Value: value, Err: err}
		}
		return v
	}

	p := models.Payment{
		DebtID:        r.DebtID,
		Amount:        amount("amount", r.Amount),
		PrincipalPaid: amount("principal_paid", r.PrincipalPaid),
		InterestPaid:  amount("interest_paid", r.InterestPaid),
		Unapplied:     amount("unapplied", r.Unapplied),
	}
	if firstErr != nil {
		return models.Payment{}, firstErr
	}

	date, err := dateutils.ParseDateString(r.Date)
	if err != nil {
		return models.Payment{}, &planerror.ParseError{Source: source, Field: "date", Value: r.Date, Err: err}
	}
	p.PaymentDate = date
	return p, nil
}

func fromPayment(p models.Payment) paymentRecord {
	return paymentRecord{
		DebtID:        p.DebtID,
		Date:          dateutils.ToISODate(p.PaymentDate),
		Amount:        p.Amount.StringFixed(models.MinorUnitPlaces),
		PrincipalPaid: p.PrincipalPaid.StringFixed(models.MinorUnitPlaces),
		InterestPaid:  p.InterestPaid.StringFixed(models.MinorUnitPlaces),
		Unapplied:     p.Unapplied.StringFixed(models.MinorUnitPlaces),
	}
}
