package dashboard

import (
	"context"
	"errors"
	"sort"
	"strings"

	dashboarderrors "transparency/internal/dashboard/errors"
	"transparency/internal/domain"
	"transparency/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	PaymentStatusPaid     = "Paid"
	PaymentStatusRemitted = "Remitted"

	LabelPaid          = "Paid"
	LabelPartiallyPaid = "Partially Paid"
	LabelNotPaid       = "Not Paid"

	StatusApproved = "Approved"

	// The timeline merges the recent slices of all three transaction kinds
	// and shows at most this many entries.
	recentTransactionLimit = 10
)

// remitStatusPriority ranks the statuses found among a fee's remittances when
// deriving a payment's effective remittance status. First match wins; a fee
// with no remittances at all resolves to NOT_REMITTED.
var remitStatusPriority = []string{
	"COMPLETED",
	"PARTIAL",
	"VERIFIED",
	"PENDING_VERIFICATION",
	"REJECTED",
	"NOT_REMITTED",
}

type Service interface {
	GetAdminSummary(ctx context.Context) (AdminDashboardSummary, error)
	GetFeeUtilization(ctx context.Context) ([]FeeUtilization, error)
	GetClassTreasurerSummary(ctx context.Context, email string) (ClassSummary, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetAdminSummary scans the full payment/remittance snapshots and buckets
// payments two ways: by their stored status and by the effective remittance
// status of their fee. It also attaches the merged recent-transaction
// timeline.
func (s *service) GetAdminSummary(ctx context.Context) (AdminDashboardSummary, error) {
	payments, err := s.repo.FindAllPayments(ctx)
	if err != nil {
		return AdminDashboardSummary{}, err
	}
	remittances, err := s.repo.FindAllRemittances(ctx)
	if err != nil {
		return AdminDashboardSummary{}, err
	}

	byStatus := make(map[string]StatusBucket)
	for _, p := range payments {
		addToBucket(byStatus, p.Status, p.FeeAmount)
	}

	statusesByFee := make(map[int64]map[string]bool)
	for _, r := range remittances {
		set, ok := statusesByFee[r.FeeID]
		if !ok {
			set = make(map[string]bool)
			statusesByFee[r.FeeID] = set
		}
		set[strings.ToUpper(r.Status)] = true
	}

	byRemitStatus := make(map[string]StatusBucket)
	for _, p := range payments {
		addToBucket(byRemitStatus, effectiveRemitStatus(statusesByFee[p.FeeID]), p.FeeAmount)
	}

	timeline, err := s.recentTransactions(ctx)
	if err != nil {
		return AdminDashboardSummary{}, err
	}

	return AdminDashboardSummary{
		PaymentsByStatus:           byStatus,
		PaymentsByRemittanceStatus: byRemitStatus,
		RecentTransactions:         timeline,
	}, nil
}

func addToBucket(buckets map[string]StatusBucket, key string, amount decimal.Decimal) {
	b := buckets[key]
	b.Count++
	b.TotalAmount = b.TotalAmount.Add(amount)
	buckets[key] = b
}

func effectiveRemitStatus(found map[string]bool) string {
	for _, status := range remitStatusPriority {
		if found[status] {
			return status
		}
	}
	return "NOT_REMITTED"
}

func (s *service) recentTransactions(ctx context.Context) ([]TransactionEntry, error) {
	payments, err := s.repo.FindRecentPayments(ctx, recentTransactionLimit)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.FindRecentExpenses(ctx, recentTransactionLimit)
	if err != nil {
		return nil, err
	}
	remittances, err := s.repo.FindRecentRemittances(ctx, recentTransactionLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]TransactionEntry, 0, len(payments)+len(expenses)+len(remittances))
	for _, p := range payments {
		entries = append(entries, TransactionEntry{
			Type:        "payment",
			Description: "Fee payment - " + p.FeeType,
			Amount:      p.FeeAmount,
			Status:      p.Status,
			Date:        p.PaymentDate,
		})
	}
	for _, e := range expenses {
		entries = append(entries, TransactionEntry{
			Type:        "expense",
			Description: "Expense - " + e.Category,
			Amount:      e.Amount,
			Status:      e.ExpenseStatus,
			Date:        e.ExpenseDate,
		})
	}
	for _, r := range remittances {
		entries = append(entries, TransactionEntry{
			Type:        "remittance",
			Description: "Remittance - " + r.FeeType,
			Amount:      r.AmountRemitted,
			Status:      r.Status,
			Date:        r.RemittanceDate,
		})
	}

	// Newest first, undated entries last.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Date, entries[j].Date
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	if len(entries) > recentTransactionLimit {
		entries = entries[:recentTransactionLimit]
	}
	return entries, nil
}

// GetFeeUtilization reports per-fee money flow: collected student payments,
// completed remittances and approved related expenses. Remitted money is an
// internal transfer, so the net balance subtracts expenses only.
func (s *service) GetFeeUtilization(ctx context.Context) ([]FeeUtilization, error) {
	fees, err := s.repo.FindAllFees(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.FindAllPayments(ctx)
	if err != nil {
		return nil, err
	}
	remittances, err := s.repo.FindAllRemittances(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.FindAllExpenses(ctx)
	if err != nil {
		return nil, err
	}

	collected := make(map[int64]decimal.Decimal, len(fees))
	for _, p := range payments {
		if p.Status == PaymentStatusPaid || p.Status == PaymentStatusRemitted {
			collected[p.FeeID] = collected[p.FeeID].Add(p.FeeAmount)
		}
	}

	remitted := make(map[int64]decimal.Decimal, len(fees))
	for _, r := range remittances {
		if strings.EqualFold(r.Status, "COMPLETED") {
			remitted[r.FeeID] = remitted[r.FeeID].Add(r.AmountRemitted)
		}
	}

	spent := make(map[int64]decimal.Decimal, len(fees))
	for _, e := range expenses {
		if e.RelatedFeeID != nil && e.ApprovalStatus == StatusApproved {
			spent[*e.RelatedFeeID] = spent[*e.RelatedFeeID].Add(e.Amount)
		}
	}

	result := make([]FeeUtilization, len(fees))
	for i, f := range fees {
		result[i] = FeeUtilization{
			FeeID:          f.FeeID,
			FeeType:        f.FeeType,
			TotalCollected: collected[f.FeeID],
			TotalRemitted:  remitted[f.FeeID],
			TotalExpenses:  spent[f.FeeID],
			NetBalance:     collected[f.FeeID].Sub(spent[f.FeeID]),
		}
	}
	return result, nil
}

// GetClassTreasurerSummary lists the treasurer's classmates with a per-fee
// payment breakdown. The tri-state label comes from amount paid vs fee amount
// alone, not from any stored payment status string.
func (s *service) GetClassTreasurerSummary(ctx context.Context, email string) (ClassSummary, error) {
	l := contextutil.GetLogger(ctx, nil)
	meta := contextutil.ExtractMetadata(ctx)

	account, err := s.repo.FindTreasurerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("class treasurer lookup missed",
				zap.String("request_id", meta.RequestID),
				zap.String("email", email),
			)
			return ClassSummary{}, dashboarderrors.ErrTreasurerNotFound
		}
		return ClassSummary{}, err
	}

	if account.StudentID == nil || account.ProgramID == nil || account.YearLevel == nil || account.Section == nil {
		l.Warn("class treasurer has no class identity",
			zap.String("request_id", meta.RequestID),
			zap.Int64("account_id", account.AccountID),
		)
		return ClassSummary{}, dashboarderrors.ErrNoClassIdentity
	}

	class := domain.ClassIdentity{
		ProgramID: *account.ProgramID,
		YearLevel: *account.YearLevel,
		Section:   *account.Section,
	}

	classmates, err := s.repo.FindClassmates(ctx, class)
	if err != nil {
		return ClassSummary{}, err
	}
	fees, err := s.repo.FindAllFees(ctx)
	if err != nil {
		return ClassSummary{}, err
	}

	studentIDs := make([]string, len(classmates))
	for i, c := range classmates {
		studentIDs[i] = c.StudentID
	}
	payments, err := s.repo.FindPaymentsForStudents(ctx, studentIDs)
	if err != nil {
		return ClassSummary{}, err
	}

	type paymentKey struct {
		StudentID string
		FeeID     int64
	}
	paidAmounts := make(map[paymentKey]decimal.Decimal)
	for _, p := range payments {
		if p.Status != PaymentStatusPaid {
			continue
		}
		key := paymentKey{StudentID: p.StudentID, FeeID: p.FeeID}
		paidAmounts[key] = paidAmounts[key].Add(p.FeeAmount)
	}

	students := make([]ClassmateSummary, len(classmates))
	for i, mate := range classmates {
		feeStatuses := make([]ClassmateFeeStatus, len(fees))
		for j, f := range fees {
			paid := paidAmounts[paymentKey{StudentID: mate.StudentID, FeeID: f.FeeID}]

			due := f.Amount.Sub(paid)
			if due.IsNegative() {
				due = decimal.Zero
			}

			label := LabelNotPaid
			switch {
			case paid.GreaterThanOrEqual(f.Amount):
				label = LabelPaid
			case paid.IsPositive():
				label = LabelPartiallyPaid
			}

			feeStatuses[j] = ClassmateFeeStatus{
				FeeID:      f.FeeID,
				FeeType:    f.FeeType,
				AmountPaid: paid,
				AmountDue:  due,
				Status:     label,
			}
		}

		students[i] = ClassmateSummary{
			StudentID: mate.StudentID,
			LastName:  mate.LastName,
			FirstName: mate.FirstName,
			Fees:      feeStatuses,
		}
	}

	return ClassSummary{
		ProgramID: class.ProgramID,
		YearLevel: class.YearLevel,
		Section:   class.Section,
		Students:  students,
	}, nil
}
