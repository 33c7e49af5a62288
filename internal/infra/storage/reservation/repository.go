package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/pkg/txmanager"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var reservationColumns = []string{
	"payment_id",
	"transaction_id",
	"reservation_id",
	"slot_date",
	"slot_hour",
	"date_of_purchase",
	"number_of_guests",
	"number_of_tubs",
	"price",
	"first_name",
	"last_name",
	"phone_number",
	"email",
	"address",
	"city",
	"country_code",
	"post_code",
	"locale",
	"requirements",
	"payment_status",
	"canceled",
	"uncancelable",
	"reservation_email_sent",
	"receipt_sent",
	"reschedule_email_sent_count",
	"cancelation_email_sent",
	"created_at",
	"updated_at",
}

// Repository persists reservations keyed by payment id
type Repository struct {
	db DBExecutor
}

// NewRepository creates a reservation repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a prepared reservation. The write is keyed by payment_id and
// uses ON CONFLICT DO NOTHING, so retrying a prepare after a network failure
// is safe and never produces a duplicate row.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Insert("reservations").
		Columns(
			"payment_id",
			"transaction_id",
			"slot_date",
			"slot_hour",
			"date_of_purchase",
			"number_of_guests",
			"number_of_tubs",
			"price",
			"first_name",
			"last_name",
			"phone_number",
			"email",
			"address",
			"city",
			"country_code",
			"post_code",
			"locale",
			"requirements",
			"payment_status",
			"canceled",
			"uncancelable",
		).
		Values(
			res.PaymentID,
			res.TransactionID,
			res.Slot.Date,
			res.Slot.Hour,
			res.DateOfPurchase,
			res.NumberOfGuests,
			res.NumberOfTubs,
			res.Price,
			res.Customer.FirstName,
			res.Customer.LastName,
			res.Customer.PhoneNumber,
			res.Customer.Email,
			res.Customer.Address,
			res.Customer.City,
			res.Customer.CountryCode,
			res.Customer.PostCode,
			res.Locale,
			res.Requirements,
			res.PaymentStatus,
			res.Canceled,
			res.Uncancelable,
		).
		Suffix("ON CONFLICT (payment_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// GetByPaymentID fetches a reservation by its payment id. Inside a
// transaction the row is locked with FOR UPDATE, so lifecycle transitions on
// the same reservation serialize against each other.
func (r *Repository) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psql.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"payment_id": paymentID})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentID - scan reservation: %w", ErrScanRow, err)
	}
	return res, nil
}

// ListAfter returns every reservation whose slot date is on or after the
// given date key, ordered by slot. Used to feed the availability engine.
func (r *Repository) ListAfter(ctx context.Context, fromDateKey string) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.GtOrEq{"slot_date": fromDateKey}).
		OrderBy("slot_date ASC, slot_hour ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAfter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAfter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListOnDate returns all reservations on one date. Inside a transaction the
// rows are locked with FOR UPDATE: this is the authoritative occupancy read
// of the check-and-reserve sequence at prepare and reschedule.
func (r *Repository) ListOnDate(ctx context.Context, dateKey string) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psql.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"slot_date": dateKey}).
		OrderBy("slot_hour ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOnDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdatePaymentStatus sets the payment status of a reservation
func (r *Repository) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Update("reservations").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_id": paymentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdatePaymentStatus")
}

// Cancel marks the reservation canceled and records who canceled it
func (r *Repository) Cancel(ctx context.Context, paymentID string, by domain.CanceledBy) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Update("reservations").
		Set("canceled", by).
		Set("payment_status", domain.StatusCanceled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_id": paymentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// UpdateSlot moves the reservation to a new slot and bumps the reschedule
// email counter in the same write
func (r *Repository) UpdateSlot(ctx context.Context, paymentID string, slot domain.Slot) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Update("reservations").
		Set("slot_date", slot.Date).
		Set("slot_hour", slot.Hour).
		Set("reschedule_email_sent_count", squirrel.Expr("reschedule_email_sent_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_id": paymentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateSlot")
}

// ClaimReservationEmail flips reservation_email_sent from false to true in a
// single compare-and-set write. Returns false when the flag was already set,
// so concurrent dispatchers for one payment send at most one email.
func (r *Repository) ClaimReservationEmail(ctx context.Context, paymentID string) (bool, error) {
	return r.claimFlag(ctx, paymentID, "reservation_email_sent", "ClaimReservationEmail")
}

// ReleaseReservationEmail clears a claimed email flag after a failed send so
// the sweep job retries the delivery
func (r *Repository) ReleaseReservationEmail(ctx context.Context, paymentID string) error {
	return r.unsetFlag(ctx, paymentID, "reservation_email_sent", "ReleaseReservationEmail")
}

// ClaimCancelationEmail flips cancelation_email_sent from false to true,
// returning false when another dispatcher already holds the claim
func (r *Repository) ClaimCancelationEmail(ctx context.Context, paymentID string) (bool, error) {
	return r.claimFlag(ctx, paymentID, "cancelation_email_sent", "ClaimCancelationEmail")
}

// ReleaseCancelationEmail clears a claimed cancelation email flag after a
// failed send
func (r *Repository) ReleaseCancelationEmail(ctx context.Context, paymentID string) error {
	return r.unsetFlag(ctx, paymentID, "cancelation_email_sent", "ReleaseCancelationEmail")
}

// ClaimReceipt flips receipt_sent from false to true, returning false when
// another dispatcher already holds the claim
func (r *Repository) ClaimReceipt(ctx context.Context, paymentID string) (bool, error) {
	return r.claimFlag(ctx, paymentID, "receipt_sent", "ClaimReceipt")
}

// ReleaseReceipt clears a claimed receipt flag after a failed issuance
func (r *Repository) ReleaseReceipt(ctx context.Context, paymentID string) error {
	return r.unsetFlag(ctx, paymentID, "receipt_sent", "ReleaseReceipt")
}

// SetReceiptDocument records the issued receipt document id
func (r *Repository) SetReceiptDocument(ctx context.Context, paymentID string, documentID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Update("reservations").
		Set("reservation_id", documentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_id": paymentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetReceiptDocument - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetReceiptDocument")
}

// ListMissingCommunications returns succeeded, non-canceled reservations
// with an unsent confirmation email or receipt. The sweeper retries these.
func (r *Repository) ListMissingCommunications(ctx context.Context, limit uint64) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"payment_status": domain.StatusSucceeded}).
		Where(squirrel.Eq{"canceled": domain.CanceledByNone}).
		Where(squirrel.Or{
			squirrel.Eq{"reservation_email_sent": false},
			squirrel.Eq{"receipt_sent": false},
		}).
		OrderBy("created_at ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListMissingCommunications - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMissingCommunications - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// CountExpiredPrepared counts prepared reservations whose payment window
// closed before the cutoff. They no longer hold their slots; the count is
// surfaced for operator visibility only.
func (r *Repository) CountExpiredPrepared(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"payment_status": domain.StatusPrepared}).
		Where(squirrel.Eq{"canceled": domain.CanceledByNone}).
		Where(squirrel.Lt{"date_of_purchase": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountExpiredPrepared - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountExpiredPrepared - scan count: %w", ErrScanRow, err)
	}
	return count, nil
}

// claimFlag is the compare-and-set behind the Claim* methods: the update only
// matches while the flag is still false, and rows affected tells the caller
// whether this invocation won the claim.
func (r *Repository) claimFlag(ctx context.Context, paymentID, column, op string) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Update("reservations").
		Set(column, true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_id": paymentID, column: false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	return rowsAffected == 1, nil
}

func (r *Repository) unsetFlag(ctx context.Context, paymentID, column, op string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Update("reservations").
		Set(column, false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_id": paymentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, op)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var slotDate time.Time
	var reservationID sql.NullInt64
	var requirements sql.NullString
	var canceled string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.PaymentID,
		&res.TransactionID,
		&reservationID,
		&slotDate,
		&res.Slot.Hour,
		&res.DateOfPurchase,
		&res.NumberOfGuests,
		&res.NumberOfTubs,
		&res.Price,
		&res.Customer.FirstName,
		&res.Customer.LastName,
		&res.Customer.PhoneNumber,
		&res.Customer.Email,
		&res.Customer.Address,
		&res.Customer.City,
		&res.Customer.CountryCode,
		&res.Customer.PostCode,
		&res.Locale,
		&requirements,
		&res.PaymentStatus,
		&canceled,
		&res.Uncancelable,
		&res.Communication.ReservationEmailSent,
		&res.Communication.ReceiptSent,
		&res.Communication.RescheduleEmailSentCount,
		&res.Communication.CancelationEmailSent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Slot.Date = slotDate.Format(domain.DateFormat)
	res.Canceled = domain.CanceledBy(canceled)
	if reservationID.Valid {
		res.ReservationID = &reservationID.Int64
	}
	if requirements.Valid {
		res.Requirements = &requirements.String
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}
