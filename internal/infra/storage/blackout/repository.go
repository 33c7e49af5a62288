package blackout

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/pkg/txmanager"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// DBExecutor is the database handle the repository runs its queries on
type DBExecutor = txmanager.Executor

// Repository persists the admin blackout calendar: whole blocked dates and
// individually blocked slots
type Repository struct {
	db DBExecutor
}

// NewRepository creates a blackout calendar repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCalendar loads the full blackout calendar. An empty database yields an
// empty calendar, which blocks nothing.
func (r *Repository) GetCalendar(ctx context.Context) (*domain.BlackoutCalendar, error) {
	executor := txmanager.GetExecutor(ctx, r.db)
	calendar := domain.NewBlackoutCalendar()

	query, args, err := psql.Select("blocked_date").From("blackout_dates").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCalendar - build dates query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCalendar - query dates: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: GetCalendar - scan date: %w", ErrScanRow, err)
		}
		calendar.Dates[day.Format(domain.DateFormat)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCalendar - dates rows error: %w", ErrScanRow, err)
	}

	query, args, err = psql.Select("blocked_date", "blocked_hour").From("blackout_slots").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCalendar - build slots query: %v", ErrBuildQuery, err)
	}

	slotRows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCalendar - query slots: %w", ErrExecQuery, err)
	}
	defer slotRows.Close()

	for slotRows.Next() {
		var day time.Time
		var hour int
		if err := slotRows.Scan(&day, &hour); err != nil {
			return nil, fmt.Errorf("%w: GetCalendar - scan slot: %w", ErrScanRow, err)
		}
		calendar.Slots[domain.Slot{Date: day.Format(domain.DateFormat), Hour: hour}] = struct{}{}
	}
	if err := slotRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCalendar - slots rows error: %w", ErrScanRow, err)
	}

	return calendar, nil
}

// BlockDate blocks a whole date. Blocking an already blocked date is a no-op.
func (r *Repository) BlockDate(ctx context.Context, dateKey string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Insert("blackout_dates").
		Columns("blocked_date").
		Values(dateKey).
		Suffix("ON CONFLICT (blocked_date) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: BlockDate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: BlockDate - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// UnblockDate removes a whole-date block
func (r *Repository) UnblockDate(ctx context.Context, dateKey string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Delete("blackout_dates").
		Where(squirrel.Eq{"blocked_date": dateKey}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UnblockDate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UnblockDate - execute delete: %w", ErrExecQuery, err)
	}
	return nil
}

// BlockSlot blocks one date+hour slot
func (r *Repository) BlockSlot(ctx context.Context, slot domain.Slot) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Insert("blackout_slots").
		Columns("blocked_date", "blocked_hour").
		Values(slot.Date, slot.Hour).
		Suffix("ON CONFLICT (blocked_date, blocked_hour) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: BlockSlot - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: BlockSlot - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// UnblockSlot removes a slot block
func (r *Repository) UnblockSlot(ctx context.Context, slot domain.Slot) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psql.Delete("blackout_slots").
		Where(squirrel.Eq{"blocked_date": slot.Date, "blocked_hour": slot.Hour}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UnblockSlot - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UnblockSlot - execute delete: %w", ErrExecQuery, err)
	}
	return nil
}
