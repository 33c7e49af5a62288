package blackouts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	calendar *domain.BlackoutCalendar
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{calendar: domain.NewBlackoutCalendar()}
}

func (f *fakeRepo) GetCalendar(context.Context) (*domain.BlackoutCalendar, error) {
	return f.calendar, nil
}

func (f *fakeRepo) BlockDate(_ context.Context, dateKey string) error {
	f.calendar.Dates[dateKey] = struct{}{}
	return nil
}

func (f *fakeRepo) UnblockDate(_ context.Context, dateKey string) error {
	delete(f.calendar.Dates, dateKey)
	return nil
}

func (f *fakeRepo) BlockSlot(_ context.Context, slot domain.Slot) error {
	f.calendar.Slots[slot] = struct{}{}
	return nil
}

func (f *fakeRepo) UnblockSlot(_ context.Context, slot domain.Slot) error {
	delete(f.calendar.Slots, slot)
	return nil
}

func TestBlockAndUnblockDate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.BlockDate(context.Background(), "2026-06-15"))
	assert.True(t, repo.calendar.IsDateBlocked("2026-06-15"))

	require.NoError(t, svc.UnblockDate(context.Background(), "2026-06-15"))
	assert.False(t, repo.calendar.IsDateBlocked("2026-06-15"))
}

func TestBlockSlot_RejectsNonCanonicalHour(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	err := svc.BlockSlot(context.Background(), "2026-06-15", 13)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBlockDate_RejectsBadFormat(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	assert.ErrorIs(t, svc.BlockDate(context.Background(), "15/06/2026"), ErrInvalidInput)
	assert.ErrorIs(t, svc.UnblockSlot(context.Background(), "junk", 14), ErrInvalidInput)
}

func TestGetCalendar_SortedOutput(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.BlockDate(context.Background(), "2026-07-01"))
	require.NoError(t, svc.BlockDate(context.Background(), "2026-06-15"))
	require.NoError(t, svc.BlockSlot(context.Background(), "2026-06-20", 18))
	require.NoError(t, svc.BlockSlot(context.Background(), "2026-06-20", 10))

	resp, err := svc.GetCalendar(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-06-15", "2026-07-01"}, resp.Dates)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, 10, resp.Slots[0].Hour)
	assert.Equal(t, 18, resp.Slots[1].Hour)
}
