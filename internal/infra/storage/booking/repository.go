package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/pkg/dbmetrics"
	"github.com/m04kA/PrismCRM/pkg/psqlbuilder"
	"github.com/m04kA/PrismCRM/pkg/types"
)

const uniqueViolation = "23505"

// bookingColumns колонки бронирования вместе с контактами лида
var bookingColumns = []string{
	"b.id",
	"b.lead_id",
	"b.building",
	"b.tour_date",
	"b.tour_time",
	"b.status",
	"l.prospect_name",
	"l.email",
	"l.phone",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями туров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение частичного уникального индекса по слоту возвращается как ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"lead_id",
			"building",
			"tour_date",
			"tour_time",
			"status",
		).
		Values(
			booking.LeadID,
			booking.Building,
			booking.TourDate.Format(domain.DateFormat),
			booking.TourTime,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if isUniqueViolation(err) {
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().Where(squirrel.Eq{"b.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру, отсортированные по дате и времени тура
// filter.ForUpdate блокирует найденные строки, если выполняется внутри транзакции
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter, filter.ForUpdate && dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// TakenTimes возвращает время активных туров в здании на дату
func (r *Repository) TakenTimes(ctx context.Context, building string, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildTakenQuery(building, date)
	if err != nil {
		return nil, fmt.Errorf("%w: TakenTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TakenTimes - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: TakenTimes - scan tour_time: %w", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TakenTimes - rows error: %w", ErrScanRow, err)
	}

	return times, nil
}

// UpdateStatus обновляет статус бронирования
// Для отмены проставляет cancelled_at
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", at)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Stats считает агрегаты для дашборда
// Предстоящие: Scheduled с датой тура не раньше today
func (r *Repository) Stats(ctx context.Context, today time.Time) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildStatsQuery(today)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Upcoming,
		&stats.Cancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan counts: %w", ErrScanRow, err)
	}

	return &stats, nil
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("leads l ON l.id = b.lead_id")
}

func buildListQuery(filter domain.BookingsFilter, forUpdate bool) (string, []interface{}, error) {
	selectBuilder := selectBookings()

	if filter.Building != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.building": *filter.Building})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.tour_date": filter.Date.Format(domain.DateFormat)})
	}

	// Конкретный статус важнее флага отменённых
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": domain.StatusCancelled})
	}

	selectBuilder = selectBuilder.OrderBy("b.tour_date ASC", "b.tour_time ASC", "b.id ASC")

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	return selectBuilder.ToSql()
}

func buildTakenQuery(building string, date time.Time) (string, []interface{}, error) {
	return psqlbuilder.Select("tour_time").
		From("bookings").
		Where(squirrel.Eq{"building": building}).
		Where(squirrel.Eq{"tour_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("tour_time ASC").
		ToSql()
}

func buildStatsQuery(today time.Time) (string, []interface{}, error) {
	return psqlbuilder.Select("COUNT(*)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ? AND tour_date >= ?)",
			domain.StatusScheduled, today.Format(domain.DateFormat))).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusCancelled)).
		From("bookings").
		ToSql()
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.LeadID,
		&booking.Building,
		&booking.TourDate,
		&booking.TourTime,
		&booking.Status,
		&booking.ProspectName,
		&booking.Email,
		&booking.Phone,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.TourDate = domain.DateOnly(booking.TourDate)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
