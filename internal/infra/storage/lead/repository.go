package lead

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/pkg/dbmetrics"
	"github.com/m04kA/PrismCRM/pkg/psqlbuilder"
)

var leadColumns = []string{
	"id",
	"prospect_name",
	"email",
	"phone",
	"source",
	"integration_source",
	"property_name",
	"move_in_date",
	"promotion",
	"status",
	"is_converted",
	"raw_payload",
	"sent_at_raw",
	"created_at",
}

// Repository репозиторий для работы с лидами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лидов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового лида
func (r *Repository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// jsonb принимает текст, []byte драйвер отправил бы как bytea
	var rawPayload interface{}
	if len(lead.RawPayload) > 0 {
		rawPayload = string(lead.RawPayload)
	}

	query, args, err := psqlbuilder.Insert("leads").
		Columns(
			"prospect_name",
			"email",
			"phone",
			"source",
			"integration_source",
			"property_name",
			"move_in_date",
			"promotion",
			"status",
			"is_converted",
			"raw_payload",
			"sent_at_raw",
		).
		Values(
			lead.ProspectName,
			lead.Email,
			lead.Phone,
			lead.Source,
			lead.IntegrationSource,
			lead.PropertyName,
			lead.MoveInDate,
			lead.Promotion,
			lead.Status,
			lead.IsConverted,
			rawPayload,
			lead.SentAtRaw,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&lead.ID, &lead.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return lead, nil
}

// GetByID получает лида по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(leadColumns...).
		From("leads").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	lead, err := scanLead(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lead: %w", ErrScanRow, err)
	}

	return lead, nil
}

// FindByContact ищет самого раннего лида с тем же email или телефоном
// Пустой телефон в поиске не участвует. Внутри транзакции строка блокируется.
func (r *Repository) FindByContact(ctx context.Context, email, phone string) (*domain.Lead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFindByContactQuery(email, phone, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: FindByContact - build select query: %v", ErrBuildQuery, err)
	}

	lead, err := scanLead(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByContact - scan lead: %w", ErrScanRow, err)
	}

	return lead, nil
}

// List получает страницу лидов по фильтру
func (r *Repository) List(ctx context.Context, q domain.LeadsQuery) ([]*domain.Lead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(q)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return leads, nil
}

// Count считает лидов по тем же фильтрам, что и List, без пагинации
func (r *Repository) Count(ctx context.Context, q domain.LeadsQuery) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildCountQuery(q)
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan total: %w", ErrScanRow, err)
	}

	return total, nil
}

// UpdateStatus обновляет статус лида и флаг конверсии
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus, isConverted bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("leads").
		Set("status", status).
		Set("is_converted", isConverted).
		Where(squirrel.Eq{"id": id}).
		ToSql()

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
		return ErrLeadNotFound
	}

	return nil
}

// Stats считает агрегаты для дашборда
func (r *Repository) Stats(ctx context.Context) (*domain.LeadStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildStatsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.LeadStats
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&stats.Total, &stats.New, &stats.Converted); err != nil {
		return nil, fmt.Errorf("%w: Stats - scan counts: %w", ErrScanRow, err)
	}

	return &stats, nil
}

func buildFindByContactQuery(email, phone string, forUpdate bool) (string, []interface{}, error) {
	match := squirrel.Or{squirrel.Expr("lower(email) = ?", email)}
	if phone != "" {
		match = append(match, squirrel.Eq{"phone": phone})
	}

	selectBuilder := psqlbuilder.Select(leadColumns...).
		From("leads").
		Where(match).
		OrderBy("id ASC").
		Limit(1)

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder.ToSql()
}

func applyFilters(sb squirrel.SelectBuilder, q domain.LeadsQuery) squirrel.SelectBuilder {
	if q.Status != nil {
		sb = sb.Where(squirrel.Eq{"status": *q.Status})
	}
	if q.Search != nil {
		sb = sb.Where(squirrel.Or{
			psqlbuilder.ILike("prospect_name", *q.Search),
			psqlbuilder.ILike("email", *q.Search),
		})
	}
	if q.Source != nil {
		sb = sb.Where(psqlbuilder.ILike("source", *q.Source))
	}
	if q.StartDate != nil {
		sb = sb.Where(squirrel.GtOrEq{"created_at": *q.StartDate})
	}
	// Конец периода включительно: всё, что раньше следующего дня
	if q.EndDate != nil {
		sb = sb.Where(squirrel.Lt{"created_at": q.EndDate.AddDate(0, 0, 1)})
	}
	return sb
}

func buildListQuery(q domain.LeadsQuery) (string, []interface{}, error) {
	sb := applyFilters(psqlbuilder.Select(leadColumns...).From("leads"), q).
		OrderBy(orderBy(q.SortBy, q.SortDesc)).
		Offset(q.Skip).
		Limit(q.Limit)

	return sb.ToSql()
}

func buildCountQuery(q domain.LeadsQuery) (string, []interface{}, error) {
	return applyFilters(psqlbuilder.Select("COUNT(*)").From("leads"), q).ToSql()
}

func buildStatsQuery() (string, []interface{}, error) {
	return psqlbuilder.Select("COUNT(*)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.LeadStatusNew)).
		Column("COUNT(*) FILTER (WHERE is_converted)").
		From("leads").
		ToSql()
}

// orderBy пропускает только колонки из белого списка
// Неизвестная колонка сортируется как id DESC
func orderBy(column string, desc bool) string {
	if column == "" {
		column = domain.DefaultLeadSort
	}
	if _, ok := domain.LeadSortColumns[column]; !ok {
		return domain.FallbackLeadSort + " DESC"
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*domain.Lead, error) {
	var lead domain.Lead

	err := row.Scan(
		&lead.ID,
		&lead.ProspectName,
		&lead.Email,
		&lead.Phone,
		&lead.Source,
		&lead.IntegrationSource,
		&lead.PropertyName,
		&lead.MoveInDate,
		&lead.Promotion,
		&lead.Status,
		&lead.IsConverted,
		&lead.RawPayload,
		&lead.SentAtRaw,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &lead, nil
}
