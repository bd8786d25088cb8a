package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CapacityService/pkg/psqlbuilder"
)

const tableName = "booking_sessions"

var sessionColumns = []string{
	"id",
	"location_id",
	"state",
	"week_anchor",
	"selection_capacity_id",
	"selection_day_of_week",
	"selection_time_slot",
	"selection_bucket_start",
	"selection_bucket_end",
	"selection_bucket_label",
	"selection_resolved_at",
	"blood_group_id",
	"component_type_id",
	"notes",
	"is_urgent",
	"last_error",
	"booking_ref",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сессиями бронирования
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория сессий.
// loc часовой пояс локации, в котором восстанавливаются даты сессии.
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	return &Repository{db: db, loc: loc}
}

// Create сохраняет новую сессию
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, s *domain.BookingSession) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sel := selectionColumns(s.Selection)
	query, args, err := psqlbuilder.Insert(tableName).
		Columns(sessionColumns[:17]...).
		Values(
			s.ID,
			s.LocationID,
			string(s.State),
			s.WeekAnchor.Format(domain.DateFormat),
			sel.capacityID,
			sel.dayOfWeek,
			sel.timeSlot,
			sel.bucketStart,
			sel.bucketEnd,
			sel.bucketLabel,
			sel.resolvedAt,
			s.Details.BloodGroupID,
			s.Details.ComponentTypeID,
			s.Details.Notes,
			s.Details.IsUrgent,
			s.LastError,
			s.BookingRef,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return nil
}

// GetByID получает сессию по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSession(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	return s, nil
}

// Update сохраняет изменяемые поля сессии
func (r *Repository) Update(ctx context.Context, s *domain.BookingSession) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sel := selectionColumns(s.Selection)
	query, args, err := psqlbuilder.Update(tableName).
		Set("state", string(s.State)).
		Set("week_anchor", s.WeekAnchor.Format(domain.DateFormat)).
		Set("selection_capacity_id", sel.capacityID).
		Set("selection_day_of_week", sel.dayOfWeek).
		Set("selection_time_slot", sel.timeSlot).
		Set("selection_bucket_start", sel.bucketStart).
		Set("selection_bucket_end", sel.bucketEnd).
		Set("selection_bucket_label", sel.bucketLabel).
		Set("selection_resolved_at", sel.resolvedAt).
		Set("blood_group_id", s.Details.BloodGroupID).
		Set("component_type_id", s.Details.ComponentTypeID).
		Set("notes", s.Details.Notes).
		Set("is_urgent", s.Details.IsUrgent).
		Set("last_error", s.LastError).
		Set("booking_ref", s.BookingRef).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	s.UpdatedAt = updatedAt.Time
	return nil
}

// DeleteFinishedBefore удаляет завершенные сессии, не менявшиеся с before
func (r *Repository) DeleteFinishedBefore(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"state": []string{string(domain.SessionConfirmed), string(domain.SessionCancelled)}}).
		Where(squirrel.Lt{"updated_at": before}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFinishedBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFinishedBefore - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFinishedBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSession(row rowScanner) (*domain.BookingSession, error) {
	var (
		s           domain.BookingSession
		state       string
		weekAnchor  time.Time
		capacityID  sql.NullString
		dayOfWeek   sql.NullInt64
		timeSlot    sql.NullString
		bucketStart sql.NullInt64
		bucketEnd   sql.NullInt64
		bucketLabel sql.NullString
		resolvedAt  sql.NullTime
		bloodGroup  sql.NullString
		component   sql.NullString
		notes       sql.NullString
		lastError   sql.NullString
		bookingRef  sql.NullString
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.LocationID,
		&state,
		&weekAnchor,
		&capacityID,
		&dayOfWeek,
		&timeSlot,
		&bucketStart,
		&bucketEnd,
		&bucketLabel,
		&resolvedAt,
		&bloodGroup,
		&component,
		&notes,
		&s.Details.IsUrgent,
		&lastError,
		&bookingRef,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.State = domain.SessionState(state)
	// DATE приходит полночью UTC; восстанавливаем полночь в часовом поясе локации
	y, m, d := weekAnchor.Date()
	s.WeekAnchor = time.Date(y, m, d, 0, 0, 0, 0, r.loc)

	if capacityID.Valid {
		s.Selection = &domain.Selection{
			CapacitySlotID: capacityID.String,
			DayOfWeek:      int(dayOfWeek.Int64),
			TimeSlot:       domain.TimeSlot(timeSlot.String),
			HourBucket: domain.HourBucket{
				Label:     bucketLabel.String,
				StartHour: int(bucketStart.Int64),
				EndHour:   int(bucketEnd.Int64),
			},
			ResolvedDate: resolvedAt.Time.In(r.loc),
		}
	}

	s.Details.BloodGroupID = nullString(bloodGroup)
	s.Details.ComponentTypeID = nullString(component)
	s.Details.Notes = nullString(notes)
	s.LastError = nullString(lastError)
	s.BookingRef = nullString(bookingRef)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// selectionRow колонки выбора; nil-значения пишутся как NULL
type selectionRow struct {
	capacityID  *string
	dayOfWeek   *int
	timeSlot    *string
	bucketStart *int
	bucketEnd   *int
	bucketLabel *string
	resolvedAt  *time.Time
}

func selectionColumns(sel *domain.Selection) selectionRow {
	if sel == nil {
		return selectionRow{}
	}
	timeSlot := string(sel.TimeSlot)
	return selectionRow{
		capacityID:  &sel.CapacitySlotID,
		dayOfWeek:   &sel.DayOfWeek,
		timeSlot:    &timeSlot,
		bucketStart: &sel.HourBucket.StartHour,
		bucketEnd:   &sel.HourBucket.EndHour,
		bucketLabel: &sel.HourBucket.Label,
		resolvedAt:  &sel.ResolvedDate,
	}
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
