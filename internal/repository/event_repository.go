package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/model"
	apperrors "eventhub/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, name, type, description, tags, start_date, end_date,
		location_link, attendance_capacity, ticket_pricing, ticket_price,
		draft, event_url, user_id, created_at, updated_at`

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	// FindByOwnerAndID 同時以 id 與 user_id 過濾，查無資料與非擁有者回傳同一個錯誤
	FindByOwnerAndID(ctx context.Context, userID, id int) (*model.Event, error)
	// FindBySlug 以 event_url 結尾比對 slug，不檢查擁有者與 draft
	FindBySlug(ctx context.Context, slug string) (*model.Event, error)
	ListByOwner(ctx context.Context, userID int, filter model.StatusFilter, now time.Time) ([]*model.Event, error)
	Update(ctx context.Context, userID, id int, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, userID, id int) error
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	var tagsText *string

	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Type,
		&event.Description,
		&tagsText,
		&event.StartDate,
		&event.EndDate,
		&event.LocationLink,
		&event.AttendanceCapacity,
		&event.TicketPricing,
		&event.TicketPrice,
		&event.Draft,
		&event.EventURL,
		&event.UserID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tagsText != nil {
		tags, err := model.DecodeTags(*tagsText)
		if err != nil {
			return nil, err
		}
		event.Tags = tags
	} else {
		event.Tags = model.Tags{}
	}

	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	tagsText, err := event.Tags.Encode()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO events (name, type, description, tags, start_date, end_date,
			location_link, attendance_capacity, ticket_pricing, ticket_price,
			draft, event_url, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s
	`, eventColumns)

	row := r.pool.QueryRow(ctx, query,
		event.Name,
		event.Type,
		event.Description,
		tagsText,
		event.StartDate,
		event.EndDate,
		event.LocationLink,
		event.AttendanceCapacity,
		event.TicketPricing,
		event.TicketPrice,
		event.Draft,
		event.EventURL,
		event.UserID,
	)

	return scanEvent(row)
}

func (r *EventRepositoryImpl) FindByOwnerAndID(ctx context.Context, userID, id int) (*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE id = $1 AND user_id = $2
	`, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE event_url LIKE '%%' || $1
		ORDER BY id
		LIMIT 1
	`, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) ListByOwner(ctx context.Context, userID int, filter model.StatusFilter, now time.Time) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE user_id = $1
	`, eventColumns)
	args := []interface{}{userID}

	switch filter {
	case model.StatusFilterCompleted:
		query += ` AND end_date < $2`
		args = append(args, now)
	case model.StatusFilterUpcoming:
		query += ` AND end_date >= $2`
		args = append(args, now)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *EventRepositoryImpl) Update(ctx context.Context, userID, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Name != nil {
		appendSet("name", *params.Name)
	}
	if params.Type != nil {
		appendSet("type", *params.Type)
	}
	if params.Description != nil {
		appendSet("description", *params.Description)
	}
	if params.Tags != nil {
		tagsText, err := params.Tags.Encode()
		if err != nil {
			return nil, err
		}
		appendSet("tags", tagsText)
	}
	if params.StartDate != nil {
		appendSet("start_date", *params.StartDate)
	}
	if params.EndDate != nil {
		appendSet("end_date", *params.EndDate)
	}
	if params.LocationLink != nil {
		appendSet("location_link", *params.LocationLink)
	}
	if params.AttendanceCapacity != nil {
		appendSet("attendance_capacity", *params.AttendanceCapacity)
	}
	if params.TicketPricing != nil {
		appendSet("ticket_pricing", *params.TicketPricing)
	}
	if params.TicketPrice != nil {
		appendSet("ticket_price", *params.TicketPrice)
	}
	if params.Status != nil {
		appendSet("status", *params.Status)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id and owner
	args = append(args, id, userID)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, argPos+1, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, userID, id int) error {
	query := `
		DELETE FROM events
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}
