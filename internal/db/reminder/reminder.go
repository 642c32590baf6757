package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	e "voiceremind/internal/core/domain/errors"
	"voiceremind/internal/core/domain/reminder"
	"voiceremind/internal/core/domain/user"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const reminderColumns = "id, user_id, event_time, event_content, is_sent, created_at"

type PgxReminderRepository struct {
	db *pgxpool.Pool
}

func NewPgxReminderRepository(db *pgxpool.Pool) *PgxReminderRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxReminderRepository{db: db}
}

func (r *PgxReminderRepository) Create(
	ctx context.Context,
	input reminder.CreateInput,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		fmt.Sprintf(
			`INSERT INTO reminders (user_id, event_time, event_content, is_sent, created_at)
			 VALUES ($1, $2, $3, FALSE, $4)
			 RETURNING %s`,
			reminderColumns,
		),
		string(input.UserID),
		input.EventTime,
		input.EventContent,
		input.CreatedAt,
	)
	return decodeReminder(row)
}

func (r *PgxReminderRepository) FindUnsent(
	ctx context.Context,
	input reminder.FindUnsentInput,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		fmt.Sprintf(
			`SELECT %s FROM reminders
			 WHERE user_id = $1 AND event_time = $2 AND event_content = $3 AND is_sent = FALSE
			 ORDER BY id
			 LIMIT 1`,
			reminderColumns,
		),
		string(input.UserID),
		input.EventTime,
		input.EventContent,
	)
	rem, err = decodeReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) MarkSent(
	ctx context.Context,
	id reminder.ID,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		fmt.Sprintf(
			`UPDATE reminders SET is_sent = TRUE
			 WHERE id = $1 AND is_sent = FALSE
			 RETURNING %s`,
			reminderColumns,
		),
		int64(id),
	)
	rem, err = decodeReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) Read(
	ctx context.Context,
	options reminder.ReadOptions,
) (reminders []reminder.Reminder, err error) {
	query, args := buildReadQuery(options)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		rem, err := decodeReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func buildReadQuery(options reminder.ReadOptions) (string, []interface{}) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if options.UserIDEquals.IsPresent {
		args = append(args, string(options.UserIDEquals.Value))
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if options.IsSentEquals.IsPresent {
		args = append(args, options.IsSentEquals.Value)
		conditions = append(conditions, fmt.Sprintf("is_sent = $%d", len(args)))
	}
	if options.EventTimeAfter.IsPresent {
		args = append(args, options.EventTimeAfter.Value)
		conditions = append(conditions, fmt.Sprintf("event_time > $%d", len(args)))
	}

	var query strings.Builder
	query.WriteString(fmt.Sprintf("SELECT %s FROM reminders", reminderColumns))
	if len(conditions) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(conditions, " AND "))
	}
	switch options.OrderBy {
	case reminder.OrderByEventTimeAsc:
		query.WriteString(" ORDER BY event_time, id")
	case reminder.OrderByEventTimeDesc:
		query.WriteString(" ORDER BY event_time DESC, id DESC")
	default:
		query.WriteString(" ORDER BY id")
	}
	if options.Limit.IsPresent {
		args = append(args, int64(options.Limit.Value))
		query.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	return query.String(), args
}

func decodeReminder(row pgx.Row) (rem reminder.Reminder, err error) {
	var id int64
	var userID string
	var eventTime time.Time
	var createdAt time.Time
	err = row.Scan(&id, &userID, &eventTime, &rem.EventContent, &rem.IsSent, &createdAt)
	if err != nil {
		return rem, err
	}
	rem.ID = reminder.ID(id)
	rem.UserID = user.ID(userID)
	rem.EventTime = eventTime.UTC()
	rem.CreatedAt = createdAt.UTC()
	return rem, nil
}
