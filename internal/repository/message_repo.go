package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"messagely/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// MessageRepository is the message store
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	FindByID(ctx context.Context, id int64) (*model.MessageDetail, error)
	MarkRead(ctx context.Context, id int64, at time.Time) (*model.ReadReceipt, error)
	FindFrom(ctx context.Context, username string) ([]model.SentMessage, error)
	FindTo(ctx context.Context, username string) ([]model.ReceivedMessage, error)
}

type messageRepository struct {
	db DBTX
	qb sq.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db DBTX) MessageRepository {
	return &messageRepository{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts msg and fills in its id and sent_at
func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	sql := `INSERT INTO messages (from_username, to_username, body, sent_at)
            VALUES ($1, $2, $3, $4) RETURNING id, sent_at`
	err := r.db.QueryRow(ctx, sql, msg.FromUsername, msg.ToUsername, msg.Body, msg.SentAt).Scan(&msg.ID, &msg.SentAt)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return ErrUnknownUser
		}
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// FindByID retrieves a message joined with both participants
func (r *messageRepository) FindByID(ctx context.Context, id int64) (*model.MessageDetail, error) {
	query, args, err := r.qb.
		Select(
			"m.id", "m.body", "m.sent_at", "m.read_at",
			"f.username", "f.first_name", "f.last_name", "f.phone",
			"t.username", "t.first_name", "t.last_name", "t.phone",
		).
		From("messages AS m").
		Join("users AS f ON f.username = m.from_username").
		Join("users AS t ON t.username = m.to_username").
		Where(sq.Eq{"m.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build message query: %w", err)
	}

	d := &model.MessageDetail{}
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&d.ID, &d.Body, &d.SentAt, &d.ReadAt,
		&d.FromUser.Username, &d.FromUser.FirstName, &d.FromUser.LastName, &d.FromUser.Phone,
		&d.ToUser.Username, &d.ToUser.FirstName, &d.ToUser.LastName, &d.ToUser.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find message by ID: %w", err)
	}
	return d, nil
}

// MarkRead sets read_at once; later calls keep and return the first timestamp
func (r *messageRepository) MarkRead(ctx context.Context, id int64, at time.Time) (*model.ReadReceipt, error) {
	sql := `UPDATE messages SET read_at = COALESCE(read_at, $1) WHERE id = $2 RETURNING id, read_at`
	receipt := &model.ReadReceipt{}
	err := r.db.QueryRow(ctx, sql, at, id).Scan(&receipt.ID, &receipt.ReadAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to mark message read: %w", err)
	}
	return receipt, nil
}

// counterpartQuery selects messages on one side of a user joined with the other side's profile
func (r *messageRepository) counterpartQuery(ownColumn, otherColumn, username string) (string, []interface{}, error) {
	return r.qb.
		Select("m.id", "m.body", "m.sent_at", "m.read_at", "u.username", "u.first_name", "u.last_name", "u.phone").
		From("messages AS m").
		Join(fmt.Sprintf("users AS u ON u.username = m.%s", otherColumn)).
		Where(sq.Eq{"m." + ownColumn: username}).
		OrderBy("m.sent_at", "m.id").
		ToSql()
}

// FindFrom lists messages sent by username
func (r *messageRepository) FindFrom(ctx context.Context, username string) ([]model.SentMessage, error) {
	query, args, err := r.counterpartQuery("from_username", "to_username", username)
	if err != nil {
		return nil, fmt.Errorf("failed to build outbox query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages from user: %w", err)
	}
	defer rows.Close()

	messages := []model.SentMessage{}
	for rows.Next() {
		var m model.SentMessage
		if err := rows.Scan(
			&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
			&m.ToUser.Username, &m.ToUser.FirstName, &m.ToUser.LastName, &m.ToUser.Phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sent message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sent message rows: %w", err)
	}
	return messages, nil
}

// FindTo lists messages received by username
func (r *messageRepository) FindTo(ctx context.Context, username string) ([]model.ReceivedMessage, error) {
	query, args, err := r.counterpartQuery("to_username", "from_username", username)
	if err != nil {
		return nil, fmt.Errorf("failed to build inbox query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages to user: %w", err)
	}
	defer rows.Close()

	messages := []model.ReceivedMessage{}
	for rows.Next() {
		var m model.ReceivedMessage
		if err := rows.Scan(
			&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
			&m.FromUser.Username, &m.FromUser.FirstName, &m.FromUser.LastName, &m.FromUser.Phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan received message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating received message rows: %w", err)
	}
	return messages, nil
}
