package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"messagely/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	detailColumns      = []string{"id", "body", "sent_at", "read_at", "f_username", "f_first_name", "f_last_name", "f_phone", "t_username", "t_first_name", "t_last_name", "t_phone"}
	counterpartColumns = []string{"id", "body", "sent_at", "read_at", "username", "first_name", "last_name", "phone"}
)

func TestMessageRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewMessageRepository(mock)
	sentAt := time.Now()

	msg := &model.Message{FromUsername: "alice", ToUsername: "bob", Body: "hello", SentAt: sentAt}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO messages (from_username, to_username, body, sent_at)")).
		WithArgs("alice", "bob", "hello", sentAt).
		WillReturnRows(pgxmock.NewRows([]string{"id", "sent_at"}).AddRow(int64(7), sentAt))

	err := repo.Create(context.Background(), msg)

	require.NoError(t, err)
	assert.Equal(t, int64(7), msg.ID)
	assert.Nil(t, msg.ReadAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Create_UnknownRecipient(t *testing.T) {
	mock := newMockPool(t)
	repo := NewMessageRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO messages")).
		WithArgs("alice", "ghost", "hello", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

	err := repo.Create(context.Background(), &model.Message{FromUsername: "alice", ToUsername: "ghost", Body: "hello"})

	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestMessageRepository_FindByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewMessageRepository(mock)
	sentAt := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM messages AS m JOIN users AS f ON f.username = m.from_username JOIN users AS t ON t.username = m.to_username WHERE m.id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(detailColumns).
			AddRow(int64(1), "hello", sentAt, (*time.Time)(nil),
				"alice", "Alice", "A", "111",
				"bob", "Bob", "B", "222"))

	msg, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "hello", msg.Body)
	assert.Nil(t, msg.ReadAt)
	assert.Equal(t, model.UserProfile{Username: "alice", FirstName: "Alice", LastName: "A", Phone: "111"}, msg.FromUser)
	assert.Equal(t, model.UserProfile{Username: "bob", FirstName: "Bob", LastName: "B", Phone: "222"}, msg.ToUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_FindByID_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewMessageRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM messages AS m")).
		WithArgs(int64(999)).
		WillReturnError(pgx.ErrNoRows)

	msg, err := repo.FindByID(context.Background(), 999)

	assert.NoError(t, err)
	assert.Nil(t, msg)
}

func TestMessageRepository_MarkRead(t *testing.T) {
	mock := newMockPool(t)
	repo := NewMessageRepository(mock)
	at := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE messages SET read_at = COALESCE(read_at, $1) WHERE id = $2 RETURNING id, read_at")).
		WithArgs(at, int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "read_at"}).AddRow(int64(3), at))

	receipt, err := repo.MarkRead(context.Background(), 3, at)

	require.NoError(t, err)
	assert.Equal(t, &model.ReadReceipt{ID: 3, ReadAt: at}, receipt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkRead_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewMessageRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE messages")).
		WithArgs(pgxmock.AnyArg(), int64(999)).
		WillReturnError(pgx.ErrNoRows)

	receipt, err := repo.MarkRead(context.Background(), 999, time.Now())

	assert.NoError(t, err)
	assert.Nil(t, receipt)
}

func TestMessageRepository_FindFrom(t *testing.T) {
	mock := newMockPool(t)
	repo := NewMessageRepository(mock)
	sentAt := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("JOIN users AS u ON u.username = m.to_username WHERE m.from_username = $1 ORDER BY m.sent_at, m.id")).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(counterpartColumns).
			AddRow(int64(1), "hello", sentAt, (*time.Time)(nil), "bob", "Bob", "B", "222"))

	messages, err := repo.FindFrom(context.Background(), "alice")

	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "bob", messages[0].ToUser.Username)
	assert.Equal(t, "hello", messages[0].Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_FindTo(t *testing.T) {
	mock := newMockPool(t)
	repo := NewMessageRepository(mock)
	sentAt := time.Now()
	readAt := sentAt.Add(time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN users AS u ON u.username = m.from_username WHERE m.to_username = $1 ORDER BY m.sent_at, m.id")).
		WithArgs("bob").
		WillReturnRows(pgxmock.NewRows(counterpartColumns).
			AddRow(int64(1), "hello", sentAt, &readAt, "alice", "Alice", "A", "111").
			AddRow(int64(2), "again", sentAt.Add(time.Second), (*time.Time)(nil), "alice", "Alice", "A", "111"))

	messages, err := repo.FindTo(context.Background(), "bob")

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "alice", messages[0].FromUser.Username)
	require.NotNil(t, messages[0].ReadAt)
	assert.Nil(t, messages[1].ReadAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
