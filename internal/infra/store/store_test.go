package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"clubero-server/internal/domain/billing"
	"clubero-server/internal/domain/membership"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return New(db), mock
}

func samplePair() (*membership.Membership, *billing.Payment) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	m := &membership.Membership{
		ID: "0b7c6f1e-0000-4000-8000-000000000001", ClubID: "c1", ClubName: "Chess Club",
		Email: "a@x.com", TransactionID: "pi_123", MembershipFee: 100,
		Status: membership.StatusActive, JoinedAt: now,
	}
	p := &billing.Payment{
		ID: "0b7c6f1e-0000-4000-8000-000000000002", Amount: 100, CustomerEmail: "a@x.com",
		ClubID: "c1", ClubName: "Chess Club", TransactionID: "pi_123",
		PaymentStatus: billing.StatusPaid, PaidAt: now,
	}
	return m, p
}

func TestFindPaymentByTransactionID(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "amount", "customer_email", "club_id", "transaction_id", "payment_status"}).
		AddRow("p1", 100.0, "a@x.com", "c1", "pi_123", "paid")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments" WHERE transaction_id = $1`)).
		WillReturnRows(rows)

	p, err := s.FindPaymentByTransactionID(context.Background(), "pi_123")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 100.0, p.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPaymentByTransactionID_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments" WHERE transaction_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := s.FindPaymentByTransactionID(context.Background(), "pi_missing")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveMembership_Error(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "membership"`)).
		WillReturnError(errors.New("connection reset"))

	m, err := s.FindActiveMembership(context.Background(), "a@x.com", "c1")
	assert.Error(t, err)
	assert.Nil(t, m)
}

func TestCreateMembershipWithPayment(t *testing.T) {
	s, mock := newMockStore(t)
	m, p := samplePair()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "payments"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "membership"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.CreateMembershipWithPayment(context.Background(), m, p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMembershipWithPayment_DuplicateTransaction(t *testing.T) {
	s, mock := newMockStore(t)
	m, p := samplePair()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "payments"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := s.CreateMembershipWithPayment(context.Background(), m, p)
	assert.ErrorIs(t, err, billing.ErrDuplicateTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMembershipWithPayment_RollsBackPayment(t *testing.T) {
	s, mock := newMockStore(t)
	m, p := samplePair()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "payments"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "membership"`)).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.CreateMembershipWithPayment(context.Background(), m, p)
	require.Error(t, err)
	assert.NotErrorIs(t, err, billing.ErrDuplicateTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetUserRole_UnknownUser(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "role"=$1`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := s.SetUserRole(context.Background(), "missing", "admin")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPaymentByEmailAndClub(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments" WHERE customer_email = $1 AND club_id = $2 ORDER BY paid_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "club_id"}).AddRow("p1", "c1"))

	p, err := s.FindPaymentByEmailAndClub(context.Background(), "a@x.com", "c1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "p1", p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPaymentsByEmail_Empty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments" WHERE customer_email = $1 ORDER BY paid_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	payments, err := s.ListPaymentsByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotNil(t, payments)
	assert.Empty(t, payments)
}

func TestClubSummary(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "membership"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(750.0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments" WHERE club_id = $1 ORDER BY paid_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("p1").AddRow("p2"))

	sum, err := s.ClubSummary(context.Background(), "c1", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sum.ActiveMembers)
	assert.Equal(t, 750.0, sum.Revenue)
	assert.Len(t, sum.RecentPayments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
