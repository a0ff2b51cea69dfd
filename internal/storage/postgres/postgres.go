package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking_service/internal/config"
	"booking_service/internal/models"
	"booking_service/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type Repo struct {
	pool *pgxpool.Pool
}

// Connect создает подключение к базе данных и возвращает репозиторий.
func Connect(ctx context.Context, cfg *config.Config) (*Repo, error) {
	const op = "storage.postgres.Connect"

	poolConfig, err := pgxpool.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse config: %w", op, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create pool: %w", op, err)
	}

	return &Repo{pool: pool}, nil
}

func (r *Repo) CreateClient(ctx context.Context, client models.Client) (int64, error) {
	const op = "storage.postgres.CreateClient"

	var id int64
	err := r.pool.QueryRow(
		ctx,
		`INSERT INTO clients (first_name, last_name, email, phone) VALUES ($1, $2, $3, $4) RETURNING id;`,
		client.FirstName,
		client.LastName,
		client.Email,
		client.Phone,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrClientExists
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *Repo) ClientByEmail(ctx context.Context, email string) (models.Client, error) {
	const op = "storage.postgres.ClientByEmail"

	var c models.Client
	err := r.pool.QueryRow(
		ctx,
		`SELECT id, first_name, last_name, email, phone FROM clients WHERE email = $1`,
		email,
	).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Client{}, storage.ErrClientNotFound
		}
		return models.Client{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (r *Repo) Clients(ctx context.Context) ([]models.Client, error) {
	const op = "storage.postgres.Clients"

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, first_name, last_name, email, phone FROM clients ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		clients = append(clients, c)
	}

	return clients, nil
}

// CreateBooking relies on the unique index over (barber, booking_date,
// slot_time): the insert and the conflict check are one atomic statement.
func (r *Repo) CreateBooking(ctx context.Context, booking models.Booking) error {
	const op = "storage.postgres.CreateBooking"

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO bookings (id, client_email, barber, booking_date, slot_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		booking.ID,
		booking.ClientEmail,
		booking.Barber,
		booking.Date,
		booking.Time,
		booking.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrSlotTaken
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Bookings возвращает либо все брони, либо отфильтрованные по барберу и дате.
func (r *Repo) Bookings(ctx context.Context, barber, date string) ([]models.Booking, error) {
	const op = "storage.postgres.Bookings"

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, client_email, barber, booking_date, slot_time, status
		FROM bookings
		WHERE ($1 = '' OR barber = $1) AND ($2 = '' OR booking_date = $2)
		ORDER BY booking_date, slot_time`,
		barber,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.ClientEmail, &b.Barber, &b.Date, &b.Time, &b.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		bookings = append(bookings, b)
	}

	return bookings, nil
}

// Close закрывает соединение с базой данных.
func (r *Repo) Close() {
	r.pool.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// dsn формирует конфигурацию базы данных.
func dsn(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s database=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)
}
