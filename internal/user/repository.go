package user

import (
	"context"
	"database/sql"
	"errors"

	"distributor-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	MarkVerified(ctx context.Context, userID uint) error
	ClearOTP(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const uniqueViolation = "23505"

// translateUnique turns a Postgres unique-constraint violation into the
// field-specific conflict error.
func translateUnique(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}

	switch pqErr.Constraint {
	case "users_email_key":
		return ErrEmailExists
	case "users_name_key":
		return ErrNameExists
	}
	return err
}

func (r *repository) Create(ctx context.Context, u *User) error {
	log := logger.FromCtx(ctx)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (
			name, email, password, role, is_verified,
			verification_otp, otp_expires, business_name, gst_number
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at
	`,
		u.Name,
		u.Email,
		u.Password,
		u.Role,
		u.IsVerified,
		u.VerificationOTP,
		u.OTPExpires,
		u.BusinessName,
		u.GSTNumber,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", u.Email),
			zap.Error(err),
		)
		return translateUnique(err)
	}

	return nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, role, is_verified,
		       verification_otp, otp_expires, business_name, gst_number,
		       created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.Role,
		&u.IsVerified,
		&u.VerificationOTP,
		&u.OTPExpires,
		&u.BusinessName,
		&u.GSTNumber,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// MarkVerified flips the verification flag and consumes the code in one write.
func (r *repository) MarkVerified(ctx context.Context, userID uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET is_verified = TRUE,
		    verification_otp = NULL,
		    otp_expires = NULL,
		    updated_at = NOW()
		WHERE id = $1
	`, userID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) ClearOTP(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET verification_otp = NULL,
		    otp_expires = NULL,
		    updated_at = NOW()
		WHERE id = $1
	`, userID)
	return err
}
