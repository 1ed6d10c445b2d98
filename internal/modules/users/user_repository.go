package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charge-finder/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines methods for interacting with user storage.
type RepositoryInterface interface {
	Create(ctx context.Context, user *models.User, passwordHash string) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, data models.UpdateProfileRequest) (*models.User, error)

	GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error)
	UpsertPreferences(ctx context.Context, userID string, data models.UpdatePreferencesRequest) (*models.UserPreferences, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// translatePgError maps constraint violations onto the service error
// taxonomy: unique violations become conflicts, not-null violations become
// validation errors.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return models.ErrConflict
		case "23502":
			return models.ErrValidation
		}
	}
	return err
}

func (r *Repository) Create(ctx context.Context, user *models.User, passwordHash string) (*models.User, error) {
	query := `
        INSERT INTO users (name, email, password_hash, phone)
        VALUES ($1, $2, $3, $4)
        RETURNING id, is_admin, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, passwordHash, user.Phone,
	).Scan(&user.ID, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if translated := translatePgError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("repository.CreateUser: %w", err)
	}
	return user, nil
}

func (r *Repository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, phone, is_admin, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return user, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, password_hash, phone, is_admin, created_at, updated_at FROM users WHERE email = $1`
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Phone, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, userID string, data models.UpdateProfileRequest) (*models.User, error) {
	var setClauses []string
	var args []interface{}
	argIdx := 1

	if data.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *data.Name)
		argIdx++
	}
	if data.Phone != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", argIdx))
		args = append(args, *data.Phone)
		argIdx++
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, userID)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, userID)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING id, name, email, phone, is_admin, created_at, updated_at`,
		strings.Join(setClauses, ", "), argIdx)

	updatedUser := &models.User{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&updatedUser.ID, &updatedUser.Name, &updatedUser.Email, &updatedUser.Phone,
		&updatedUser.IsAdmin, &updatedUser.CreatedAt, &updatedUser.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		if translated := translatePgError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("repository.UpdateProfile: %w", err)
	}
	return updatedUser, nil
}

func (r *Repository) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	prefs := &models.UserPreferences{}
	query := `SELECT user_id, food_preference, min_rating, silent_mode, updated_at FROM user_preferences WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&prefs.UserID, &prefs.FoodPreference, &prefs.MinRating, &prefs.SilentMode, &prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.GetPreferences: %w", err)
	}
	return prefs, nil
}

// UpsertPreferences writes the single preferences row for a user, creating it
// on first write. Unset fields keep their previous (or default) values.
func (r *Repository) UpsertPreferences(ctx context.Context, userID string, data models.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	prefs := &models.UserPreferences{}
	query := `
        INSERT INTO user_preferences (user_id, food_preference, min_rating, silent_mode, updated_at)
        VALUES ($1, COALESCE($2, ''), COALESCE($3, 0), COALESCE($4, FALSE), NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            food_preference = COALESCE($2, user_preferences.food_preference),
            min_rating      = COALESCE($3, user_preferences.min_rating),
            silent_mode     = COALESCE($4, user_preferences.silent_mode),
            updated_at      = NOW()
        RETURNING user_id, food_preference, min_rating, silent_mode, updated_at`
	err := r.db.QueryRow(ctx, query, userID, data.FoodPreference, data.MinRating, data.SilentMode).Scan(
		&prefs.UserID, &prefs.FoodPreference, &prefs.MinRating, &prefs.SilentMode, &prefs.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("repository.UpsertPreferences: %w", err)
	}
	return prefs, nil
}
