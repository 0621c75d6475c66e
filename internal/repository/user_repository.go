package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"newsroom/internal/model"
)

var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	return r.findBy(`
		SELECT id, username, email, password_hash, created_at
		FROM app_user
		WHERE username = $1
	`, username)
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	return r.findBy(`
		SELECT id, username, email, password_hash, created_at
		FROM app_user
		WHERE email = $1
	`, email)
}

func (r *UserRepository) findBy(query, arg string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *UserRepository) Insert(user *model.User) error {
	err := r.db.QueryRow(`
		INSERT INTO app_user(username, email, password_hash)
		VALUES($1, $2, $3)
		RETURNING id, created_at
	`, user.Username, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)

	return duplicateError(err)
}

func (r *UserRepository) Update(user *model.User) error {
	_, err := r.db.Exec(`
		UPDATE app_user SET username = $1, email = $2, password_hash = $3 WHERE id = $4
	`, user.Username, user.Email, user.PasswordHash, user.ID)

	return duplicateError(err)
}

// duplicateError downgrades unique-constraint violations to the duplicate
// sentinels so the boundary can surface them as field errors.
func duplicateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		switch pqErr.Constraint {
		case "app_user_username_key":
			return ErrDuplicateUsername
		case "app_user_email_key":
			return ErrDuplicateEmail
		}
	}
	return err
}

func (r *UserRepository) CountUsers() (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM app_user
	`).Scan(&total)
	return total, err
}

// AddFavorite appends a favorite unless the user already saved that URL.
// Returns false without error on a duplicate.
func (r *UserRepository) AddFavorite(userID int64, fav *model.Favorite) (bool, error) {
	err := r.db.QueryRow(`
		INSERT INTO favorite(user_id, title, published_at, author, summary, description, image_url, url)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, url) DO NOTHING
		RETURNING id, created_at
	`, userID, fav.Title, fav.PublishedAt, fav.Author, fav.Summary, fav.Description, fav.ImageURL, fav.URL).
		Scan(&fav.ID, &fav.CreatedAt)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	fav.UserID = userID
	return true, nil
}

// RemoveFavorite deletes every favorite matching the URL. Removing an absent
// URL is a successful no-op.
func (r *UserRepository) RemoveFavorite(userID int64, url string) error {
	_, err := r.db.Exec(`
		DELETE FROM favorite WHERE user_id = $1 AND url = $2
	`, userID, url)
	return err
}

func (r *UserRepository) ListFavorites(userID int64) ([]model.Favorite, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, title, published_at, author, summary, description, image_url, url, created_at
		FROM favorite
		WHERE user_id = $1
		ORDER BY id ASC
	`, userID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []model.Favorite
	for rows.Next() {
		var f model.Favorite
		err := rows.Scan(&f.ID, &f.UserID, &f.Title, &f.PublishedAt, &f.Author, &f.Summary, &f.Description, &f.ImageURL, &f.URL, &f.CreatedAt)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return favorites, nil
}
