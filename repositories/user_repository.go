package repositories

import (
	"context"

	"guate-servicios/models"
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and fills in ID and CreatedAt. A taken email
// surfaces as ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, string(user.Role)).
		Scan(&user.ID, &user.CreatedAt)
	return wrap("create user", err)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = $1`

	user := &models.User{}
	var role string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, wrap("find user by email", err)
	}
	user.Role = models.Role(role)

	return user, nil
}

// ListTechWithoutProfile returns ids of role=tech users that have no
// technician row.
func (r *UserRepository) ListTechWithoutProfile(ctx context.Context) ([]int, error) {
	query := `
		SELECT u.id FROM users u
		LEFT JOIN technicians t ON t.user_id = u.id
		WHERE u.role = 'tech' AND t.id IS NULL
		ORDER BY u.id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, wrap("list tech users without profile", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, wrap("scan user id", err)
		}
		ids = append(ids, id)
	}
	return ids, wrap("list tech users without profile", rows.Err())
}
