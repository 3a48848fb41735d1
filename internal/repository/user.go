package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/geotrip-api/internal/model"
)

const userColumns = "id, name, user_name, email, password_hash, birth_date, location, role"

var users = table[model.User]{name: "users", columns: userColumns}

type userRepository struct{}

func (r *userRepository) Get(ctx context.Context, q Querier, id string) (model.User, bool, error) {
	return users.get(ctx, q, id)
}

func (r *userRepository) FindByUserName(ctx context.Context, q Querier, userName string) (model.User, bool, error) {
	return users.getWhere(ctx, q, "SELECT "+userColumns+" FROM users WHERE user_name = ?", userName)
}

func (r *userRepository) FindByEmail(ctx context.Context, q Querier, email string) (model.User, bool, error) {
	return users.getWhere(ctx, q, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
}

// FindByIdentifier resolves a login identifier against email first, then
// user_name.
func (r *userRepository) FindByIdentifier(ctx context.Context, q Querier, identifier string) (model.User, bool, error) {
	return users.getWhere(ctx, q, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = ? OR user_name = ?
		ORDER BY CASE WHEN email = ? THEN 0 ELSE 1 END
		LIMIT 1`, identifier, identifier, identifier)
}

func (r *userRepository) List(ctx context.Context, q Querier) ([]model.User, error) {
	return users.selectWhere(ctx, q, "SELECT "+userColumns+" FROM users ORDER BY user_name")
}

func (r *userRepository) Insert(ctx context.Context, q Querier, rows []model.User) error {
	return users.insert(ctx, q, `
		INSERT INTO users (id, name, user_name, email, password_hash, birth_date, location, role)
		VALUES (:id, :name, :user_name, :email, :password_hash, :birth_date, :location, :role)`, rows)
}

func (r *userRepository) Update(ctx context.Context, q Querier, u model.User) error {
	return users.update(ctx, q, `
		UPDATE users
		SET name = :name, user_name = :user_name, email = :email, password_hash = :password_hash,
			birth_date = :birth_date, location = :location, role = :role
		WHERE id = :id`, u)
}

// Delete removes the user with its favorites and visited rows.
func (r *userRepository) Delete(ctx context.Context, q Querier, id string) error {
	for _, stmt := range []string{
		"DELETE FROM favorites WHERE user_id = ?",
		"DELETE FROM visited WHERE user_id = ?",
		"DELETE FROM users WHERE id = ?",
	} {
		if _, err := exec(ctx, q, stmt, id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
	}
	return nil
}
