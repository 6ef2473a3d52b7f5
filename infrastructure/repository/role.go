package repository

//go:generate mockgen -source=role.go -destination=mocks/role.go -package=mocks

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/benefits-club-api/infrastructure/database/postgres"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

const userRolesTable = "user_roles"

// RoleRepository consulta os papéis atribuídos aos usuários
type RoleRepository interface {
	HasRole(ctx context.Context, userID string, role domain.Role) (bool, error)
	GrantRole(ctx context.Context, userID string, role domain.Role) error
}

type roleRepository struct {
	conn postgres.Queryer
}

func NewRoleRepository(conn postgres.Queryer) RoleRepository {
	return &roleRepository{
		conn: conn,
	}
}

func (r *roleRepository) HasRole(ctx context.Context, userID string, role domain.Role) (bool, error) {
	sqlQuery, args, err := squirrel.
		Select("1").
		Prefix("SELECT EXISTS (").
		From(userRolesTable).
		Where(squirrel.Eq{"user_id": userID, "role": string(role)}).
		Suffix(")").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&exists); err != nil {
		return false, errors.Wrapf(err, "erro ao verificar papel %s do usuário %s", role, userID)
	}

	return exists, nil
}

func (r *roleRepository) GrantRole(ctx context.Context, userID string, role domain.Role) error {
	sqlQuery, args, err := squirrel.
		Insert(userRolesTable).
		Columns("user_id", "role").
		Values(userID, string(role)).
		Suffix("ON CONFLICT (user_id, role) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return errors.Wrapf(err, "erro ao atribuir papel %s ao usuário %s", role, userID)
	}

	return nil
}
