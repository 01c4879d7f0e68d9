package postgres

import (
	"context"
	"database/sql"
	"time"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, phone_number, password_hash, name, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now().Format("2006-01-02")
	u.CreatedOn = now
	u.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, u.Email, u.PhoneNumber, u.PasswordHash, u.Name, u.CreatedOn, u.UpdatedOn).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, phone_number, password_hash, name, created_on, updated_on FROM users WHERE id = $1`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Name, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, phone_number, password_hash, name, created_on, updated_on FROM users WHERE LOWER(email) = LOWER($1)`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Name, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, phone_number=$2, name=$3, updated_on=$4 WHERE id=$5`
	u.UpdatedOn = time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query, u.Email, u.PhoneNumber, u.Name, u.UpdatedOn, u.ID)
	return err
}

func (r *userRepository) AddMembership(ctx context.Context, m *domain.Membership) error {
	query := `INSERT INTO community_members (user_id, community_id, role, active, joined_on)
	          VALUES ($1, $2, $3, $4, $5)`
	m.JoinedOn = time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query, m.UserID, m.CommunityID, m.Role, m.Active, m.JoinedOn)
	return err
}

func (r *userRepository) GetMembership(ctx context.Context, userID, communityID int32) (*domain.Membership, error) {
	m := &domain.Membership{}
	query := `SELECT user_id, community_id, role, active, joined_on FROM community_members WHERE user_id = $1 AND community_id = $2`
	var joinedOn time.Time
	err := r.db.QueryRowContext(ctx, query, userID, communityID).Scan(&m.UserID, &m.CommunityID, &m.Role, &m.Active, &joinedOn)
	if err != nil {
		return nil, err
	}
	m.JoinedOn = joinedOn.Format("2006-01-02")
	return m, nil
}

func (r *userRepository) ListMemberships(ctx context.Context, userID int32) ([]domain.Membership, error) {
	query := `SELECT user_id, community_id, role, active, joined_on FROM community_members WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		var joinedOn time.Time
		if err := rows.Scan(&m.UserID, &m.CommunityID, &m.Role, &m.Active, &joinedOn); err != nil {
			return nil, err
		}
		m.JoinedOn = joinedOn.Format("2006-01-02")
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *userRepository) UpdateMembership(ctx context.Context, m *domain.Membership) error {
	query := `UPDATE community_members SET role=$1, active=$2 WHERE user_id=$3 AND community_id=$4`
	_, err := r.db.ExecContext(ctx, query, m.Role, m.Active, m.UserID, m.CommunityID)
	return err
}

func (r *userRepository) ListMembersByCommunity(ctx context.Context, communityID int32) ([]domain.User, []domain.Membership, error) {
	query := `SELECT u.id, u.email, u.phone_number, u.name, cm.user_id, cm.community_id, cm.role, cm.active, cm.joined_on
	          FROM users u
	          JOIN community_members cm ON cm.user_id = u.id
	          WHERE cm.community_id = $1
	          ORDER BY u.name`
	rows, err := r.db.QueryContext(ctx, query, communityID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var users []domain.User
	var memberships []domain.Membership
	for rows.Next() {
		var u domain.User
		var m domain.Membership
		var joinedOn time.Time
		if err := rows.Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.Name, &m.UserID, &m.CommunityID, &m.Role, &m.Active, &joinedOn); err != nil {
			return nil, nil, err
		}
		m.JoinedOn = joinedOn.Format("2006-01-02")
		users = append(users, u)
		memberships = append(memberships, m)
	}
	return users, memberships, rows.Err()
}
