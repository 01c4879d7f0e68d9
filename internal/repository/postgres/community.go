package postgres

import (
	"context"
	"database/sql"
	"time"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/repository"
)

type communityRepository struct {
	db *sql.DB
}

func NewCommunityRepository(db *sql.DB) repository.CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) Create(ctx context.Context, c *domain.Community) error {
	query := `INSERT INTO communities (name, address, contact_email, created_on)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	c.CreatedOn = time.Now().Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query, c.Name, c.Address, c.ContactEmail, c.CreatedOn).Scan(&c.ID)
}

func (r *communityRepository) GetByID(ctx context.Context, id int32) (*domain.Community, error) {
	c := &domain.Community{}
	query := `SELECT c.id, c.name, c.address, c.contact_email, c.created_on,
	                 (SELECT COUNT(*) FROM community_members cm WHERE cm.community_id = c.id AND cm.active) AS member_count
	          FROM communities c WHERE c.id = $1`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Address, &c.ContactEmail, &createdOn, &c.MemberCount)
	if err != nil {
		return nil, err
	}
	c.CreatedOn = createdOn.Format("2006-01-02")
	return c, nil
}

func (r *communityRepository) List(ctx context.Context) ([]domain.Community, error) {
	query := `SELECT id, name, address, contact_email, created_on FROM communities ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var communities []domain.Community
	for rows.Next() {
		var c domain.Community
		var createdOn time.Time
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.ContactEmail, &createdOn); err != nil {
			return nil, err
		}
		c.CreatedOn = createdOn.Format("2006-01-02")
		communities = append(communities, c)
	}
	return communities, rows.Err()
}

func (r *communityRepository) Update(ctx context.Context, c *domain.Community) error {
	query := `UPDATE communities SET name=$1, address=$2, contact_email=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Address, c.ContactEmail, c.ID)
	return err
}
