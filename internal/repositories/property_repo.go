package repositories

import (
	"context"

	"rentledger/internal/models"

	"github.com/google/uuid"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	List(ctx context.Context) ([]*models.Property, error)
}

type propertyRepo struct {
	db Database
}

func NewPropertyRepo(db Database) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, property *models.Property) error {
	query := `
		INSERT INTO properties (id, landlord_name, name, bill_name, ward, block_count, address, phone_number, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, property.ID, property.LandlordName, property.Name, property.BillName, property.Ward, property.BlockCount, property.Address, property.PhoneNumber)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property := &models.Property{}
	query := `
		SELECT id, landlord_name, name, bill_name, ward, block_count, address, phone_number, created_on, updated_on
		FROM properties
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&property.ID, &property.LandlordName, &property.Name, &property.BillName, &property.Ward, &property.BlockCount, &property.Address, &property.PhoneNumber, &property.CreatedOn, &property.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return property, nil
}

func (r *propertyRepo) List(ctx context.Context) ([]*models.Property, error) {
	query := `
		SELECT id, landlord_name, name, bill_name, ward, block_count, address, phone_number, created_on, updated_on
		FROM properties
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		property := &models.Property{}
		if err := rows.Scan(&property.ID, &property.LandlordName, &property.Name, &property.BillName, &property.Ward, &property.BlockCount, &property.Address, &property.PhoneNumber, &property.CreatedOn, &property.UpdatedOn); err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, rows.Err()
}
