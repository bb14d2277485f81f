package directory

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/db/models"
)

// Company is a view of a directory company entry.
type Company struct {
	// ID is the normalized company name.
	ID string
	// Name is the display name.
	Name string
	// DN is the distinguished name of the entry.
	DN string
}

// CompanyRepository gives read access to the company entries of one
// node's directory tree.
type CompanyRepository struct {
	db  *gorm.DB
	cfg Config
}

// FindByID retrieves a company entry. Returns ErrCompanyNotFound when
// the entry does not exist.
func (r *CompanyRepository) FindByID(id string) (*Company, error) {
	var row models.DirectoryCompany

	err := r.db.Where("id = ?", Normalize(id)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query directory company: %w", err)
	}

	return &Company{ID: row.ID, Name: row.Name, DN: row.DN}, nil
}

// FindAll retrieves every company entry of the tree.
func (r *CompanyRepository) FindAll() ([]*Company, error) {
	var rows []models.DirectoryCompany

	if err := r.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query directory companies: %w", err)
	}

	companies := make([]*Company, 0, len(rows))
	for i := range rows {
		companies = append(companies, &Company{ID: rows[i].ID, Name: rows[i].Name, DN: rows[i].DN})
	}

	return companies, nil
}
