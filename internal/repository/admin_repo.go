package repository

import (
	"go-toko-admin/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(admin *model.Admin) error
	FindByUsername(username string) (*model.Admin, error)
	FindByID(id uint) (*model.Admin, error)
	UpdateTokenVersion(id uint, version string) error
}

type adminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) AdminRepository {
	return &adminRepo{db}
}

func (r *adminRepo) Create(admin *model.Admin) error {
	return errors.Wrap(r.db.Create(admin).Error, "create admin")
}

func (r *adminRepo) FindByUsername(username string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.First(&admin, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) FindByID(id uint) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) UpdateTokenVersion(id uint, version string) error {
	err := r.db.Model(&model.Admin{}).
		Where("id = ?", id).
		Update("token_version", version).Error
	return errors.Wrap(err, "update token version")
}
