package service

import (
	"github.com/feastfinder/feastfinder-backend/internal/models"
)

type UserService struct {
	userRepo UserStore
}

func NewUserService(userRepo UserStore) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetAllUsers backs the authenticated user directory. Password hashes
// never serialize (json:"-" on the model).
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}
