package repository

import (
	"github.com/feastfinder/feastfinder-backend/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *models.Event) (*models.Event, error) {
	result := r.db.Create(event)
	if result.Error != nil {
		return nil, result.Error
	}
	return event, nil
}

func (r *EventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetAllWithOwners returns every event with the owner's display fields
// joined in for the public listing.
func (r *EventRepository) GetAllWithOwners() ([]models.EventWithOwner, error) {
	var events []models.EventWithOwner
	err := r.db.Model(&models.Event{}).
		Select(`events.id, events.name, events.location, events.date,
			events.contact_info, events.image_url, events.image_id,
			events.created_at, events.updated_at,
			users.id AS owner_id, users.name AS owner_name, users.email AS owner_email`).
		Joins("JOIN users ON users.id = events.user_id").
		Order("events.created_at DESC").
		Scan(&events).Error
	return events, err
}

func (r *EventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}
