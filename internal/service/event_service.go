package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/feastfinder/feastfinder-backend/internal/models"
	"github.com/feastfinder/feastfinder-backend/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidDate rejects event dates that are neither YYYY-MM-DD nor RFC3339.
var ErrInvalidDate = errors.New("invalid date format")

// EventStore is the persistence surface the event catalog needs.
type EventStore interface {
	Create(event *models.Event) (*models.Event, error)
	GetByID(id uint) (*models.Event, error)
	GetAllWithOwners() ([]models.EventWithOwner, error)
	Update(event *models.Event) error
	Delete(id uint) error
}

type EventService struct {
	eventRepo  EventStore
	imgStorage storage.ImageStorage
	logger     *zap.Logger
}

func NewEventService(eventRepo EventStore, imgStorage storage.ImageStorage, logger *zap.Logger) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		imgStorage: imgStorage,
		logger:     logger,
	}
}

// CreateEvent persists a new event owned by userID. A nil image leaves
// the image reference empty; a failed upload aborts the creation so no
// event is ever stored with a dangling reference.
func (s *EventService) CreateEvent(ctx context.Context, userID uint, req models.EventRequest, image io.Reader, filename string) (*models.Event, error) {
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		UserID:      userID,
		Name:        req.Name,
		Location:    req.Location,
		Date:        date,
		ContactInfo: req.ContactInfo,
	}

	if image != nil {
		uploaded, err := s.imgStorage.Upload(ctx, image, filename)
		if err != nil {
			return nil, err
		}
		event.ImageURL = uploaded.URL
		event.ImageID = uploaded.StorageID
	}

	createdEvent, err := s.eventRepo.Create(event)
	if err != nil {
		if event.ImageID != "" {
			s.deleteImage(ctx, event.ImageID)
		}
		return nil, err
	}

	return createdEvent, nil
}

func (s *EventService) ListEvents() ([]models.EventWithOwner, error) {
	return s.eventRepo.GetAllWithOwners()
}

// UpdateEvent rewrites the mutable fields of an event the requester
// owns. A replacement image is uploaded first; only then is the old
// stored image released, so a failed upload leaves the event intact.
func (s *EventService) UpdateEvent(ctx context.Context, eventID uint, userID uint, req models.EventRequest, image io.Reader, filename string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if event.UserID != userID {
		return nil, ErrNotEventOwner
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	if image != nil {
		uploaded, err := s.imgStorage.Upload(ctx, image, filename)
		if err != nil {
			return nil, err
		}
		if event.ImageID != "" {
			s.deleteImage(ctx, event.ImageID)
		}
		event.ImageURL = uploaded.URL
		event.ImageID = uploaded.StorageID
	}

	event.Name = req.Name
	event.Location = req.Location
	event.Date = date
	event.ContactInfo = req.ContactInfo

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, eventID uint, userID uint) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if event.UserID != userID {
		return ErrNotEventOwner
	}

	if event.ImageID != "" {
		s.deleteImage(ctx, event.ImageID)
	}

	return s.eventRepo.Delete(eventID)
}

// deleteImage is best-effort: a stranded image at the host must not
// block the record operation that triggered it.
func (s *EventService) deleteImage(ctx context.Context, imageID string) {
	if err := s.imgStorage.Delete(ctx, imageID); err != nil {
		s.logger.Warn("failed to delete stored image",
			zap.String("image_id", imageID), zap.Error(err))
	}
}

func parseEventDate(value string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date, nil
	}
	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date, nil
	}
	return time.Time{}, ErrInvalidDate
}
