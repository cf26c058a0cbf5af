package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/feastfinder/feastfinder-backend/internal/models"
	"github.com/feastfinder/feastfinder-backend/pkg/storage"
)

// mockUserStore is an in-memory UserStore.
type mockUserStore struct {
	users   map[uint]*models.User
	nextID  uint
	failOn  string
	failErr error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (m *mockUserStore) Create(user *models.User) error {
	if m.failOn == "Create" {
		return m.failErr
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	user.ID = m.nextID
	m.nextID++
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserStore) GetByID(id uint) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserStore) GetByEmail(email string) (*models.User, error) {
	if m.failOn == "GetByEmail" {
		return nil, m.failErr
	}
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserStore) EmailExists(email string) (bool, error) {
	_, err := m.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *mockUserStore) GetAll() ([]models.User, error) {
	var users []models.User
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

// mockEventStore is an in-memory EventStore.
type mockEventStore struct {
	events  map[uint]*models.Event
	nextID  uint
	failOn  string
	failErr error
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{
		events: make(map[uint]*models.Event),
		nextID: 1,
	}
}

func (m *mockEventStore) Create(event *models.Event) (*models.Event, error) {
	if m.failOn == "Create" {
		return nil, m.failErr
	}
	event.ID = m.nextID
	m.nextID++
	stored := *event
	m.events[event.ID] = &stored
	return event, nil
}

func (m *mockEventStore) GetByID(id uint) (*models.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (m *mockEventStore) GetAllWithOwners() ([]models.EventWithOwner, error) {
	var events []models.EventWithOwner
	for _, event := range m.events {
		events = append(events, models.EventWithOwner{
			ID:          event.ID,
			Name:        event.Name,
			Location:    event.Location,
			Date:        event.Date,
			ContactInfo: event.ContactInfo,
			ImageURL:    event.ImageURL,
			ImageID:     event.ImageID,
			CreatedBy:   models.EventOwner{ID: event.UserID},
		})
	}
	return events, nil
}

func (m *mockEventStore) Update(event *models.Event) error {
	if _, ok := m.events[event.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *event
	m.events[event.ID] = &stored
	return nil
}

func (m *mockEventStore) Delete(id uint) error {
	delete(m.events, id)
	return nil
}

// mockImageStorage records uploads and deletions.
type mockImageStorage struct {
	uploads    int
	deleted    []string
	failUpload bool
	failDelete bool
}

func (m *mockImageStorage) Upload(ctx context.Context, reader io.Reader, filename string) (*storage.Image, error) {
	if m.failUpload {
		return nil, errors.New("image host unavailable")
	}
	m.uploads++
	id := fmt.Sprintf("img-%d", m.uploads)
	return &storage.Image{
		URL:       "https://images.example.com/" + id,
		StorageID: id,
	}, nil
}

func (m *mockImageStorage) Delete(ctx context.Context, storageID string) error {
	if m.failDelete {
		return errors.New("image host unavailable")
	}
	m.deleted = append(m.deleted, storageID)
	return nil
}
