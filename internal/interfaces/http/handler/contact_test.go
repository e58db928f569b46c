package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	partnerapp "github.com/markethub/backend/internal/application/partner"
	"github.com/markethub/backend/internal/domain/partner"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockContactRepository implements partner.ContactRepository for testing
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]partner.Contact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Contact), args.Error(1)
}

func (m *MockContactRepository) Save(ctx context.Context, contact *partner.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ partner.ContactRepository = (*MockContactRepository)(nil)

// contactRouter wires a ContactHandler behind a stub auth layer that
// injects the given user id.
func contactRouter(repo partner.ContactRepository, userID uuid.UUID) *gin.Engine {
	h := NewContactHandler(partnerapp.NewContactService(repo))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
	})
	router.GET("/contacts", h.List)
	router.POST("/contacts", h.Create)
	router.DELETE("/contacts/:id", h.Delete)
	return router
}

func TestContactHandler_List(t *testing.T) {
	userID := uuid.New()
	repo := new(MockContactRepository)
	repo.On("FindByUser", mock.Anything, userID).Return([]partner.Contact{
		{City: "Riga", Street: "Brivibas", Phone: "+371-200-00000"},
	}, nil)

	router := contactRouter(repo, userID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contacts", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Riga")
	repo.AssertExpectations(t)
}

func TestContactHandler_Create(t *testing.T) {
	t.Run("valid payload creates the contact", func(t *testing.T) {
		userID := uuid.New()
		repo := new(MockContactRepository)
		repo.On("FindByUser", mock.Anything, userID).Return([]partner.Contact{}, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Contact")).Return(nil)

		router := contactRouter(repo, userID)

		body := `{"city":"Riga","street":"Brivibas","house":"12","phone":"+371-200-00000"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("missing required fields is a 400", func(t *testing.T) {
		userID := uuid.New()
		repo := new(MockContactRepository)
		router := contactRouter(repo, userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(`{"city":"Riga"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("full address book is rejected", func(t *testing.T) {
		userID := uuid.New()
		full := make([]partner.Contact, 5)
		repo := new(MockContactRepository)
		repo.On("FindByUser", mock.Anything, userID).Return(full, nil)

		router := contactRouter(repo, userID)

		body := `{"city":"Riga","street":"Brivibas","phone":"+371-200-00000"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CONTACT_LIMIT")
	})
}

func TestContactHandler_Delete(t *testing.T) {
	t.Run("someone else's contact reads as missing", func(t *testing.T) {
		userID := uuid.New()
		contactID := uuid.New()
		other := &partner.Contact{UserID: uuid.New()}
		other.ID = contactID

		repo := new(MockContactRepository)
		repo.On("FindByID", mock.Anything, contactID).Return(other, nil)

		router := contactRouter(repo, userID)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/contacts/"+contactID.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("owned contact is deleted", func(t *testing.T) {
		userID := uuid.New()
		contactID := uuid.New()
		owned := &partner.Contact{UserID: userID}
		owned.ID = contactID

		repo := new(MockContactRepository)
		repo.On("FindByID", mock.Anything, contactID).Return(owned, nil)
		repo.On("Delete", mock.Anything, contactID).Return(nil)

		router := contactRouter(repo, userID)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/contacts/"+contactID.String(), nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		repo.AssertExpectations(t)
	})
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found sentinel", shared.ErrNotFound, http.StatusNotFound},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusConflict},
		{"custom domain error", shared.NewDomainError("NO_ITEMS", "Basket is empty"), http.StatusBadRequest},
		{"opaque error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
