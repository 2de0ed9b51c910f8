package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/service"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// stubUserStore implements store.UserStore with overridable function fields.
type stubUserStore struct {
	insertFn               func(ctx context.Context, user *domain.User) (string, error)
	getByEmailFn           func(ctx context.Context, email string) (*domain.User, error)
	existsByEmailOrPhoneFn func(ctx context.Context, email, phone string) (bool, error)
	searchFn               func(ctx context.Context, term string) ([]*domain.User, error)
	maxCustomIDNumberFn    func(ctx context.Context, prefix string) (int, error)
}

func (s *stubUserStore) Insert(ctx context.Context, user *domain.User) (string, error) {
	if s.insertFn != nil {
		return s.insertFn(ctx, user)
	}
	return "", nil
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

func (s *stubUserStore) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	if s.existsByEmailOrPhoneFn != nil {
		return s.existsByEmailOrPhoneFn(ctx, email, phone)
	}
	return false, nil
}

func (s *stubUserStore) List(ctx context.Context) ([]*domain.User, error) { return nil, nil }

func (s *stubUserStore) Search(ctx context.Context, term string) ([]*domain.User, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, term)
	}
	return nil, nil
}

func (s *stubUserStore) Upsert(ctx context.Context, email string, fields map[string]interface{}) error {
	return nil
}

func (s *stubUserStore) Delete(ctx context.Context, email string) error { return nil }

func (s *stubUserStore) MaxCustomIDNumber(ctx context.Context, prefix string) (int, error) {
	if s.maxCustomIDNumberFn != nil {
		return s.maxCustomIDNumberFn(ctx, prefix)
	}
	return 0, nil
}

func (s *stubUserStore) PremiumTutors(ctx context.Context, city, location string) ([]*domain.User, error) {
	return nil, nil
}

func newUserRouter(users, tutors *stubUserStore) *chi.Mux {
	svc := service.NewUserService(users, tutors, slog.Default())
	h := NewUserHandler(svc)

	r := chi.NewRouter()
	r.Post("/users", h.Register)
	r.Post("/tutors", h.RegisterTutor)
	r.Get("/users/{email}", h.Get)
	r.Get("/searchUsers", h.Search)
	r.Get("/appliedTutors/{email}", h.GetTutorProfile)
	return r
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("new user answers 201 with custom ID", func(t *testing.T) {
		t.Parallel()

		users := &stubUserStore{
			insertFn: func(ctx context.Context, user *domain.User) (string, error) {
				return "65f000000000000000000001", nil
			},
			maxCustomIDNumberFn: func(ctx context.Context, prefix string) (int, error) {
				return 4, nil
			},
		}
		router := newUserRouter(users, &stubUserStore{})

		body := `{"email":"s@example.com","name":"Rahim","phone":"01712345678","role":"student"}`
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "65f000000000000000000001", resp["insertedId"])
		assert.Equal(t, "SID5", resp["customId"])
	})

	t.Run("duplicate answers 200 with null insertedId", func(t *testing.T) {
		t.Parallel()

		users := &stubUserStore{
			existsByEmailOrPhoneFn: func(ctx context.Context, email, phone string) (bool, error) {
				return true, nil
			},
		}
		router := newUserRouter(users, &stubUserStore{})

		body := `{"email":"s@example.com","name":"Rahim","role":"student"}`
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "user already exists", resp["message"])
		assert.Nil(t, resp["insertedId"])
	})

	t.Run("non-tutor role on tutors endpoint answers 400", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&stubUserStore{}, &stubUserStore{})

		body := `{"email":"s@example.com","name":"Rahim","role":"student"}`
		req := httptest.NewRequest(http.MethodPost, "/tutors", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetUserEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("missing user answers 404", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&stubUserStore{}, &stubUserStore{})

		req := httptest.NewRequest(http.MethodGet, "/users/nobody@example.com", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("tutor profile lookup lowercases the email", func(t *testing.T) {
		t.Parallel()

		users := &stubUserStore{
			getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				assert.Equal(t, "tutor@example.com", email)
				return &domain.User{Email: email, Role: domain.RoleTutor}, nil
			},
		}
		router := newUserRouter(users, &stubUserStore{})

		req := httptest.NewRequest(http.MethodGet, "/appliedTutors/Tutor@Example.COM", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSearchUsersEndpoint(t *testing.T) {
	t.Parallel()

	users := &stubUserStore{
		searchFn: func(ctx context.Context, term string) ([]*domain.User, error) {
			assert.Equal(t, "karim", term)
			return []*domain.User{{Email: "karim@example.com"}}, nil
		},
	}
	router := newUserRouter(users, &stubUserStore{})

	req := httptest.NewRequest(http.MethodGet, "/searchUsers?q=Karim", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
}
