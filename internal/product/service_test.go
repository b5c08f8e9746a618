package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"souq-be/internal/store"
	"souq-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p Product) (*Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id string, input UpdateProduct) (*Product, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) AdjustStock(ctx context.Context, id string, delta int) (*Product, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Tests ---

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DefaultsToDraft", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		in := Product{Name: "  Dates Box ", Price: 45, Stock: 3}
		want := Product{Name: "Dates Box", Price: 45, Stock: 3, Status: StatusDraft}
		created := want
		created.ID = "prd-1"
		mockRepo.On("Create", ctx, want).Return(&created, nil)

		res, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "prd-1", res.ID)
		assert.Equal(t, StatusDraft, res.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		cases := []struct {
			name string
			in   Product
			err  error
		}{
			{"EmptyName", Product{Name: " ", Price: 1}, ErrInvalidName},
			{"NegativePrice", Product{Name: "A", Price: -1}, ErrInvalidPrice},
			{"NegativeStock", Product{Name: "A", Stock: -2}, ErrInvalidStock},
			{"NegativeWeight", Product{Name: "A", Weight: -1}, ErrInvalidWeight},
			{"UnknownStatus", Product{Name: "A", Status: "archived"}, ErrInvalidStatus},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				mockRepo := new(MockRepository)
				svc := NewService(mockRepo)

				_, err := svc.Create(ctx, tc.in)
				assert.ErrorIs(t, err, tc.err)
				assert.ErrorIs(t, err, utils.ErrInvalidInput)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("Create", ctx, mock.Anything).Return(nil, store.ErrWriteFailed)

		_, err := svc.Create(ctx, Product{Name: "A"})
		assert.ErrorIs(t, err, store.ErrWriteFailed)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	products := []Product{
		{Meta: store.Meta{ID: "1", CreatedAt: base}, Name: "Olive Oil", Price: 30, Stock: 0, Category: "Food", Status: StatusActive},
		{Meta: store.Meta{ID: "2", CreatedAt: base.Add(time.Hour)}, Name: "Cardamom", Price: 12, Stock: 8, Category: "Spices", Status: StatusActive},
		{Meta: store.Meta{ID: "3", CreatedAt: base.Add(2 * time.Hour)}, Name: "Saffron", Price: 90, Stock: 2, Category: "spices", Status: StatusDraft},
	}

	ids := func(ps []Product) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"NaturalOrder", ListOptions{}, []string{"1", "2", "3"}},
		{"CategoryIgnoresCase", ListOptions{Category: "SPICES"}, []string{"2", "3"}},
		{"Status", ListOptions{Status: StatusDraft}, []string{"3"}},
		{"InStock", ListOptions{InStock: true}, []string{"2", "3"}},
		{"Search", ListOptions{Search: "oil"}, []string{"1"}},
		{"Newest", ListOptions{Sort: SortNewest}, []string{"3", "2", "1"}},
		{"PriceAsc", ListOptions{Sort: SortPriceAsc}, []string{"2", "1", "3"}},
		{"PriceDesc", ListOptions{Sort: SortPriceDesc}, []string{"3", "1", "2"}},
		{"Name", ListOptions{Sort: SortName}, []string{"2", "1", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			svc := NewService(mockRepo)
			// List sorts its own copy, so each subtest gets a fresh slice.
			mockRepo.On("GetAll", ctx).Return(append([]Product(nil), products...), nil)

			res, err := svc.List(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res))
		})
	}

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetAll", ctx).Return(nil, errors.New("backend down"))

		_, err := svc.List(ctx, ListOptions{})
		assert.Error(t, err)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("NoFields", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.Update(ctx, "prd-1", UpdateProduct{})
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TrimsName", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		want := UpdateProduct{Name: utils.Ptr("Tea")}
		mockRepo.On("Update", ctx, "prd-1", want).Return(&Product{Name: "Tea"}, nil)

		res, err := svc.Update(ctx, "prd-1", UpdateProduct{Name: utils.Ptr(" Tea ")})
		require.NoError(t, err)
		assert.Equal(t, "Tea", res.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("Update", ctx, "missing", mock.Anything).Return(nil, ErrProductNotFound)

		_, err := svc.Update(ctx, "missing", UpdateProduct{Price: utils.Ptr(1.0)})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestService_DeleteAndStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Delete", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("Delete", ctx, "prd-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "prd-1"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("AdjustStock_Insufficient", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("AdjustStock", ctx, "prd-1", -10).Return(nil, ErrInsufficientStock)

		_, err := svc.AdjustStock(ctx, "prd-1", -10)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})
}
