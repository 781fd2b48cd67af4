package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlevkov/prodsync/internal/product"
)

// mockStore is a mock implementation of the Store interface
type mockStore struct {
	products []product.Product
	prod     product.Product
	error    error
}

func (m *mockStore) FindAll(_ context.Context) ([]product.Product, error) {
	return m.products, m.error
}

func (m *mockStore) FindBySKU(_ context.Context, _ string) (*product.Product, error) {
	return &m.prod, m.error
}

func (m *mockStore) Create(_ context.Context, _ product.Product) (*product.Product, error) {
	return &m.prod, m.error
}

func (m *mockStore) Update(_ context.Context, _ product.Product) (*product.Product, error) {
	return &m.prod, m.error
}

func (m *mockStore) DeleteBySKU(_ context.Context, _ string) error {
	return m.error
}

func Test_Service_FindAll(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockStore
		expected    []product.Product
		expectError error
	}{
		{
			name: "Success - products found",
			mockStore: &mockStore{
				products: []product.Product{{SKU: "A1", Name: "Widget"}},
			},
			expected: []product.Product{{SKU: "A1", Name: "Widget"}},
		},
		{
			name:      "Success - no products",
			mockStore: &mockStore{},
			expected:  nil,
		},
		{
			name:        "Error - store error",
			mockStore:   &mockStore{error: errors.New("store error")},
			expectError: errors.New("store error"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			list, err := service.FindAll(context.Background())
			// then
			if tc.expectError != nil {
				assert.ErrorContains(t, err, tc.expectError.Error())
				assert.Nil(t, list)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, list)
		})
	}
}

func Test_Service_Create(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockStore
		expectError error
	}{
		{
			name:      "Success - product created",
			mockStore: &mockStore{prod: product.Product{SKU: "A1", Name: "Widget"}},
		},
		{
			name:        "Error - duplicate sku",
			mockStore:   &mockStore{error: ErrSKUExists},
			expectError: ErrSKUExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			created, err := service.Create(context.Background(), product.Product{SKU: "A1"})
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.mockStore.prod, *created)
		})
	}
}

func Test_Service_Update(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockStore
		expectError error
	}{
		{
			name:      "Success - product updated",
			mockStore: &mockStore{prod: product.Product{SKU: "B2", Name: "Gadget XL"}},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockStore{error: ErrProductNotFound},
			expectError: ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			updated, err := service.Update(context.Background(), product.Product{SKU: "B2"})
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.mockStore.prod, *updated)
		})
	}
}

func Test_Service_DeleteBySKU(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockStore
		expectError error
	}{
		{
			name:      "Success - product deleted",
			mockStore: &mockStore{},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockStore{error: ErrProductNotFound},
			expectError: ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			err := service.DeleteBySKU(context.Background(), "A1")
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
		})
	}
}
