package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-server/internal/interfaces"
	"storefront-server/internal/models"

	"github.com/google/uuid"
)

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*models.Category)}
}

var _ interfaces.CategoryRepository = (*fakeCategoryRepo)(nil)

func (f *fakeCategoryRepo) CreateCategory(_ context.Context, category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.categories {
		if strings.EqualFold(existing.Title, category.Title) || existing.Slug == category.Slug {
			return models.ErrCategoryAlreadyExists
		}
	}
	category.ID = uuid.New()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) GetCategoryBySlug(_ context.Context, slug string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, category := range f.categories {
		if category.Slug == slug {
			clone := *category
			return &clone, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) GetCategoryByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if category, ok := f.categories[id]; ok {
		clone := *category
		return &clone, nil
	}
	return nil, models.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) ExistsByTitle(_ context.Context, title string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, category := range f.categories {
		if strings.EqualFold(category.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryRepo) ListCategories(_ context.Context, page, limit int, search string, sortAsc bool) ([]models.Category, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := make([]models.Category, 0, len(f.categories))
	for _, category := range f.categories {
		if search == "" || strings.Contains(strings.ToLower(category.Title), strings.ToLower(search)) {
			matched = append(matched, *category)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if sortAsc {
			return matched[i].Title < matched[j].Title
		}
		return matched[i].Title > matched[j].Title
	})
	count := int64(len(matched))
	_, offset, _ := models.ClampPage(page, limit, count)
	if offset >= len(matched) {
		return []models.Category{}, count, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], count, nil
}

func (f *fakeCategoryRepo) UpdateCategoryBySlug(_ context.Context, slug, title, newSlug string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, category := range f.categories {
		if category.Slug != slug {
			continue
		}
		category.Title = title
		category.Slug = newSlug
		category.UpdatedAt = time.Now()
		clone := *category
		return &clone, nil
	}
	return nil, models.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) DeleteCategoryBySlug(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, category := range f.categories {
		if category.Slug == slug {
			delete(f.categories, id)
			return nil
		}
	}
	return models.ErrCategoryNotFound
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*models.Product)}
}

var _ interfaces.ProductRepository = (*fakeProductRepo)(nil)

func (f *fakeProductRepo) CreateProduct(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.products {
		if strings.EqualFold(existing.Title, product.Title) || existing.Slug == product.Slug {
			return models.ErrProductAlreadyExists
		}
	}
	product.ID = uuid.New()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) GetProductBySlug(_ context.Context, slug string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, product := range f.products {
		if product.Slug == slug {
			clone := *product
			return &clone, nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (f *fakeProductRepo) ExistsByTitle(_ context.Context, title string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, product := range f.products {
		if strings.EqualFold(product.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductRepo) ExistByIDs(_ context.Context, ids []uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(ids) == 0 {
		return false, nil
	}
	for _, id := range ids {
		if _, ok := f.products[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeProductRepo) ListProducts(_ context.Context, page, limit int, filter models.ProductFilter) ([]models.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := make([]models.Product, 0, len(f.products))
	for _, product := range f.products {
		if filter.Search != "" && !strings.Contains(strings.ToLower(product.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.MinPrice > 0 && product.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && product.Price > filter.MaxPrice {
			continue
		}
		if filter.CategoryID != nil && product.CategoryID != *filter.CategoryID {
			continue
		}
		matched = append(matched, *product)
	}
	sort.Slice(matched, func(i, j int) bool {
		if filter.SortAsc {
			return matched[i].Price < matched[j].Price
		}
		return matched[i].Price > matched[j].Price
	})
	count := int64(len(matched))
	_, offset, _ := models.ClampPage(page, limit, count)
	if offset >= len(matched) {
		return []models.Product{}, count, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], count, nil
}

func (f *fakeProductRepo) UpdateProductBySlug(_ context.Context, slug string, product *models.Product) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.products {
		if existing.Slug != slug {
			continue
		}
		updated := *product
		updated.ID = id
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = time.Now()
		f.products[id] = &updated
		clone := updated
		return &clone, nil
	}
	return nil, models.ErrProductNotFound
}

func (f *fakeProductRepo) DeleteProductBySlug(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, product := range f.products {
		if product.Slug == slug {
			delete(f.products, id)
			return nil
		}
	}
	return models.ErrProductNotFound
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*models.Order)}
}

var _ interfaces.OrderRepository = (*fakeOrderRepo)(nil)

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	clone := *order
	f.orders[order.ID] = &clone
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order, ok := f.orders[id]; ok {
		clone := *order
		return &clone, nil
	}
	return nil, models.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListOrders(_ context.Context, page, limit int) ([]models.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]models.Order, 0, len(f.orders))
	for _, order := range f.orders {
		all = append(all, *order)
	}
	count := int64(len(all))
	_, offset, _ := models.ClampPage(page, limit, count)
	if offset >= len(all) {
		return []models.Order{}, count, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], count, nil
}

func (f *fakeOrderRepo) UpdateOrder(_ context.Context, order *models.Order) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[order.ID]; !ok {
		return nil, models.ErrOrderNotFound
	}
	order.UpdatedAt = time.Now()
	clone := *order
	f.orders[order.ID] = &clone
	result := clone
	return &result, nil
}

func (f *fakeOrderRepo) DeleteOrder(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return models.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}
