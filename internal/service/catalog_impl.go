package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-server/internal/config"
	"storefront-server/internal/interfaces"
	"storefront-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time checks
var (
	_ CategoryService = (*categoryServiceImpl)(nil)
	_ ProductService  = (*productServiceImpl)(nil)
)

type categoryServiceImpl struct {
	categoryRepo interfaces.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new instance of categoryServiceImpl.
func NewCategoryService(categoryRepo interfaces.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
		logger:       logger.Named("CategoryService"),
	}
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context, page, limit int, search, sort string) ([]models.Category, *models.Pagination, error) {
	categories, count, err := s.categoryRepo.ListCategories(ctx, page, limit, search, sort == "asc")
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, nil, err
	}
	current, _, totalPages := models.ClampPage(page, limit, count)
	return categories, &models.Pagination{TotalPages: totalPages, CurrentPage: current, TotalItems: count}, nil
}

func (s *categoryServiceImpl) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.categoryRepo.GetCategoryBySlug(ctx, slug)
}

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, title string) (*models.Category, error) {
	log := s.logger.With(zap.String("title", title))

	exists, err := s.categoryRepo.ExistsByTitle(ctx, title)
	if err != nil {
		log.Error("Error checking existing category title", zap.Error(err))
		return nil, fmt.Errorf("error checking existing category: %w", err)
	}
	if exists {
		return nil, models.ErrCategoryAlreadyExists
	}

	category := &models.Category{Title: title, Slug: makeSlug(title)}
	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		if !errors.Is(err, models.ErrCategoryAlreadyExists) {
			log.Error("Failed to create category", zap.Error(err))
		}
		return nil, err
	}
	log.Info("Category created successfully", zap.String("categoryID", category.ID.String()))
	return category, nil
}

// UpdateCategoryBySlug retitles a category; the slug follows the title.
func (s *categoryServiceImpl) UpdateCategoryBySlug(ctx context.Context, slug, title string) (*models.Category, error) {
	newSlug := slug
	if title != "" {
		newSlug = makeSlug(title)
	}
	category, err := s.categoryRepo.UpdateCategoryBySlug(ctx, slug, title, newSlug)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Category updated successfully", zap.String("slug", slug), zap.String("newSlug", newSlug))
	return category, nil
}

func (s *categoryServiceImpl) DeleteCategoryBySlug(ctx context.Context, slug string) error {
	if err := s.categoryRepo.DeleteCategoryBySlug(ctx, slug); err != nil {
		return err
	}
	s.logger.Info("Category deleted successfully", zap.String("slug", slug))
	return nil
}

type productServiceImpl struct {
	productRepo  interfaces.ProductRepository
	categoryRepo interfaces.CategoryRepository
	cfg          *config.Config
	logger       *zap.Logger
}

// NewProductService creates a new instance of productServiceImpl.
func NewProductService(productRepo interfaces.ProductRepository, categoryRepo interfaces.CategoryRepository, cfg *config.Config, logger *zap.Logger) ProductService {
	return &productServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cfg:          cfg,
		logger:       logger.Named("ProductService"),
	}
}

func (s *productServiceImpl) ListProducts(ctx context.Context, page, limit int, filter models.ProductFilter) ([]models.Product, *models.Pagination, error) {
	products, count, err := s.productRepo.ListProducts(ctx, page, limit, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, nil, err
	}
	current, _, totalPages := models.ClampPage(page, limit, count)
	return products, &models.Pagination{TotalPages: totalPages, CurrentPage: current, TotalItems: count}, nil
}

func (s *productServiceImpl) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.productRepo.GetProductBySlug(ctx, slug)
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	log := s.logger.With(zap.String("title", input.Title))

	exists, err := s.productRepo.ExistsByTitle(ctx, input.Title)
	if err != nil {
		log.Error("Error checking existing product title", zap.Error(err))
		return nil, fmt.Errorf("error checking existing product: %w", err)
	}
	if exists {
		return nil, models.ErrProductAlreadyExists
	}

	categoryID, err := uuid.Parse(input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id: %w", models.ErrInvalidInput)
	}
	if _, err := s.categoryRepo.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}

	image := input.Image
	if image == "" {
		image = s.cfg.DefaultProductImage
	}

	// Новый товар стартует с полным складом и нулем продаж
	product := &models.Product{
		Title:        input.Title,
		Slug:         makeSlug(input.Title),
		Description:  input.Description,
		Price:        input.Price,
		Quantity:     input.Quantity,
		CountInStock: input.Quantity,
		Sold:         0,
		CategoryID:   categoryID,
		Image:        image,
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		if !errors.Is(err, models.ErrProductAlreadyExists) {
			log.Error("Failed to create product", zap.Error(err))
		}
		return nil, err
	}
	log.Info("Product created successfully", zap.String("productID", product.ID.String()))
	return product, nil
}

// UpdateProductBySlug applies a partial update. A retitle re-derives the
// slug after a uniqueness check; a quantity restock raises both quantity
// and count_in_stock, and sold is kept consistent with the difference.
func (s *productServiceImpl) UpdateProductBySlug(ctx context.Context, slug string, input ProductInput) (*models.Product, error) {
	log := s.logger.With(zap.String("slug", slug))

	existing, err := s.productRepo.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if input.Title != "" && input.Title != existing.Title {
		taken, err := s.productRepo.ExistsByTitle(ctx, input.Title)
		if err != nil {
			log.Error("Error checking product title availability", zap.Error(err))
			return nil, fmt.Errorf("error checking existing product: %w", err)
		}
		if taken {
			return nil, models.ErrProductAlreadyExists
		}
		existing.Title = input.Title
		existing.Slug = makeSlug(input.Title)
	}

	if input.Description != "" {
		existing.Description = input.Description
	}
	if input.Price > 0 {
		existing.Price = input.Price
	}
	if input.Image != "" {
		existing.Image = input.Image
	}
	if input.CategoryID != "" {
		categoryID, err := uuid.Parse(input.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category id: %w", models.ErrInvalidInput)
		}
		if _, err := s.categoryRepo.GetCategoryByID(ctx, categoryID); err != nil {
			return nil, err
		}
		existing.CategoryID = categoryID
	}
	if input.Quantity > 0 {
		existing.Quantity += input.Quantity
		existing.CountInStock += input.Quantity
	}
	if sold := existing.Quantity - existing.CountInStock; sold > 0 {
		existing.Sold = sold
	}

	updated, err := s.productRepo.UpdateProductBySlug(ctx, slug, existing)
	if err != nil {
		return nil, err
	}
	log.Info("Product updated successfully", zap.String("productID", updated.ID.String()))
	return updated, nil
}

func (s *productServiceImpl) DeleteProductBySlug(ctx context.Context, slug string) error {
	if err := s.productRepo.DeleteProductBySlug(ctx, slug); err != nil {
		return err
	}
	s.logger.Info("Product deleted successfully", zap.String("slug", slug))
	return nil
}
