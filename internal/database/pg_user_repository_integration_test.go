package database_test // Используем _test пакет для изоляции

import (
	"context"
	"testing"
	"time"

	"storefront-server/internal/database"
	"storefront-server/internal/interfaces"
	"storefront-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	// Докер клиент для проверки доступности
	"github.com/docker/docker/client"
)

// UserRepositorySuite содержит состояние для интеграционных тестов репозитория
type UserRepositorySuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer // Контейнер PostgreSQL
	pgPool      *pgxpool.Pool               // Пул подключений к тестовой БД
	repo        interfaces.UserRepository
	logger      *zap.Logger
}

// SetupSuite выполняется один раз перед всеми тестами в наборе
func (s *UserRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err, "Failed to create logger for tests")

	// Запускаем контейнер PostgreSQL
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pgPool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	// Применяем миграции (встроенные в пакет database)
	err = database.ApplyMigrations(s.pgPool)
	require.NoError(s.T(), err, "Failed to run migrations")

	s.repo = database.NewPgUserRepository(s.pgPool, s.logger)
}

// TearDownSuite выполняется один раз после всех тестов в наборе
func (s *UserRepositorySuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
}

// Перед каждым тестом очищаем таблицы БД
func (s *UserRepositorySuite) SetupTest() {
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE users RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err, "Failed to truncate users table")
}

// TestUserRepositorySuite запускает набор тестов
func TestUserRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	// Проверяем доступность Docker перед запуском
	cli, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		t.Skipf("Docker client init error: %v. Ensure Docker is running and accessible.", err)
	}
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Skipf("Docker daemon is not running or accessible: %v", err)
	}
	cli.Close()

	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) newUser(name, username, slug, email string) *models.User {
	return &models.User{
		Name:         name,
		Username:     username,
		Slug:         slug,
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehashfakehashfakehashfakehashfake",
		Image:        "/images/default_avatar.png",
	}
}

// --- Сами Тестовые Функции ---

func (s *UserRepositorySuite) TestCreateAndGetUser() {
	t := s.T()
	ctx := context.Background()

	user := s.newUser("Alice", "alice", "alice", "alice@example.com")

	// 1. Создаем пользователя
	err := s.repo.CreateUser(ctx, user)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID, "CreateUser should fill in the generated ID")
	require.False(t, user.CreatedAt.IsZero())

	// 2. Читаем по ID
	got, err := s.repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)
	require.Equal(t, "alice@example.com", got.Email)
	require.False(t, got.IsAdmin)
	require.False(t, got.IsBanned)

	// 3. Читаем по slug
	bySlug, err := s.repo.GetUserBySlug(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, bySlug.ID)
}

func (s *UserRepositorySuite) TestGetUserByEmailCaseInsensitive() {
	t := s.T()
	ctx := context.Background()

	user := s.newUser("Bob", "bob", "bob", "bob@example.com")
	require.NoError(t, s.repo.CreateUser(ctx, user))

	// Email сравнивается без учета регистра
	got, err := s.repo.GetUserByEmail(ctx, "BOB@Example.COM")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	exists, err := s.repo.ExistsByEmail(ctx, "Bob@EXAMPLE.com")
	require.NoError(t, err)
	require.True(t, exists)
}

func (s *UserRepositorySuite) TestDuplicateEmailMapsToAlreadyExists() {
	t := s.T()
	ctx := context.Background()

	require.NoError(t, s.repo.CreateUser(ctx, s.newUser("Carol", "carol", "carol", "carol@example.com")))

	// Повторная регистрация с тем же email (другой регистр)
	dup := s.newUser("Carol Two", "carol2", "carol2", "CAROL@example.com")
	err := s.repo.CreateUser(ctx, dup)
	require.ErrorIs(t, err, models.ErrUserAlreadyExists)
}

func (s *UserRepositorySuite) TestDuplicateUsernameMapsToUsernameTaken() {
	t := s.T()
	ctx := context.Background()

	require.NoError(t, s.repo.CreateUser(ctx, s.newUser("Dave", "dave", "dave", "dave@example.com")))

	dup := s.newUser("Dave Two", "dave", "dave-two", "dave2@example.com")
	err := s.repo.CreateUser(ctx, dup)
	require.ErrorIs(t, err, models.ErrUsernameTaken)
}

func (s *UserRepositorySuite) TestEmptyUsernamesDoNotCollide() {
	t := s.T()
	ctx := context.Background()

	// Пользователи без username не должны конфликтовать между собой
	require.NoError(t, s.repo.CreateUser(ctx, s.newUser("Eve", "", "eve", "eve@example.com")))
	require.NoError(t, s.repo.CreateUser(ctx, s.newUser("Frank", "", "frank", "frank@example.com")))

	exists, err := s.repo.ExistsByUsername(ctx, "")
	require.NoError(t, err)
	require.False(t, exists, "empty username must never count as taken")
}

func (s *UserRepositorySuite) TestListUsersPaginationAndSearch() {
	t := s.T()
	ctx := context.Background()

	names := []string{"Grace", "Heidi", "Ivan", "Judy", "Mallory"}
	for i, name := range names {
		u := s.newUser(name, "", "user-"+name, name+"@example.com")
		require.NoError(t, s.repo.CreateUser(ctx, u))
		// Гарантируем различимый порядок created_at
		_, err := s.pgPool.Exec(ctx,
			"UPDATE users SET created_at = now() + ($1 || ' seconds')::interval WHERE id = $2", i, u.ID)
		require.NoError(t, err)
	}

	// 1. Первая страница, по 2 на страницу
	page, total, err := s.repo.ListUsers(ctx, 1, 2, "")
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	// Новые первыми
	require.Equal(t, "Mallory", page[0].Name)
	require.Equal(t, "Judy", page[1].Name)

	// 2. Страница за пределами списка схлопывается на последнюю
	last, total, err := s.repo.ListUsers(ctx, 99, 2, "")
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, last, 1)
	require.Equal(t, "Grace", last[0].Name)

	// 3. Поиск без учета регистра
	found, total, err := s.repo.ListUsers(ctx, 1, 10, "grace")
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, found, 1)
	require.Equal(t, "Grace", found[0].Name)
}

func (s *UserRepositorySuite) TestUpdateUserBySlug() {
	t := s.T()
	ctx := context.Background()

	user := s.newUser("Oscar", "oscar", "oscar", "oscar@example.com")
	require.NoError(t, s.repo.CreateUser(ctx, user))

	// 1. Смена username меняет slug
	newUsername := "oscar-prime"
	updated, err := s.repo.UpdateUserBySlug(ctx, "oscar",
		models.UserUpdate{Username: &newUsername}, "oscar-prime")
	require.NoError(t, err)
	require.Equal(t, "oscar-prime", updated.Username)
	require.Equal(t, "oscar-prime", updated.Slug)

	// 2. Старый slug больше не действует
	_, err = s.repo.GetUserBySlug(ctx, "oscar")
	require.ErrorIs(t, err, models.ErrUserNotFound)

	// 3. Обновление несуществующего slug
	name := "Nobody"
	_, err = s.repo.UpdateUserBySlug(ctx, "ghost", models.UserUpdate{Name: &name}, "")
	require.ErrorIs(t, err, models.ErrUserNotFound)
}

func (s *UserRepositorySuite) TestUpdatePasswordHashByEmail() {
	t := s.T()
	ctx := context.Background()

	user := s.newUser("Peggy", "peggy", "peggy", "peggy@example.com")
	require.NoError(t, s.repo.CreateUser(ctx, user))

	err := s.repo.UpdatePasswordHashByEmail(ctx, "PEGGY@example.com", "new-hash")
	require.NoError(t, err)

	got, err := s.repo.GetUserByEmail(ctx, "peggy@example.com")
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)

	err = s.repo.UpdatePasswordHashByEmail(ctx, "nobody@example.com", "x")
	require.ErrorIs(t, err, models.ErrUserNotFound)
}

func (s *UserRepositorySuite) TestSetUserBanStatus() {
	t := s.T()
	ctx := context.Background()

	user := s.newUser("Trent", "trent", "trent", "trent@example.com")
	require.NoError(t, s.repo.CreateUser(ctx, user))

	require.NoError(t, s.repo.SetUserBanStatus(ctx, user.ID, true))
	got, err := s.repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, got.IsBanned)

	require.NoError(t, s.repo.SetUserBanStatus(ctx, user.ID, false))
	got, err = s.repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, got.IsBanned)

	err = s.repo.SetUserBanStatus(ctx, uuid.New(), true)
	require.ErrorIs(t, err, models.ErrUserNotFound)
}

func (s *UserRepositorySuite) TestDeleteUserBySlug() {
	t := s.T()
	ctx := context.Background()

	user := s.newUser("Victor", "victor", "victor", "victor@example.com")
	require.NoError(t, s.repo.CreateUser(ctx, user))

	require.NoError(t, s.repo.DeleteUserBySlug(ctx, "victor"))

	_, err := s.repo.GetUserByID(ctx, user.ID)
	require.ErrorIs(t, err, models.ErrUserNotFound)

	// Повторное удаление
	err = s.repo.DeleteUserBySlug(ctx, "victor")
	require.ErrorIs(t, err, models.ErrUserNotFound)
}
