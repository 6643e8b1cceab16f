package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"storefront-server/internal/config"
	"storefront-server/internal/interfaces"
	"storefront-server/internal/models"
	"storefront-server/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure userServiceImpl implements UserService
var _ UserService = (*userServiceImpl)(nil)

type userServiceImpl struct {
	userRepo interfaces.UserRepository
	mailer   interfaces.Mailer
	cfg      *config.Config
	logger   *zap.Logger
}

// NewUserService creates a new instance of userServiceImpl.
func NewUserService(userRepo interfaces.UserRepository, mailer interfaces.Mailer, cfg *config.Config, logger *zap.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
		logger:   logger.Named("UserService"),
	}
}

// Register turns a registration request into an activation token and mails
// the link. The pending profile lives only inside the token until Activate.
func (s *userServiceImpl) Register(ctx context.Context, input RegisterInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	logFields := []zap.Field{zap.String("username", username), zap.String("email", email)}
	s.logger.Info("Processing registration", logFields...)

	if _, err := mail.ParseAddress(email); err != nil {
		s.logger.Warn("Registration attempt with invalid email format", append(logFields, zap.Error(err))...)
		return "", fmt.Errorf("invalid email format: %w", models.ErrInvalidInput)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Error checking existing email during registration", append(logFields, zap.Error(err))...)
		return "", fmt.Errorf("error checking existing email: %w", err)
	}
	if exists {
		s.logger.Warn("Registration attempt for existing email", logFields...)
		return "", models.ErrUserAlreadyExists
	}

	if username != "" {
		taken, err := s.userRepo.ExistsByUsername(ctx, username)
		if err != nil {
			s.logger.Error("Error checking existing username during registration", append(logFields, zap.Error(err))...)
			return "", fmt.Errorf("error checking existing username: %w", err)
		}
		if taken {
			s.logger.Warn("Registration attempt for existing username", logFields...)
			return "", models.ErrUsernameTaken
		}
	}

	hashedPassword, err := hashPassword(input.Password, s.cfg.PasswordPepper)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", append(logFields, zap.Error(err))...)
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	image := input.Image
	if image == "" {
		image = s.cfg.DefaultUserImage
	}

	// Полный профиль будущего аккаунта живет только внутри токена
	payload := map[string]interface{}{
		"name":     input.Name,
		"username": username,
		"email":    email,
		"password": hashedPassword,
		"address":  input.Address,
		"phone":    input.Phone,
		"image":    image,
		"slug":     makeUserSlug(username, input.Name),
	}

	activationToken, err := token.Issue(payload, s.cfg.ActivationSecret, s.cfg.ActivationTokenTTL)
	if err != nil {
		s.logger.Error("Failed to issue activation token", append(logFields, zap.Error(err))...)
		return "", fmt.Errorf("failed to issue activation token: %w", err)
	}

	html := fmt.Sprintf(`
		<h1>Hello %s</h1>
		<p>Please activate your account by :
		<a href="%s/users/activate/%s">
		Click here to activate your account</a></p>`, input.Name, s.cfg.PublicURL, activationToken)

	// Регистрация не считается успешной, пока письмо не отправлено
	if err := s.mailer.Send(ctx, email, "Account activation link", html); err != nil {
		s.logger.Error("Failed to send activation email", append(logFields, zap.Error(err))...)
		return "", fmt.Errorf("%w: %v", models.ErrMailDelivery, err)
	}

	s.logger.Info("Activation email sent", logFields...)
	return activationToken, nil
}

// Activate verifies the token and materializes the account. The uniqueness
// re-check makes a replayed token fail with a conflict; under a race the
// users unique index is the authoritative backstop.
func (s *userServiceImpl) Activate(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, models.ErrTokenMissing
	}

	payload, err := token.Verify(tokenString, s.cfg.ActivationSecret)
	if err != nil {
		s.logger.Warn("Activation token verification failed", zap.Error(err))
		return nil, err
	}

	pending := pendingUserFromPayload(payload)
	if pending.Email == "" || pending.PasswordHash == "" || pending.Slug == "" {
		s.logger.Warn("Activation token payload is incomplete")
		return nil, models.ErrTokenInvalid
	}

	logFields := []zap.Field{zap.String("email", pending.Email), zap.String("slug", pending.Slug)}

	exists, err := s.userRepo.ExistsByEmail(ctx, pending.Email)
	if err != nil {
		s.logger.Error("Error re-checking email uniqueness during activation", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("error checking existing email: %w", err)
	}
	if exists {
		s.logger.Warn("Activation attempt for already-activated account", logFields...)
		return nil, models.ErrUserAlreadyExists
	}

	// Админские флаги из токена не читаются никогда
	user := &models.User{
		Name:         pending.Name,
		Username:     pending.Username,
		Slug:         pending.Slug,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		Address:      pending.Address,
		Phone:        pending.Phone,
		Image:        pending.Image,
		IsAdmin:      false,
		IsBanned:     false,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, models.ErrUserAlreadyExists) && !errors.Is(err, models.ErrUsernameTaken) {
			s.logger.Error("Failed to create user during activation", append(logFields, zap.Error(err))...)
		}
		return nil, err
	}

	s.logger.Info("User activated successfully", append(logFields, zap.String("userID", user.ID.String()))...)
	return user, nil
}

// ForgotPassword issues a reset token and mails the link.
func (s *userServiceImpl) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	log := s.logger.With(zap.String("email", email))
	log.Info("Processing forgot-password request")

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error("Error checking email for password reset", zap.Error(err))
		return "", fmt.Errorf("error checking existing email: %w", err)
	}
	if !exists {
		log.Warn("Password reset requested for unknown email")
		return "", models.ErrUserNotFound
	}

	resetToken, err := token.Issue(map[string]interface{}{"email": email}, s.cfg.ActivationSecret, s.cfg.ResetTokenTTL)
	if err != nil {
		log.Error("Failed to issue reset token", zap.Error(err))
		return "", fmt.Errorf("failed to issue reset token: %w", err)
	}

	html := fmt.Sprintf(`
		<h1>Hello</h1>
		<p>Please reset your password by :
		<a href="%s/users/reset-password/%s">
		Click here to reset your password</a></p>`, s.cfg.PublicURL, resetToken)

	if err := s.mailer.Send(ctx, email, "Reset password link", html); err != nil {
		log.Error("Failed to send reset email", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrMailDelivery, err)
	}

	log.Info("Password reset email sent")
	return resetToken, nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *userServiceImpl) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	if tokenString == "" {
		return models.ErrTokenMissing
	}

	payload, err := token.Verify(tokenString, s.cfg.ActivationSecret)
	if err != nil {
		s.logger.Warn("Reset token verification failed", zap.Error(err))
		return err
	}

	email, _ := payload["email"].(string)
	if email == "" {
		s.logger.Warn("Reset token payload has no email")
		return models.ErrTokenInvalid
	}
	log := s.logger.With(zap.String("email", email))

	hashedPassword, err := hashPassword(newPassword, s.cfg.PasswordPepper)
	if err != nil {
		log.Error("Failed to hash new password during reset", zap.Error(err))
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHashByEmail(ctx, email, hashedPassword); err != nil {
		// ErrUserNotFound уже залогирован репозиторием
		return err
	}

	log.Info("Password reset successfully")
	return nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, page, limit int, search string) ([]models.User, *models.Pagination, error) {
	users, count, err := s.userRepo.ListUsers(ctx, page, limit, search)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, nil, err
	}
	current, _, totalPages := models.ClampPage(page, limit, count)
	return users, &models.Pagination{TotalPages: totalPages, CurrentPage: current, TotalItems: count}, nil
}

func (s *userServiceImpl) GetUserBySlug(ctx context.Context, slug string) (*models.User, error) {
	return s.userRepo.GetUserBySlug(ctx, slug)
}

// UpdateUserBySlug applies a partial profile update. Changing the username
// re-derives the slug.
func (s *userServiceImpl) UpdateUserBySlug(ctx context.Context, slug string, upd models.UserUpdate) (*models.User, error) {
	log := s.logger.With(zap.String("slug", slug))

	newSlug := slug
	if upd.Username != nil && *upd.Username != "" {
		current, err := s.userRepo.GetUserBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		// Повторная отправка собственного username не считается конфликтом
		if *upd.Username != current.Username {
			taken, err := s.userRepo.ExistsByUsername(ctx, *upd.Username)
			if err != nil {
				log.Error("Error checking username availability during update", zap.Error(err))
				return nil, fmt.Errorf("error checking existing username: %w", err)
			}
			if taken {
				return nil, models.ErrUsernameTaken
			}
		}
		newSlug = makeSlug(*upd.Username)
	}

	user, err := s.userRepo.UpdateUserBySlug(ctx, slug, upd, newSlug)
	if err != nil {
		return nil, err
	}
	log.Info("User updated successfully", zap.String("userID", user.ID.String()))
	return user, nil
}

func (s *userServiceImpl) DeleteUserBySlug(ctx context.Context, slug string) error {
	log := s.logger.With(zap.String("slug", slug))
	if err := s.userRepo.DeleteUserBySlug(ctx, slug); err != nil {
		return err
	}
	log.Info("User deleted successfully")
	return nil
}

// BanUser sets the user's status to banned.
func (s *userServiceImpl) BanUser(ctx context.Context, userID uuid.UUID) error {
	log := s.logger.With(zap.String("userID", userID.String()))
	if err := s.userRepo.SetUserBanStatus(ctx, userID, true); err != nil {
		log.Error("Failed to set user ban status", zap.Error(err), zap.Bool("isBanned", true))
		return err
	}
	log.Info("User banned successfully")
	return nil
}

// UnbanUser sets the user's status to not banned.
func (s *userServiceImpl) UnbanUser(ctx context.Context, userID uuid.UUID) error {
	log := s.logger.With(zap.String("userID", userID.String()))
	if err := s.userRepo.SetUserBanStatus(ctx, userID, false); err != nil {
		log.Error("Failed to set user ban status", zap.Error(err), zap.Bool("isBanned", false))
		return err
	}
	log.Info("User unbanned successfully")
	return nil
}

// pendingUserFromPayload reads the activation payload back into a typed
// profile. Unknown or extra keys are ignored.
func pendingUserFromPayload(payload map[string]interface{}) models.PendingUser {
	str := func(key string) string {
		v, _ := payload[key].(string)
		return v
	}
	return models.PendingUser{
		Name:         str("name"),
		Username:     str("username"),
		Slug:         str("slug"),
		Email:        str("email"),
		PasswordHash: str("password"),
		Address:      str("address"),
		Phone:        str("phone"),
		Image:        str("image"),
	}
}
