package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskboard/backend/config"
	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/models"
	"github.com/taskboard/backend/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a new user account
func Register(req dto.RegisterRequest) (models.UserData, error) {
	userRepo := repositories.NewUserRepository()

	count, err := userRepo.CountByEmailOrUsername(req.Email, req.Username, "")
	if err != nil {
		return models.UserData{}, models.InternalError(err)
	}
	if count > 0 {
		return models.UserData{}, models.ValidationError("email or username is already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserData{}, models.InternalError(err)
	}

	role := models.RoleMember
	if req.Role != nil && *req.Role != "" {
		role = models.Role(*req.Role)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Bio:      req.Bio,
		Role:     role,
		Avatar:   req.Avatar,
	}
	if req.FirstName != "" {
		user.FirstName = &req.FirstName
	}
	if req.LastName != "" {
		user.LastName = &req.LastName
	}

	user, err = userRepo.Create(user)
	if err != nil {
		return models.UserData{}, models.InternalError(err)
	}

	return user.PublicData(), nil
}

// Login authenticates a user and returns a signed token
func Login(req dto.LoginRequest) (dto.AuthResponse, error) {
	userRepo := repositories.NewUserRepository()

	user, err := userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, models.NewError(models.ErrCodeUnauthorized, "invalid email or password")
		}
		return dto.AuthResponse{}, models.InternalError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return dto.AuthResponse{}, models.NewError(models.ErrCodeUnauthorized, "invalid email or password")
	}

	token, expiresAt, err := GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return dto.AuthResponse{}, models.InternalError(err)
	}

	return dto.AuthResponse{
		Token:     token,
		User:      user.PublicData(),
		ExpiresAt: expiresAt,
	}, nil
}

// GetUser retrieves a user's public profile by ID
func GetUser(id string) (models.UserData, error) {
	user, err := repositories.NewUserRepository().FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserData{}, models.NotFoundError("user not found")
		}
		return models.UserData{}, models.InternalError(err)
	}
	return user.PublicData(), nil
}

// UpdateProfile patches the authenticated user's profile fields
func UpdateProfile(userID string, req dto.UpdateProfileRequest) (models.UserData, error) {
	userRepo := repositories.NewUserRepository()

	if _, err := userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserData{}, models.NotFoundError("user not found")
		}
		return models.UserData{}, models.InternalError(err)
	}

	fields := map[string]interface{}{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Username != nil || req.Email != nil {
		email, username := "", ""
		if req.Email != nil {
			email = *req.Email
		}
		if req.Username != nil {
			username = *req.Username
		}
		count, err := userRepo.CountByEmailOrUsername(email, username, userID)
		if err != nil {
			return models.UserData{}, models.InternalError(err)
		}
		if count > 0 {
			return models.UserData{}, models.ValidationError("email or username is already in use")
		}
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
		if err := userRepo.Updates(userID, fields); err != nil {
			return models.UserData{}, models.InternalError(err)
		}
	}

	return GetUser(userID)
}

// GenerateToken generates a new JWT token for a user
func GenerateToken(userID, email, role string) (string, time.Time, error) {
	secretKey := config.GetEnv("JWT_SECRET", "")
	if secretKey == "" {
		return "", time.Time{}, errors.New("JWT_SECRET not set in environment")
	}

	expiresAt := time.Now().Add(24 * time.Hour)

	claims := dto.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims if valid
func ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	secretKey := config.GetEnv("JWT_SECRET", "")
	if secretKey == "" {
		return nil, errors.New("JWT_SECRET not set in environment")
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
