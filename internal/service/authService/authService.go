package authService

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"dataroom-service/internal/model/user"
	"dataroom-service/internal/repository/sessionRepo"
	"dataroom-service/internal/repository/userRepo"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Сделал регулярку для проверки почты на валидность
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	refreshTokenExpireTime = 7 * 24 * time.Hour
	jwtTokenExpireTime     = 3 * time.Hour
)

type AuthService struct {
	userRepo     *userRepo.UserRepo
	jwtSecretKey string
	sessions     *sessionRepo.SessionRepo
}

func New(userRepo *userRepo.UserRepo, jwtSecret string, sessions *sessionRepo.SessionRepo) *AuthService {
	return &AuthService{userRepo: userRepo, jwtSecretKey: jwtSecret, sessions: sessions}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	if email == "" || password == "" {
		return uuid.Nil, fmt.Errorf("invalid format")
	}

	if !emailRegex.MatchString(email) {
		return uuid.Nil, fmt.Errorf("invalid email format")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return uuid.Nil, fmt.Errorf("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.Create(ctx, email, string(hashedPassword))
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, *user.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", "", nil, errors.New("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, errors.New("invalid credentials")
	}

	accessToken, err := s.generateJWT(u)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken(ctx, u.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, u, nil
}

// accessClaims несёт почту владельца прямо в токене: хендлерам не нужен
// поход в базу, чтобы засеять профиль.
type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *AuthService) generateJWT(u *user.User) (string, error) {
	payload := accessClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(jwtTokenExpireTime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	tokenStr, err := token.SignedString([]byte(s.jwtSecretKey))
	if err != nil {
		return "", err
	}
	return tokenStr, nil
}

// GetOwnerByToken возвращает идентификатор и почту владельца из access-токена.
// Токен из чёрного списка невалиден, даже если подпись в порядке.
func (s *AuthService) GetOwnerByToken(ctx context.Context, token string) (uuid.UUID, string, bool) {
	blacklisted, err := s.sessions.IsAccessTokenBlacklisted(ctx, token)
	if err != nil || blacklisted {
		return uuid.Nil, "", false
	}

	payload := &accessClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, payload, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecretKey), nil
	})

	if err != nil || !parsedToken.Valid {
		return uuid.Nil, "", false
	}

	uid, err := uuid.Parse(payload.Subject)
	if err != nil {
		return uuid.Nil, "", false
	}

	return uid, payload.Email, true
}

func (s *AuthService) generateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	refreshToken := uuid.NewString()
	err := s.sessions.SaveRefreshToken(ctx, userID, refreshToken, refreshTokenExpireTime)
	if err != nil {
		return "", err
	}
	return refreshToken, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, accessToken string) error {
	if err := s.sessions.DeleteRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	payload := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(accessToken, payload, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if err := s.sessions.BlacklistAccessToken(ctx, accessToken, payload.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}

func (s *AuthService) RefreshToken(ctx context.Context, userID uuid.UUID, oldRefreshToken string) (string, string, error) {
	valid, err := s.sessions.ValidateRefreshToken(ctx, userID, oldRefreshToken)
	if err != nil || !valid {
		return "", "", fmt.Errorf("expired refresh token")
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if u == nil {
		return "", "", errors.New("user not found")
	}

	newAccessToken, err := s.generateJWT(u)
	if err != nil {
		return "", "", err
	}

	newRefreshToken, err := s.generateRefreshToken(ctx, userID)
	if err != nil {
		return "", "", err
	}

	return newAccessToken, newRefreshToken, nil
}

// для тестов
// ---------------------------------------
func (s *AuthService) GenerateJWT(u *user.User) (string, error) {
	return s.generateJWT(u)
}

func (s *AuthService) Sessions() *sessionRepo.SessionRepo {
	return s.sessions
}

//---------------------------------------
