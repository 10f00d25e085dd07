package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/ImVadimush/brawl-stars-tournament-bot/repositories"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// AuthenticatedPlayer — личность, извлечённая из проверенного токена.
type AuthenticatedPlayer struct {
	ID   int64
	Role models.PlayerRole
}

// CanEditPlayer: свой профиль либо права модератора и выше.
func (a *AuthenticatedPlayer) CanEditPlayer(playerID int64) bool {
	return a.ID == playerID || a.Role.AtLeast(models.RoleModerator)
}

// TokenInput — запрос шлюза мессенджера на токен от имени игрока.
type TokenInput struct {
	GatewayKey string `json:"gateway_key"`
	PlayerID   int64  `json:"player_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
}

type playerClaims struct {
	PlayerID int64  `json:"player_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// IssueToken обменивает общий ключ шлюза на JWT конкретного игрока.
	IssueToken(ctx context.Context, input TokenInput) (string, *models.Player, error)
	ParseToken(tokenString string) (*AuthenticatedPlayer, error)
}

type authService struct {
	playerRepo     repositories.PlayerRepository
	jwtSecret      []byte
	gatewayKeyHash []byte
	ownerID        int64
}

func NewAuthService(playerRepo repositories.PlayerRepository, jwtSecret, gatewayKeyHash string, ownerID int64) AuthService {
	return &authService{
		playerRepo:     playerRepo,
		jwtSecret:      []byte(jwtSecret),
		gatewayKeyHash: []byte(gatewayKeyHash),
		ownerID:        ownerID,
	}
}

func (s *authService) IssueToken(ctx context.Context, input TokenInput) (string, *models.Player, error) {
	if err := bcrypt.CompareHashAndPassword(s.gatewayKeyHash, []byte(input.GatewayKey)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, fmt.Errorf("failed to compare gateway key hash: %w", err)
	}
	if input.PlayerID == 0 {
		return "", nil, ErrValidationFailed
	}

	player := &models.Player{
		ID:        input.PlayerID,
		Username:  input.Username,
		FirstName: input.FirstName,
	}
	if err := s.playerRepo.Upsert(ctx, player); err != nil {
		return "", nil, fmt.Errorf("failed to upsert player: %w", err)
	}

	// Владелец из конфигурации получает роль owner независимо от БД.
	if player.ID == s.ownerID {
		player.Role = models.RoleOwner
	}

	now := time.Now()
	claims := playerClaims{
		PlayerID: player.ID,
		Role:     string(player.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, player, nil
}

func (s *authService) ParseToken(tokenString string) (*AuthenticatedPlayer, error) {
	claims := &playerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrAuthenticationFailed
	}

	role := models.PlayerRole(claims.Role)
	if !models.ValidRole(role) {
		role = models.RoleUser
	}
	return &AuthenticatedPlayer{ID: claims.PlayerID, Role: role}, nil
}
