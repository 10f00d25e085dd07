package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed       = errors.New("validation failed")
	ErrInvalidFormat          = errors.New("invalid tournament format")
	ErrInvalidWinsNeeded      = errors.New("wins needed must be between 1 and 5")
	ErrInvalidModes           = errors.New("invalid game mode selection for this format")
	ErrInvalidSide            = errors.New("match side must be team1 or team2")
	ErrInvalidLeaderboard     = errors.New("unknown leaderboard category")
	ErrNegativeTrophies       = errors.New("trophies cannot be negative")
	ErrClanNameTooLong        = errors.New("clan name is too long")
	ErrInvalidRole            = errors.New("invalid role")
	ErrScheduleTimeInPast     = errors.New("scheduled time must be in the future")
	ErrTournamentNotReady     = errors.New("tournament start conditions are not met")
	ErrRegistrationClosed     = errors.New("tournament registration is closed")
	ErrTournamentNotActive    = errors.New("tournament is not active")
	ErrAlreadyJoined          = errors.New("player already joined this tournament")
	ErrNotJoined              = errors.New("player is not registered for this tournament")
	ErrMatchAlreadyDecided    = errors.New("match already has a winner")
	ErrTournamentExists       = errors.New("chat already has an active tournament")
	ErrTournamentNotFound     = errors.New("chat has no active tournament")
	ErrMatchNotFound          = errors.New("match not found in the active round")
	ErrPlayerNotFound         = errors.New("player not found")
	ErrScheduleNotFound       = errors.New("scheduled tournament not found")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrOwnerRoleImmutable   = errors.New("owner role cannot be changed")
)
