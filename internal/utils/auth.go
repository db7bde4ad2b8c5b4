package utils

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/repos"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

func NormalizeInput(s string) string {
	return strings.TrimSpace(s)
}

func NormalizeInputPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func NormalizeUserFields(ctx context.Context, user *types.User) {
	user.Email = strings.ToLower(NormalizeInput(user.Email))
	user.PhoneNumber = NormalizeInputPtr(user.PhoneNumber)
	user.FirstName = NormalizeInput(user.FirstName)
	user.LastName = NormalizeInput(user.LastName)
	user.Region = strings.ToLower(NormalizeInput(user.Region))
}

func ValidateRegistration(ctx context.Context, userRepo repos.UserRepo, log *logger.Logger, user *types.User) error {
	if user == nil {
		return fmt.Errorf("no user given, cannot proceed any further")
	}
	if user.Email == "" {
		return fmt.Errorf("an email is required to register")
	}
	emailExists, err := userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		log.Warn("Failed to check if user email exists. Returning an error.", "error", err)
		return fmt.Errorf("failed checking user email '%s' existence: %w", user.Email, err)
	}
	if emailExists {
		return fmt.Errorf("email is already in use")
	}
	if user.PhoneNumber != nil && *user.PhoneNumber != "" {
		phoneExists, err := userRepo.PhoneNumberExists(ctx, nil, *user.PhoneNumber)
		if err != nil {
			log.Warn("Failed to check if user phone number exists. Returning an error.", "error", err)
			return fmt.Errorf("failed checking user phone number '%s' existence: %w", *user.PhoneNumber, err)
		}
		if phoneExists {
			return fmt.Errorf("phone number is already in use")
		}
	}
	if user.Password == "" {
		return fmt.Errorf("a password is required to register")
	}
	if user.FirstName == "" {
		return fmt.Errorf("a first name is required to register")
	}
	if user.LastName == "" {
		return fmt.Errorf("a last name is required to register")
	}
	return nil
}

func ValidateLogin(ctx context.Context, log *logger.Logger, email, password string) error {
	if email == "" {
		return fmt.Errorf("an email is required to log in")
	}
	if password == "" {
		return fmt.Errorf("a password is required to log in")
	}
	return nil
}

func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Warn("Failed to hash password for user. Returning error", "error", err)
		return fmt.Errorf("failed to hash password for user")
	}
	user.Password = string(hashedPassword)
	return nil
}
