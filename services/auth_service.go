package services

import (
	"errors"

	"github.com/jwsummers/OnTrack/config"
	"github.com/jwsummers/OnTrack/models"
	"github.com/jwsummers/OnTrack/utils"
)

func RegisterUser(email, password, displayName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:       email,
		Password:    hashedPassword,
		DisplayName: displayName,
	}

	result := config.DB.Create(&user)
	return result.Error
}

func AuthenticateUser(email, password string) (*models.User, string, error) {
	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, "", errors.New("invalid email or password")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.Email)
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
