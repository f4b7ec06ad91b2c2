package authhandler

import (
	log "github.com/sirupsen/logrus"

	"fin-tools-backend/db"
	userstore "fin-tools-backend/lib/users/store"
	authutils "fin-tools-backend/lib/utils/auth-utils"
	authapimodels "fin-tools-backend/models/api/auth"
)

type Provider interface {
	Login(req authapimodels.LoginRequest) (response authapimodels.TokenResponse, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: userstore.NewInstance(db.DB),
	}
}

type impl struct {
	store userstore.Provider
}

func (i impl) Login(req authapimodels.LoginRequest) (response authapimodels.TokenResponse, hMsg string, err error) {
	if err = req.Validate(); err != nil {
		return response, err.Error(), nil
	}
	logger := log.WithField("email", req.Email)
	user, err := i.store.FindByEmail(req.Email)
	if err != nil {
		logger.WithError(err).Error("user lookup by email failed")
		return response, "", err
	}
	if user == nil || !user.Active {
		logger.Debug("no active user with this email")
		return response, "wrong email or password", nil
	}
	if authutils.GetMD5Hash(req.Password) != user.PasswordHash {
		logger.Debug("password check failed")
		return response, "wrong email or password", nil
	}
	accessToken, err := authutils.GetToken(user.ID, user.GetFullName(), user.OrganizationID, user.Role)
	if err != nil {
		logger.WithError(err).Error("failed to issue access token")
		return response, "", err
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		logger.WithError(err).Error("failed to issue refresh token")
		return response, "", err
	}
	return authapimodels.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, "", nil
}
