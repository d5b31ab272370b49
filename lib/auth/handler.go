package authhandler

import (
	"time"

	"template-approval-backend/db"
	authstore "template-approval-backend/lib/auth/store"
	authutils "template-approval-backend/lib/utils/auth-utils"
	authapimodels "template-approval-backend/models/api/auth"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Provider validates credentials and issues a role-carrying token. The role
// travels in the JWT so route gating stays a capability check instead of
// username comparisons.
type Provider interface {
	Login(userName, password string) (response authapimodels.JWTResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: authstore.NewInstance(db.DB),
	}
}

type impl struct {
	store authstore.Provider
}

func (i impl) Login(userName, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("username", userName)
	user, err := i.store.FindByUserName(userName)
	if err != nil {
		logger.
			WithError(err).
			Error("failed to look the user up")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive {
		logger.Debug("unknown or inactive user")
		return authapimodels.JWTResponse{}, errors.New("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		logger.Debug("password check failed")
		return authapimodels.JWTResponse{}, errors.New("invalid credentials")
	}
	tokenString, err := authutils.GetToken(user.ID, user.UserName, user.Role)
	if err != nil {
		logger.WithError(err).Error("failed to issue a JWT")
		return authapimodels.JWTResponse{}, err
	}
	err = i.store.Update(user.ID, map[string]interface{}{"LastLogin": time.Now()})
	if err != nil {
		logger.
			WithError(err).
			Error("failed to update the last login time")
	}
	return authapimodels.JWTResponse{
		Token: tokenString,
		Role:  string(user.Role),
	}, nil
}
