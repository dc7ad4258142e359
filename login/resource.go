package login

import (
	"context"
	"net/http"

	"user-directory/account"
	"user-directory/rest"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	createLogin = "create_login"

	loginSuccessful = "Login successful"
	loginFailed     = "Invalid username or password"
	loginError      = "An error occurred during the login process"
)

func InitResource(db *gorm.DB) rest.RouteInitializer {
	return func(router *mux.Router, l logrus.FieldLogger) {
		router.HandleFunc("/login", registerCreateLogin(l, db)).Methods(http.MethodPost)
	}
}

func registerCreateLogin(l logrus.FieldLogger, db *gorm.DB) http.HandlerFunc {
	return rest.RetrieveSpan(createLogin, func(ctx context.Context) http.HandlerFunc {
		return rest.ParseInput[InputRestModel](l, func(input InputRestModel) http.HandlerFunc {
			return handleCreateLogin(l, db)(ctx)(input)
		})
	})
}

func handleCreateLogin(l logrus.FieldLogger, db *gorm.DB) func(ctx context.Context) func(input InputRestModel) http.HandlerFunc {
	return func(ctx context.Context) func(input InputRestModel) http.HandlerFunc {
		return func(input InputRestModel) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				p := account.NewProcessor(l, ctx, account.NewStore(db.WithContext(ctx)))
				ok, err := p.Authenticate(input.Username, input.Password)
				if err != nil {
					rest.WriteText(l)(w)(http.StatusInternalServerError, loginError)
					return
				}
				if !ok {
					rest.WriteText(l)(w)(http.StatusBadRequest, loginFailed)
					return
				}
				rest.WriteText(l)(w)(http.StatusOK, loginSuccessful)
			}
		}
	}
}
