package account

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"user-directory/rest"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	getAccounts   = "get_accounts"
	getAccount    = "get_account"
	createAccount = "create_account"
	updateAccount = "update_account"

	accountIdKey = "accountId"
)

func InitResource(db *gorm.DB, opts ...ProcessorOption) rest.RouteInitializer {
	return func(router *mux.Router, l logrus.FieldLogger) {
		router.HandleFunc("/users", registerGetAccounts(l, db, opts...)).Methods(http.MethodGet)
		router.HandleFunc("/users", registerCreateAccount(l, db, opts...)).Methods(http.MethodPost)
		router.HandleFunc(fmt.Sprintf("/users/{%s}", accountIdKey), registerGetAccount(l, db, opts...)).Methods(http.MethodGet)
		router.HandleFunc(fmt.Sprintf("/users/{%s}", accountIdKey), registerUpdateAccount(l, db, opts...)).Methods(http.MethodPut)
	}
}

func processor(l logrus.FieldLogger, ctx context.Context, db *gorm.DB, opts ...ProcessorOption) *Processor {
	return NewProcessor(l, ctx, NewStore(db.WithContext(ctx)), opts...)
}

func notFoundBody(id uint32) map[string]string {
	return rest.ErrorBody(fmt.Sprintf("User id %d was not found", id))
}

func registerGetAccounts(l logrus.FieldLogger, db *gorm.DB, opts ...ProcessorOption) http.HandlerFunc {
	return rest.RetrieveSpan(getAccounts, func(ctx context.Context) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ms, err := processor(l, ctx, db, opts...).List()
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			res, err := TransformAll(ms)
			if err != nil {
				l.WithError(err).Errorf("Creating REST model.")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			rest.WriteJSON(l)(w)(http.StatusOK, res)
		}
	})
}

func registerGetAccount(l logrus.FieldLogger, db *gorm.DB, opts ...ProcessorOption) http.HandlerFunc {
	return rest.RetrieveSpan(getAccount, func(ctx context.Context) http.HandlerFunc {
		return rest.ParseId(l, accountIdKey, func(id uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				m, err := processor(l, ctx, db, opts...).GetById(id)
				if errors.Is(err, ErrNotFound) {
					rest.WriteJSON(l)(w)(http.StatusNotFound, notFoundBody(id))
					return
				}
				if err != nil {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				res, err := TransformDetail(m)
				if err != nil {
					l.WithError(err).Errorf("Creating REST model.")
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				rest.WriteJSON(l)(w)(http.StatusOK, res)
			}
		})
	})
}

func registerCreateAccount(l logrus.FieldLogger, db *gorm.DB, opts ...ProcessorOption) http.HandlerFunc {
	return rest.RetrieveSpan(createAccount, func(ctx context.Context) http.HandlerFunc {
		return rest.ParseInput[CreateRestModel](l, func(input CreateRestModel) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				conflict := rest.ErrorBody("Add User failed because username already exists")

				if err := rest.Validate(input); err != nil {
					l.WithError(err).Infof("Rejecting account creation request.")
					rest.WriteJSON(l)(w)(http.StatusConflict, conflict)
					return
				}

				username, password := input.Extract()
				m, err := processor(l, ctx, db, opts...).Create(username, password)
				if err != nil {
					rest.WriteJSON(l)(w)(http.StatusConflict, conflict)
					return
				}

				res, err := Transform(m)
				if err != nil {
					l.WithError(err).Errorf("Creating REST model.")
					rest.WriteJSON(l)(w)(http.StatusConflict, conflict)
					return
				}
				rest.WriteJSON(l)(w)(http.StatusCreated, res)
			}
		})
	})
}

func registerUpdateAccount(l logrus.FieldLogger, db *gorm.DB, opts ...ProcessorOption) http.HandlerFunc {
	return rest.RetrieveSpan(updateAccount, func(ctx context.Context) http.HandlerFunc {
		return rest.ParseId(l, accountIdKey, func(id uint32) http.HandlerFunc {
			return rest.ParseInput[UpdateRestModel](l, func(input UpdateRestModel) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					_, err := processor(l, ctx, db, opts...).Update(id, input.Extract())
					if errors.Is(err, ErrNotFound) {
						rest.WriteJSON(l)(w)(http.StatusNotFound, notFoundBody(id))
						return
					}
					if err != nil {
						w.WriteHeader(http.StatusInternalServerError)
						return
					}
					w.WriteHeader(http.StatusNoContent)
				}
			})
		})
	})
}
