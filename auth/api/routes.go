package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Mount registers the sign-in endpoints on router. None of them is behind
// Protect.
func (s *SecurityRealm) Mount(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/signin", s.SignInForm)
	router.HandlerFunc(http.MethodPost, "/api/auth/signin", s.SignIn)
	router.HandlerFunc(http.MethodPost, "/api/auth/signout", s.SignOut)
	router.HandlerFunc(http.MethodGet, "/api/auth/status", s.Status)
	router.HandlerFunc(http.MethodPost, "/api/auth/forgot-password", s.ForgotPassword)
}
