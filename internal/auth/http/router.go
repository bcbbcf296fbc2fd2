package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/service"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/store"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/httpx"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/jwtx"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store     store.Store
	cachePing func(ctx context.Context) error

	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	signer *jwtx.Signer,
	buildVersion string,
	st store.Store,
	cachePing func(ctx context.Context) error,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		cachePing:    cachePing,
		logger:       logger,
	}

	// Default middleware chain applied to every route.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUserInfo()
	r.registerSystem()
}

func (r *Router) registerAuth() {
	login := &LoginHandler{AuthService: r.AuthService}
	register := &RegisterHandler{AuthService: r.AuthService}
	otp := &OtpHandler{AuthService: r.AuthService}

	// Credential-bearing endpoints get the strict profile.
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(login, httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(register, httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /v1/auth/otp/send",
		httpx.Chain(http.HandlerFunc(otp.HandleSend), httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /v1/auth/otp/verify",
		httpx.Chain(http.HandlerFunc(otp.HandleVerify), httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /v1/auth/otp/login",
		httpx.Chain(http.HandlerFunc(otp.HandleLogin), httpx.RateLimitByIP(httpx.StrictLimit)))
}

func (r *Router) registerUserInfo() {
	userinfo := &UserInfoHandler{AuthService: r.AuthService}
	users := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /v1/userinfo",
		httpx.Chain(userinfo,
			httpx.RateLimitByIP(httpx.LenientLimit),
			httpx.AuthnMiddleware(r.signer),
		))
	r.Mux.Handle("GET /v1/users/{id}",
		httpx.Chain(users,
			httpx.RateLimitByIP(httpx.LenientLimit),
			httpx.AuthnMiddleware(r.signer),
		))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.cachePing))
}
