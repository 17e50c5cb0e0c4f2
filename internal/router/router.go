package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "petcare-companion/docs"
	"petcare-companion/internal/account"
	"petcare-companion/internal/adoptions"
	"petcare-companion/internal/dashboard"
	"petcare-companion/internal/finance"
	"petcare-companion/internal/middleware"
	"petcare-companion/internal/mypets"
	"petcare-companion/internal/neighborhood"
	"petcare-companion/internal/notify"
	"petcare-companion/internal/page"
	"petcare-companion/internal/profile"
)

type Options struct {
	Deps page.Deps

	// Opcional: si viene, expone /notifications sobre esta cola.
	Notifications *notify.Queue
}

func NewRouter(opts Options) http.Handler {
	deps := opts.Deps.WithDefaults()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.Recover(deps.Log))

	r.Use(middleware.SessionContext(deps.Session))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Sin sesión
	account.RegisterRoutes(r, account.New(deps))
	if opts.Notifications != nil {
		registerNotifications(r, opts.Notifications)
	}

	// Pantallas: una instancia por proceso (una sola sesión)
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireSession)

		dashboard.RegisterRoutes(pr, dashboard.New(deps))
		mypets.RegisterRoutes(pr, mypets.New(deps))
		adoptions.RegisterRoutes(pr, adoptions.New(deps))
		finance.RegisterRoutes(pr, finance.New(deps))
		neighborhood.RegisterRoutes(pr, neighborhood.New(deps))
		profile.RegisterRoutes(pr, profile.New(deps))
	})

	return r
}
