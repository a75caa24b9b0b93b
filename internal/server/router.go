package server

import (
	"log"
	"net/http"
	"time"

	"github.com/nkyriakou/glassfab-oms/internal/auth"
	"github.com/nkyriakou/glassfab-oms/internal/gate"
	"github.com/nkyriakou/glassfab-oms/internal/handlers"
	"github.com/nkyriakou/glassfab-oms/internal/httpx"
	"github.com/nkyriakou/glassfab-oms/internal/ledger"
	"github.com/nkyriakou/glassfab-oms/internal/middleware"
	"github.com/nkyriakou/glassfab-oms/internal/models"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. The ledger service is built once here and injected into every
// handler; no handler opens its own connection.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()
	svc := ledger.New(db)
	g := gate.Default()

	// permit resolves the session user's role and checks the gate before
	// letting a ledger operation through.
	permit := func(perm gate.Permission, next http.HandlerFunc) http.Handler {
		return auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, _ := auth.UserIDFromContext(r.Context())
			var user models.User
			if err := db.Preload("Role").First(&user, uid).Error; err != nil {
				httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			if err := g.Authorize(user.Role.Name, perm); err != nil {
				httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
				return
			}
			next(w, r)
		}))
	}

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	// Order endpoints
	oh := handlers.NewOrderHandler(svc)
	mux.Handle("/orders", methodSwitch(map[string]http.Handler{
		http.MethodGet:  permit(gate.NewPermission("order", gate.ActionList), oh.List),
		http.MethodPost: permit(gate.NewPermission("order", gate.ActionCreate), oh.Create),
	}))
	mux.Handle("/orders/get", permit(gate.NewPermission("order", gate.ActionView), oh.Get))
	mux.Handle("/orders/lines", permit(gate.NewPermission("order", gate.ActionCreate), oh.AddLine))
	mux.Handle("/orders/status", permit(gate.NewPermission("order", gate.ActionUpdate), oh.UpdateStatus))
	mux.Handle("/orders/payments", permit(gate.NewPermission("payment", gate.ActionCreate), oh.RecordPayment))

	// Supplier endpoints
	sh := handlers.NewSupplierHandler(svc)
	mux.Handle("/suppliers", methodSwitch(map[string]http.Handler{
		http.MethodGet:  permit(gate.NewPermission("supplier", gate.ActionList), sh.List),
		http.MethodPost: permit(gate.NewPermission("supplier", gate.ActionCreate), sh.Create),
	}))

	// Delivery endpoints
	dh := handlers.NewDeliveryHandler(svc)
	mux.Handle("/deliveries", methodSwitch(map[string]http.Handler{
		http.MethodGet:  permit(gate.NewPermission("delivery", gate.ActionList), dh.List),
		http.MethodPost: permit(gate.NewPermission("delivery", gate.ActionCreate), dh.Link),
	}))
	mux.Handle("/deliveries/received", permit(gate.NewPermission("delivery", gate.ActionUpdate), dh.MarkReceived))

	// Reports
	rh := handlers.NewReportHandler(svc)
	mux.Handle("/reports/balance", permit(gate.NewPermission("report", gate.ActionView), rh.Balance))
	mux.Handle("/reports/deliveries", permit(gate.NewPermission("report", gate.ActionView), rh.Deliveries))

	// Exports
	eh := handlers.NewExportHandler(svc)
	mux.Handle("/orders/export.csv", permit(gate.NewPermission("order", gate.ActionList), eh.OrdersCSV))
	mux.Handle("/orders/export.xlsx", permit(gate.NewPermission("order", gate.ActionList), eh.OrdersXLSX))
	mux.Handle("/reports/balance.csv", permit(gate.NewPermission("report", gate.ActionView), eh.BalanceCSV))

	//revive:disable:unused-parameter
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("Glassfab OMS API")); werr != nil {
			_ = werr
		}
	})
	//revive:enable:unused-parameter

	return middleware.Prefs(auth.Middleware(withRecover(withLogging(mux))))
}

func methodSwitch(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.Method]; ok {
			h.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
