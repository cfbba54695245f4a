package handler

import (
	"log/slog"
	"net/http"

	"github.com/office-booking-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	empHandler     *EmployeeHandler
	resHandler     *ResourceHandler
	bookingHandler *BookingHandler
	staticDir      string
}

// NewRouter создаёт новый роутер. Пустой staticDir отключает раздачу фронтенда.
func NewRouter(
	empHandler *EmployeeHandler,
	resHandler *ResourceHandler,
	bookingHandler *BookingHandler,
	staticDir string,
	logger *slog.Logger,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		logger:         logger,
		empHandler:     empHandler,
		resHandler:     resHandler,
		bookingHandler: bookingHandler,
		staticDir:      staticDir,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	// Сотрудники
	r.collection("/employees", r.empHandler.List, r.empHandler.Create)
	r.item("/employees", r.empHandler.GetByID, r.empHandler.Update, r.empHandler.Delete)

	// Ресурсы
	r.collection("/resources", r.resHandler.List, r.resHandler.Create)
	r.item("/resources", r.resHandler.GetByID, r.resHandler.Update, r.resHandler.Delete)

	// Бронирования. Фиксированные сегменты приоритетнее {id}.
	r.collection("/bookings", r.bookingHandler.List, r.bookingHandler.Create)
	r.api("GET /bookings/today", r.bookingHandler.Today)
	r.api("GET /bookings/by_resource/{id}", r.bookingHandler.ByResource)
	r.api("GET /bookings/by_employee/{id}", r.bookingHandler.ByEmployee)
	r.api("GET /bookings/report/resource_usage", r.bookingHandler.ResourceUsage)
	r.item("/bookings", r.bookingHandler.GetByID, r.bookingHandler.Update, r.bookingHandler.Delete)

	// Health check
	r.api("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if r.staticDir != "" {
		r.mux.Handle("GET /", newSPAHandler(r.staticDir))
	} else {
		// Только GET: для известных путей с чужим методом ServeMux сам ответит 405
		r.api("GET /", func(w http.ResponseWriter, req *http.Request) {
			responder{logger: r.logger}.respondError(w, http.StatusNotFound, "not found", codeNotFound, "")
		})
	}

	// Применяем middleware
	var handler http.Handler = r.mux
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// api регистрирует JSON-маршрут
func (r *Router) api(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, middleware.ContentType(h))
}

// collection регистрирует список и создание, с завершающим слешем и без
func (r *Router) collection(prefix string, list, create http.HandlerFunc) {
	for _, path := range []string{prefix, prefix + "/{$}"} {
		r.api("GET "+path, list)
		r.api("POST "+path, create)
	}
}

// item регистрирует чтение, обновление и удаление по id
func (r *Router) item(prefix string, get, update, remove http.HandlerFunc) {
	path := prefix + "/{id}"
	r.api("GET "+path, get)
	r.api("PUT "+path, update)
	r.api("PATCH "+path, update)
	r.api("DELETE "+path, remove)
}
