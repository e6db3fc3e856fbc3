package handlers

import (
	intconfig "backend/internal/config"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// API wires env-derived dependencies into the handler set. Services are
// built per request so every log line carries the request id.
type API struct {
	Env intconfig.Env
}

func New(env intconfig.Env) API {
	return API{Env: env}
}

func (a API) trips(c *gin.Context) services.TripService {
	return services.TripService{
		Trips:     a.tripRepo(),
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{
		Bookings: a.bookingRepo(),
		Trips:    a.tripRepo(),
		Links: services.PaymentLinks{
			Link2500: a.Env.WaveLink2500,
			Link3000: a.Env.WaveLink3000,
		},
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) auth(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:         repositories.UserRepository{Timeout: a.Env.StorageTimeout},
		Secret:        []byte(a.Env.JWTSecret),
		TokenTTL:      a.Env.TokenTTL,
		PromoteSecret: a.Env.AdminPromoteSecret,
		RequestID:     middleware.GetRequestID(c),
	}
}

func (a API) stats(c *gin.Context) services.StatsService {
	return services.StatsService{
		Stats:     repositories.StatsRepository{Timeout: a.Env.StorageTimeout},
		Bookings:  a.bookingRepo(),
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) exports(c *gin.Context) services.ExportService {
	return services.ExportService{
		Trips:     a.tripRepo(),
		Bookings:  a.bookingRepo(),
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) docs(c *gin.Context) services.DocsService {
	return services.DocsService{
		Bookings:  a.bookingRepo(),
		Trips:     a.tripRepo(),
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) tripRepo() repositories.TripRepository {
	return repositories.TripRepository{Timeout: a.Env.StorageTimeout}
}

func (a API) bookingRepo() repositories.BookingRepository {
	return repositories.BookingRepository{Timeout: a.Env.StorageTimeout}
}
