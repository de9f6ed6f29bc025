package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/airtickets/internal/auth"
	"github.com/Domenick1991/airtickets/internal/service/account"
	"github.com/Domenick1991/airtickets/internal/service/flights"
	"github.com/Domenick1991/airtickets/internal/service/tickets"
)

// NewRouter wires the HTTP surface. Ticket confirmation is the only
// protected group; password reset is reachable without a credential by
// design.
func NewRouter(verifier *auth.Verifier, requiredRole string, flightSvc flights.FlightUseCase, ticketSvc tickets.TicketUseCase, accountSvc account.AccountUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	NewFlightHandler(flightSvc).Register(router.Group("/flights"))

	ticketsGroup := router.Group("/tickets", auth.Authenticate(verifier), auth.RequireRole(requiredRole))
	NewTicketHandler(ticketSvc).Register(ticketsGroup)

	NewAccountHandler(accountSvc).Register(router.Group("/"))

	return router
}
