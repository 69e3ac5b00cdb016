package api

import (
	"context"
	"net/http"
	"time"

	"lotobank/application"
	"lotobank/translate"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Server exposes the bank management API over HTTP
type Server struct {
	router      *gin.Engine
	translator  *translate.Translator
	settlement  *application.SettlementHandler
	tickets     *application.TicketHandler
	outcomes    *application.OutcomeHandler
	restriction *application.RestrictionHandler
	payments    *application.PaymentHandler
	commissions *application.CommissionHandler
	draws       *application.DrawHandler
}

// NewServer creates a new API server with injected application handlers
func NewServer(
	translator *translate.Translator,
	settlement *application.SettlementHandler,
	tickets *application.TicketHandler,
	outcomes *application.OutcomeHandler,
	restriction *application.RestrictionHandler,
	payments *application.PaymentHandler,
	commissions *application.CommissionHandler,
	draws *application.DrawHandler,
) *Server {
	s := &Server{
		translator:  translator,
		settlement:  settlement,
		tickets:     tickets,
		outcomes:    outcomes,
		restriction: restriction,
		payments:    payments,
		commissions: commissions,
		draws:       draws,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	s.router = router
	s.registerRoutes()
	return s
}

// Router returns the internal gin engine for testing
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("API server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	banks := s.router.Group("/api/banks/:bank_id")
	{
		banks.POST("/draws", s.scheduleDraw)
		banks.GET("/draws/:draw_id/statement", s.getStatement)
		banks.POST("/draws/:draw_id/outcome", s.declareOutcome)
		banks.POST("/draws/:draw_id/restrictions", s.restrictNumber)
		banks.POST("/draws/:draw_id/sellers/:seller_id/restrictions", s.restrictSellerNumber)

		// One settlement engine behind four variant routes. Each route pins
		// the payout rule the caller expects; a variant mismatch is rejected.
		banks.POST("/draws/:draw_id/settle/common", s.settleDraw("common"))
		banks.POST("/draws/:draw_id/settle/reventado", s.settleDraw("reventado"))
		banks.POST("/draws/:draw_id/settle/monazo", s.settleDraw("monazo"))
		banks.POST("/draws/:draw_id/settle/parley", s.settleDraw("parley"))

		banks.POST("/tickets", s.sellTicket)
		banks.POST("/tickets/:ticket_id/cancel", s.cancelTicket)

		banks.PUT("/commissions", s.setCommission)
		banks.POST("/sellers/:seller_id/settle-balance", s.settleBalance)
	}
}

// requestLogger logs each request with method, path, status and latency
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request completed")
		} else {
			entry.Debug("request completed")
		}
	}
}
