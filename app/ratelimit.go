package app

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// LoginRateLimit frena fuerza bruta sobre el login: 10 intentos por minuto
// por IP.
func LoginRateLimit() gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted("10-M")
	if err != nil {
		log.Fatalf("ratelimit: %v", err)
	}

	store := memory.NewStore()
	instance := limiter.New(store, rate)
	mw := stdlib.NewMiddleware(instance)

	return func(c *gin.Context) {
		mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if c.Writer.Status() == http.StatusTooManyRequests {
			c.Abort()
			return
		}
	}
}
