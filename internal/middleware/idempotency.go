package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency guards POST endpoints against double submission. A short-lived
// Redis lock keyed on (path, employee, Idempotency-Key) ensures a retried
// request while the first is in flight gets a 409 instead of a duplicate row.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		employeeID := c.GetString("employee_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		lockKey := fmt.Sprintf("idemp:%s:%s:%s:lock", c.FullPath(), employeeID, idempKey)

		isNew, err := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if err != nil {
			// Redis being down must not take submissions down with it.
			c.Next()
			return
		}

		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok": false,
				"error": gin.H{
					"code":    "PROCESSING",
					"message": "An identical request is already being processed",
				},
			})
			return
		}

		c.Set("idempotency_lock_key", lockKey)
		c.Next()
	}
}
