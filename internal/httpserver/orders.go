package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type advanceOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// checkoutHandler snapshots the caller's cart and places an order from it.
// The snapshot and the stock reservation both happen server side so the
// client cannot submit stale prices or quantities.
func checkoutHandler(carts CartService, orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID := callerID(c)
		priced, err := carts.Snapshot(c.Request.Context(), buyerID)
		if err != nil {
			writeError(c, err)
			return
		}
		order, err := orders.Checkout(c.Request.Context(), buyerID, *priced)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func listOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListMine(c.Request.Context(), callerID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), callerID(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func cancelOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Cancel(c.Request.Context(), callerID(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// advanceOrderHandler moves an order forward through fulfillment. It is meant
// for the fulfillment side, not buyers; cancellation has its own endpoint.
func advanceOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req advanceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "status is required")
			return
		}
		next := domain.OrderStatus(req.Status)
		if !next.Valid() || next == domain.OrderCancelled {
			badRequest(c, "unknown status "+req.Status)
			return
		}
		order, err := svc.Advance(c.Request.Context(), c.Param("id"), next)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
