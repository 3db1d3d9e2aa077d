package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addCartLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type changeCartLineRequest struct {
	Quantity int `json:"quantity"`
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), callerID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addCartLineHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "productId and quantity are required")
			return
		}
		cart, err := svc.AddProduct(c.Request.Context(), callerID(c), req.ProductID, req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// changeCartLineHandler updates a line's quantity. A quantity of zero or less
// removes the line.
func changeCartLineHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changeCartLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "quantity is required")
			return
		}
		cart, err := svc.ChangeQuantity(c.Request.Context(), callerID(c), c.Param("lineId"), req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func snapshotCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		priced, err := svc.Snapshot(c.Request.Context(), callerID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"cart":       priced,
			"totalCents": priced.TotalCents(),
		})
	}
}
