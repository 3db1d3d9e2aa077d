package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
	productrepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/product"
	boutiqueservice "github.com/zakaria-baami/marketplace-backend-sub001/internal/service/boutique"
)

type changeTemplateRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
}

func listTemplatesHandler(svc BoutiqueService) gin.HandlerFunc {
	return func(c *gin.Context) {
		templates, err := svc.ListTemplates(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"templates": templates})
	}
}

func createBoutiqueHandler(svc BoutiqueService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in boutiqueservice.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid body")
			return
		}
		boutique, err := svc.Create(c.Request.Context(), callerID(c), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, boutique)
	}
}

func getBoutiqueHandler(svc BoutiqueService) gin.HandlerFunc {
	return func(c *gin.Context) {
		boutique, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, boutique)
	}
}

func changeTemplateHandler(svc BoutiqueService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changeTemplateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "templateId is required")
			return
		}
		boutique, err := svc.ChangeTemplate(c.Request.Context(), callerID(c), c.Param("id"), req.TemplateID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, boutique)
	}
}

// statsHandler serves the owner dashboard. Only the boutique owner may read
// its figures.
func statsHandler(boutiques BoutiqueService, stats StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		period := domain.Period30d
		if raw := c.Query("period"); raw != "" {
			parsed, ok := domain.ParsePeriod(raw)
			if !ok {
				badRequest(c, "unknown period "+raw)
				return
			}
			period = parsed
		}

		boutique, err := boutiques.AuthorizeOwner(c.Request.Context(), callerID(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		figures, err := stats.Aggregate(c.Request.Context(), boutique.ID, period)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, figures)
	}
}

func listProductsHandler(catalog ProductCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.ListByBoutique(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

type createProductRequest struct {
	Name       string `json:"name" binding:"required"`
	Category   string `json:"category"`
	PriceCents int64  `json:"priceCents"`
	Stock      int    `json:"stock"`
}

// createProductHandler adds a product to the caller's boutique. Ownership is
// checked before the insert.
func createProductHandler(boutiques BoutiqueService, catalog ProductCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "name is required")
			return
		}
		if req.PriceCents < 0 || req.Stock < 0 {
			badRequest(c, "priceCents and stock must not be negative")
			return
		}

		boutique, err := boutiques.AuthorizeOwner(c.Request.Context(), callerID(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		product, err := catalog.Create(c.Request.Context(), productrepo.CreateProductInput{
			BoutiqueID: boutique.ID,
			Name:       req.Name,
			Category:   req.Category,
			PriceCents: req.PriceCents,
			Stock:      req.Stock,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func getProductHandler(catalog ProductCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
