package http

import (
	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Handler
	service port.Service
}

func NewProductHandler(service port.Service, logger *zap.Logger) (*ProductHandler, error) {
	return &ProductHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type productResponse struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Price       jsonDecimal `json:"price" swaggertype:"number"`
	Stock       int         `json:"stock"`
	Available   bool        `json:"available"`
}

func newProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       jsonDecimal(p.Price),
		Stock:       p.Stock,
		Available:   p.Available,
	}
}

type listProductsRequest struct {
	Search string `form:"search"`
	Page   uint64 `form:"page" binding:"omitempty,min=1"`
	Limit  uint64 `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ListProducts godoc
//
//	@Summary	List catalog products
//	@Tags		products
//	@Produce	json
//	@Param		search	query		string	false	"Name filter"
//	@Param		page	query		int		false	"Page, from 1"
//	@Param		limit	query		int		false	"Page size"
//	@Success	200		{array}		productResponse
//	@Failure	400		{object}	errorResponse
//	@Router		/api/products [get]
func (ph *ProductHandler) ListProducts(ctx *gin.Context) {
	req := listProductsRequest{}
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	list, err := ph.service.ListProducts(ctx, req.Search, req.Page, req.Limit)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	result := make([]productResponse, 0, len(list))
	for _, p := range list {
		result = append(result, newProductResponse(p))
	}
	ph.handleSuccess(ctx, result)
}

type productURI struct {
	ID uint64 `uri:"id" binding:"required"`
}

// GetProduct godoc
//
//	@Summary	Get one product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"Product id"
//	@Success	200	{object}	productResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/api/products/{id} [get]
func (ph *ProductHandler) GetProduct(ctx *gin.Context) {
	uri := productURI{}
	if err := ctx.ShouldBindUri(&uri); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	product, err := ph.service.GetProduct(ctx, uri.ID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}
	ph.handleSuccess(ctx, newProductResponse(product))
}
