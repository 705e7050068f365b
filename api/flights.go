package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

// Register mounts the search routes. Handlers in limited run before booking attempts.
func (h *FlightHandler) Register(router *gin.RouterGroup, limited ...gin.HandlerFunc) {
	router.GET("/airports", h.airports)
	router.POST("/searches", h.search)
	router.GET("/searches/:id/offers", h.offers)
	router.POST("/searches/:id/offers/:offerId/attempts", chain(limited, h.attempt)...)
}

func (h *FlightHandler) airports(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Airports(c.Query("q")))
}

func (h *FlightHandler) search(c *gin.Context) {
	var req flights.SearchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *FlightHandler) offers(c *gin.Context) {
	cfg, err := filterFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}

	offers, err := h.service.Offers(c.Request.Context(), c.Param("id"), cfg)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *FlightHandler) attempt(c *gin.Context) {
	offer, err := h.service.Attempt(c.Request.Context(), c.Param("id"), c.Param("offerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func filterFromQuery(c *gin.Context) (domain.FilterConfig, error) {
	var (
		cfg      domain.FilterConfig
		problems []string
		err      error
	)

	if cfg.MinPrice, err = priceParam(c, "min"); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.MaxPrice, err = priceParam(c, "max"); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.MaxPrice > 0 && cfg.MinPrice > cfg.MaxPrice {
		problems = append(problems, "min must not exceed max")
	}
	if raw := c.Query("airlines"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.Airlines = append(cfg.Airlines, id)
			}
		}
	}
	if cfg.Departure, err = domain.ParseTimeBucket(c.Query("time")); err != nil {
		problems = append(problems, fmt.Sprintf("unknown departure time bucket %q", c.Query("time")))
	}
	if cfg.SortBy, err = domain.ParseSortKey(c.Query("sort")); err != nil {
		problems = append(problems, fmt.Sprintf("unknown sort key %q", c.Query("sort")))
	}

	if len(problems) > 0 {
		return domain.FilterConfig{}, domain.NewValidationError(problems...)
	}
	return cfg, nil
}

func priceParam(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative whole number", name)
	}
	return v, nil
}
