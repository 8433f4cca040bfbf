package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naturalclinic/flightbooking/internal/domain"
	"github.com/naturalclinic/flightbooking/internal/offer"
	"github.com/naturalclinic/flightbooking/internal/service/flights"
	"github.com/naturalclinic/flightbooking/internal/upstream"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

// searchResult pairs each offer with its navigation token so the results
// view can link straight into the booking flow.
type searchResult struct {
	Offer domain.FlightOffer `json:"offer"`
	Token string             `json:"token"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/search", h.search)
}

func (h *FlightHandler) RegisterAirports(router *gin.RouterGroup) {
	router.GET("/search", h.airports)
}

func (h *FlightHandler) search(c *gin.Context) {
	var params upstream.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params.OriginCode == "" || params.DestinationCode == "" || params.DepartureDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "originCode, destinationCode and departureDate are required"})
		return
	}
	if params.Adults == 0 {
		params.Adults = 1
	}

	offers, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	results := make([]searchResult, 0, len(offers))
	for i := range offers {
		token, err := offer.Encode(&offers[i])
		if err != nil {
			continue
		}
		results = append(results, searchResult{Offer: offers[i], Token: token})
	}
	c.JSON(http.StatusOK, gin.H{"data": results})
}

func (h *FlightHandler) airports(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	airports, err := h.service.Airports(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": airports})
}
