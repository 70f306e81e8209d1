package recommend

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler handles GET /api/recommendations?lat=&lon=
func Handler(weather *WeatherClient, recommender *Recommender) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
		if latErr != nil || lonErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "lat and lon query parameters are required"})
			return
		}

		ctx := c.Request.Context()

		address, err := weather.ReverseGeocode(ctx, lat, lon)
		if err != nil {
			slog.Error("Reverse geocode failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to resolve location"})
			return
		}

		current, err := weather.CurrentWeather(ctx, lat, lon)
		if err != nil {
			slog.Error("Weather lookup failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to fetch weather"})
			return
		}

		recs, err := recommender.Recommend(ctx, address, time.Now())
		if err != nil {
			slog.Error("Recommendation fetch failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to fetch recommendations"})
			return
		}

		c.JSON(http.StatusOK, Response{
			Location:        address,
			Weather:         *current,
			Recommendations: *recs,
		})
	}
}
