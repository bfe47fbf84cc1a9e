// File: middleware/geo_location.go
package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"placewise/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GeoLocation represents the geolocation information for an IP.
type GeoLocation struct {
	IP        string  `json:"ip"`
	City      string  `json:"city"`
	Country   string  `json:"country_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// geoCache caches geolocation results keyed by IP address.
var geoCache = make(map[string]*GeoLocation)
var cacheMutex sync.RWMutex

// isPrivateIP checks if an IP is private or loopback.
func isPrivateIP(ip string) bool {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}
	if parsedIP.IsLoopback() {
		return true
	}
	privateIPBlocks := []*net.IPNet{
		{IP: net.IPv4(10, 0, 0, 0), Mask: net.CIDRMask(8, 32)},
		{IP: net.IPv4(172, 16, 0, 0), Mask: net.CIDRMask(12, 32)},
		{IP: net.IPv4(192, 168, 0, 0), Mask: net.CIDRMask(16, 32)},
	}
	for _, block := range privateIPBlocks {
		if block.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// getGeolocation retrieves geolocation data from an external API (using
// ipapi.co) and caches the result. Private IPs and API failures yield no
// coordinates rather than an error.
func getGeolocation(ip string, logger *zap.Logger) *GeoLocation {
	cacheMutex.RLock()
	if geo, exists := geoCache[ip]; exists {
		cacheMutex.RUnlock()
		return geo
	}
	cacheMutex.RUnlock()

	if isPrivateIP(ip) {
		geo := &GeoLocation{IP: ip}
		cacheMutex.Lock()
		geoCache[ip] = geo
		cacheMutex.Unlock()
		return geo
	}

	url := fmt.Sprintf("https://ipapi.co/%s/json/", ip)
	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		logger.Warn("Failed to query geolocation API", zap.String("ip", ip), zap.Error(err))
		return &GeoLocation{IP: ip}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Geolocation API returned non-OK status", zap.String("ip", ip), zap.Int("status", resp.StatusCode))
		return &GeoLocation{IP: ip}
	}

	var geo GeoLocation
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		logger.Warn("Failed to decode geolocation response", zap.String("ip", ip), zap.Error(err))
		return &GeoLocation{IP: ip}
	}

	cacheMutex.Lock()
	geoCache[ip] = &geo
	cacheMutex.Unlock()
	return &geo
}

// GeolocationMiddleware derives an approximate user location from the client
// IP and stores it in the request context. Search requests that carry no
// explicit coordinates fall back to it for distance scoring.
func GeolocationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()

		clientIP := c.ClientIP()
		if clientIP == "" {
			c.Next()
			return
		}

		geo := getGeolocation(clientIP, logger)
		if geo.Latitude != 0 || geo.Longitude != 0 {
			point := models.NewGeoPoint(geo.Latitude, geo.Longitude)
			c.Set("userLocation", &point)
		}
		c.Next()
	}
}
