// ════════════════════════════════════════════════════════════
// Path: utils/user_agent.go
// Client details recorded on admin sessions and activity logs
// ════════════════════════════════════════════════════════════

package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// Device is the coarse client description stored with an admin session.
type Device struct {
	Type    string `json:"device_type"`
	Browser string `json:"browser"`
	OS      string `json:"os"`
}

// ParseUserAgent classifies a User-Agent header. Unknown agents come back as
// desktop/Other/Other.
func ParseUserAgent(userAgent string) Device {
	ua := strings.ToLower(userAgent)
	return Device{
		Type:    parseDeviceType(ua),
		Browser: parseBrowser(ua),
		OS:      parseOS(ua),
	}
}

// tablets are checked first, iPad agents also say "mobile"
func parseDeviceType(ua string) string {
	if strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad") {
		return "tablet"
	}
	if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") {
		return "mobile"
	}
	return "desktop"
}

func parseBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari"):
		return "Safari"
	}
	return "Other"
}

func parseOS(ua string) string {
	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "mac os"):
		return "macOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "linux"):
		return "Linux"
	}
	return "Other"
}

// ClientIP prefers the first valid X-Forwarded-For hop, then X-Real-IP, then
// the connection address.
func ClientIP(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return ""
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}
	return c.ClientIP()
}
