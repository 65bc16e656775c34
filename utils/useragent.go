package utils

import (
	"net"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// Best-effort user-agent classification for analytics. The rules are ordered
// substring checks so the heuristic stays unit-testable in isolation from the
// aggregation pipeline.

// DeviceInfo is the classification of one user-agent string.
type DeviceInfo struct {
	DeviceType string // tablet, mobile, desktop
	OS         string // Android, iOS, Windows, MacOS, Other
	Browser    string // Edge, Chrome, Firefox, Safari, Other
}

// Tablet detection: iPad, Android/Samsung/Sony/LG tablets, Kindle Fire, Silk,
// Lenovo tablets, Nvidia Shield, generic "tab", Nest Hub, Chromecast.
var tabletPattern = regexp.MustCompile(`ipad|tablet|sm-p|sm-t|sgp|lg-v|kf[a-z0-9]+|silk|lenovo yt-|shield tablet|k1 build|gt-p|tab|playbook|crkey|nest hub`)

// ParseDeviceType classifies a user-agent as tablet, mobile or desktop.
// Tablet wins over mobile because tablet UAs often carry "Mobile" too.
func ParseDeviceType(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}
	ua := strings.ToLower(userAgent)
	if tabletPattern.MatchString(ua) {
		return "tablet"
	}
	if strings.Contains(ua, "mobile") {
		return "mobile"
	}
	return "desktop"
}

// ParseOS extracts the operating system from a user-agent string.
// Precedence is fixed: Android → iOS → Windows → MacOS → Other.
func ParseOS(userAgent string) string {
	s := strings.ToLower(userAgent)
	if strings.Contains(s, "android") {
		return "Android"
	}
	if strings.Contains(s, "iphone") || strings.Contains(s, "ipad") || strings.Contains(s, "ipod") ||
		strings.Contains(s, "ios") || strings.Contains(s, "iphone os") {
		return "iOS"
	}
	if strings.Contains(s, "windows nt") || strings.Contains(s, "windows") ||
		strings.Contains(s, "win32") || strings.Contains(s, "win64") {
		return "Windows"
	}
	if strings.Contains(s, "mac os x") || strings.Contains(s, "macintosh") || strings.Contains(s, "macos") {
		return "MacOS"
	}
	return "Other"
}

// ParseBrowser extracts the browser name from a user agent
func ParseBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "edg") {
		return "Edge"
	}
	if strings.Contains(ua, "chrome") {
		return "Chrome"
	}
	if strings.Contains(ua, "firefox") {
		return "Firefox"
	}
	if strings.Contains(ua, "safari") {
		return "Safari"
	}
	return "Other"
}

// ClassifyDevice runs all three parsers over one user-agent string.
func ClassifyDevice(userAgent string) DeviceInfo {
	return DeviceInfo{
		DeviceType: ParseDeviceType(userAgent),
		OS:         ParseOS(userAgent),
		Browser:    ParseBrowser(userAgent),
	}
}

// DeviceSignature builds the pipe-joined composite signature stored in the
// security log: "deviceType | OS | browser".
func DeviceSignature(userAgent string) string {
	info := ClassifyDevice(userAgent)
	parts := []string{info.DeviceType, info.OS, info.Browser}
	return strings.Join(parts, " | ")
}

// ownDomainTokens mark referrers that count as internal navigation.
var ownDomainTokens = []string{"localhost", "velora"}

// NormalizeReferrer collapses empty, self-referencing and own-domain referrers
// to the "Direct" sentinel and strips protocol/trailing-slash noise from
// external referrers.
func NormalizeReferrer(referrer string) string {
	if referrer == "" {
		return "Direct"
	}
	lower := strings.ToLower(referrer)
	for _, token := range ownDomainTokens {
		if strings.Contains(lower, token) {
			return "Direct"
		}
	}
	r := strings.TrimPrefix(referrer, "https://")
	r = strings.TrimPrefix(r, "http://")
	r = strings.TrimRight(r, "/")
	if r == "" {
		return "Direct"
	}
	return r
}

// GetClientIP gets the real client IP (handles proxies)
func GetClientIP(c *gin.Context) string {
	// Try X-Forwarded-For first (if behind proxy)
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	// Try X-Real-IP
	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}

	return c.ClientIP()
}
