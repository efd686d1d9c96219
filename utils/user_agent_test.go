package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want Device
	}{
		{
			name: "chrome on windows",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			want: Device{Type: "desktop", Browser: "Chrome", OS: "Windows"},
		},
		{
			name: "edge",
			ua:   "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/120.0 Safari/537.36 Edg/120.0",
			want: Device{Type: "desktop", Browser: "Edge", OS: "Windows"},
		},
		{
			name: "safari on iphone",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile/15E148 Safari/604.1",
			want: Device{Type: "mobile", Browser: "Safari", OS: "iOS"},
		},
		{
			name: "ipad",
			ua:   "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148 Safari/604.1",
			want: Device{Type: "tablet", Browser: "Safari", OS: "iOS"},
		},
		{
			name: "firefox on linux",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			want: Device{Type: "desktop", Browser: "Firefox", OS: "Linux"},
		},
		{
			name: "chrome on android",
			ua:   "Mozilla/5.0 (Linux; Android 14) AppleWebKit/537.36 Chrome/120.0 Mobile Safari/537.36",
			want: Device{Type: "mobile", Browser: "Chrome", OS: "Android"},
		},
		{
			name: "unknown",
			ua:   "curl/8.4.0",
			want: Device{Type: "desktop", Browser: "Other", OS: "Other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUserAgent(tt.ua))
		})
	}
}

func TestClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(headers map[string]string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.RemoteAddr = "192.0.2.1:4321"
		for k, v := range headers {
			c.Request.Header.Set(k, v)
		}
		return c
	}

	assert.Equal(t, "203.0.113.9", ClientIP(newCtx(map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"})))
	assert.Equal(t, "198.51.100.7", ClientIP(newCtx(map[string]string{"X-Forwarded-For": "garbage", "X-Real-IP": "198.51.100.7"})))
	assert.Equal(t, "192.0.2.1", ClientIP(newCtx(nil)))
	assert.Equal(t, "", ClientIP(nil))
}
