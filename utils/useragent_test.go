package utils

import "testing"

const (
	uaWindowsChrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
	uaAndroidPhone  = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Mobile Safari/537.36"
	uaIPad          = "Mozilla/5.0 (iPad; CPU OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1"
	uaIPhoneSafari  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1"
	uaMacFirefox    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:127.0) Gecko/20100101 Firefox/127.0"
	uaWindowsEdge   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36 Edg/126.0.0.0"
	uaKindleFire    = "Mozilla/5.0 (Linux; Android 9; KFMAWI) AppleWebKit/537.36 (KHTML, like Gecko) Silk/94.3.6 like Chrome/94.0.4606.85 Safari/537.36"
)

func TestParseDeviceType(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"windows desktop", uaWindowsChrome, "desktop"},
		{"android phone", uaAndroidPhone, "mobile"},
		{"ipad wins over mobile token", uaIPad, "tablet"},
		{"iphone", uaIPhoneSafari, "mobile"},
		{"kindle fire", uaKindleFire, "tablet"},
		{"empty", "", "unknown"},
	}

	for _, tt := range tests {
		if got := ParseDeviceType(tt.ua); got != tt.want {
			t.Errorf("%s: ParseDeviceType = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseOS(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		// Android must win even though its UA contains "like Mac OS X" lookalikes
		{"android", uaAndroidPhone, "Android"},
		{"ipad is iOS not MacOS", uaIPad, "iOS"},
		{"iphone", uaIPhoneSafari, "iOS"},
		{"windows", uaWindowsChrome, "Windows"},
		{"mac", uaMacFirefox, "MacOS"},
		{"unknown", "curl/8.0", "Other"},
	}

	for _, tt := range tests {
		if got := ParseOS(tt.ua); got != tt.want {
			t.Errorf("%s: ParseOS = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseBrowser(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"edge wins over chrome token", uaWindowsEdge, "Edge"},
		{"chrome wins over safari token", uaWindowsChrome, "Chrome"},
		{"firefox", uaMacFirefox, "Firefox"},
		{"safari", uaIPhoneSafari, "Safari"},
		{"unknown", "curl/8.0", "Other"},
	}

	for _, tt := range tests {
		if got := ParseBrowser(tt.ua); got != tt.want {
			t.Errorf("%s: ParseBrowser = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDeviceSignature(t *testing.T) {
	got := DeviceSignature(uaAndroidPhone)
	want := "mobile | Android | Chrome"
	if got != want {
		t.Errorf("DeviceSignature = %q, want %q", got, want)
	}
}

func TestNormalizeReferrer(t *testing.T) {
	tests := []struct {
		name     string
		referrer string
		want     string
	}{
		{"empty is direct", "", "Direct"},
		{"own domain is direct", "https://www.velora.shop/perfumes", "Direct"},
		{"localhost is direct", "http://localhost:3000/", "Direct"},
		{"strips https and trailing slash", "https://www.google.com/", "www.google.com"},
		{"strips http", "http://t.co/abc", "t.co/abc"},
		{"bare protocol is direct", "https://", "Direct"},
		{"plain host untouched", "news.ycombinator.com", "news.ycombinator.com"},
	}

	for _, tt := range tests {
		if got := NormalizeReferrer(tt.referrer); got != tt.want {
			t.Errorf("%s: NormalizeReferrer(%q) = %q, want %q", tt.name, tt.referrer, got, tt.want)
		}
	}
}
