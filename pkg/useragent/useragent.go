package useragent

import "strings"

// Device types reported by DeviceType.
const (
	DeviceTypeDesktop = "desktop"
	DeviceTypeMobile  = "mobile"
	DeviceTypeTablet  = "tablet"
	DeviceTypeBot     = "bot"
	DeviceTypeUnknown = "unknown"
)

// UserAgent holds the parsed fields of a User-Agent header.
type UserAgent struct {
	raw        string
	deviceType string
	os         string
	browser    string
	browserVer string
}

// String returns the raw user agent string.
func (ua UserAgent) String() string { return ua.raw }

// DeviceType returns one of the DeviceType constants.
func (ua UserAgent) DeviceType() string { return ua.deviceType }

// OS returns the operating system name, or "Unknown".
func (ua UserAgent) OS() string { return ua.os }

// BrowserName returns the browser (or bot) name, or "Unknown".
func (ua UserAgent) BrowserName() string { return ua.browser }

// BrowserVer returns the major browser version, or "" when unknown.
func (ua UserAgent) BrowserVer() string { return ua.browserVer }

// IsBot reports whether the agent looks like a crawler.
func (ua UserAgent) IsBot() bool { return ua.deviceType == DeviceTypeBot }

// IsMobile reports whether the agent is a phone.
func (ua UserAgent) IsMobile() bool { return ua.deviceType == DeviceTypeMobile }

// Short renders a compact human-readable label such as "Chrome 120 on macOS",
// suitable for session listings. Unknown parts are omitted.
func (ua UserAgent) Short() string {
	if ua.raw == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(ua.browser)
	if ua.browserVer != "" {
		b.WriteByte(' ')
		b.WriteString(ua.browserVer)
	}
	if ua.os != osUnknown {
		b.WriteString(" on ")
		b.WriteString(ua.os)
	}
	return b.String()
}

const osUnknown = "Unknown"

var botMarkers = []string{"bot", "crawler", "spider", "slurp", "facebookexternalhit", "headlesschrome"}

// browserRules are checked in order: Edge and Opera ship a Chrome token,
// and Chrome ships a Safari token, so the more specific products go first.
var browserRules = []struct {
	token string
	name  string
}{
	{"edg/", "Edge"},
	{"opr/", "Opera"},
	{"opera", "Opera"},
	{"chrome/", "Chrome"},
	{"firefox/", "Firefox"},
	{"safari/", "Safari"},
}

// Parse extracts browser, OS and device class from a User-Agent header.
// It never fails: anything unrecognized comes back as "Unknown".
func Parse(raw string) UserAgent {
	ua := UserAgent{
		raw:        raw,
		deviceType: DeviceTypeUnknown,
		os:         osUnknown,
		browser:    osUnknown,
	}
	if raw == "" {
		return ua
	}
	lower := strings.ToLower(raw)

	for _, marker := range botMarkers {
		if strings.Contains(lower, marker) {
			ua.deviceType = DeviceTypeBot
			ua.browser = botName(raw, lower)
			return ua
		}
	}

	ua.os = detectOS(lower)

	for _, rule := range browserRules {
		if idx := strings.Index(lower, rule.token); idx >= 0 {
			ua.browser = rule.name
			// Safari reports its version behind a separate "Version/" token.
			if rule.name == "Safari" {
				ua.browserVer = majorVersion(lower, "version/")
			} else {
				ua.browserVer = majorVersionAt(lower, idx+len(rule.token))
			}
			break
		}
	}

	switch {
	case strings.Contains(lower, "ipad") || (strings.Contains(lower, "android") && !strings.Contains(lower, "mobile")):
		ua.deviceType = DeviceTypeTablet
	case strings.Contains(lower, "mobile") || strings.Contains(lower, "iphone"):
		ua.deviceType = DeviceTypeMobile
	case ua.os != osUnknown || ua.browser != osUnknown:
		ua.deviceType = DeviceTypeDesktop
	}

	return ua
}

func detectOS(lower string) string {
	switch {
	case strings.Contains(lower, "windows nt"):
		return "Windows"
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"):
		return "iOS"
	case strings.Contains(lower, "mac os x"):
		return "macOS"
	case strings.Contains(lower, "android"):
		return "Android"
	case strings.Contains(lower, "cros"):
		return "ChromeOS"
	case strings.Contains(lower, "linux"):
		return "Linux"
	}
	return osUnknown
}

// botName pulls the product token containing the bot marker, preserving the
// original casing from the raw string.
func botName(raw, lower string) string {
	for _, marker := range []string{"bot", "spider", "crawler"} {
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}
		start := idx
		for start > 0 && isNameByte(lower[start-1]) {
			start--
		}
		end := idx + len(marker)
		for end < len(lower) && isNameByte(lower[end]) {
			end++
		}
		return raw[start:end]
	}
	return "Bot"
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}

func majorVersion(lower, token string) string {
	idx := strings.Index(lower, token)
	if idx < 0 {
		return ""
	}
	return majorVersionAt(lower, idx+len(token))
}

func majorVersionAt(lower string, pos int) string {
	end := pos
	for end < len(lower) && lower[end] >= '0' && lower[end] <= '9' {
		end++
	}
	return lower[pos:end]
}
