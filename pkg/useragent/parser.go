// Package useragent wraps the uap-go User-Agent parser with device type
// classification, with a pure-heuristic fallback for when the parser regexes
// are unavailable.
package useragent

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

// DeviceInfo is the parsed classification of a User-Agent string.
type DeviceInfo struct {
	DeviceType string // mobile, desktop, tablet, bot, unknown
	Browser    string // Chrome, Firefox, Safari, ...
	OS         string // Windows, iOS, Android, ...
	Raw        string // original User-Agent string
}

// Parser classifies User-Agent strings using the uap-core regex set.
type Parser struct {
	parser *uaparser.Parser
	log    *zap.Logger
}

var (
	globalParser *Parser
	once         sync.Once
)

// NewParser loads the uap-core regexes from regexFilePath and returns a parser.
func NewParser(regexFilePath string, log *zap.Logger) (*Parser, error) {
	regexBytes, err := os.ReadFile(regexFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read regexes file %s: %w", regexFilePath, err)
	}

	parser, err := uaparser.NewFromBytes(regexBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create User-Agent parser: %w", err)
	}

	log.Info("User-Agent parser initialized", zap.String("regexes_file", regexFilePath))

	return &Parser{parser: parser, log: log}, nil
}

// InitGlobalParser initializes the process-wide parser instance.
func InitGlobalParser(regexFilePath string, log *zap.Logger) error {
	var err error
	once.Do(func() {
		globalParser, err = NewParser(regexFilePath, log)
	})
	return err
}

// GetGlobalParser returns the process-wide parser, or nil if it was never
// initialized successfully.
func GetGlobalParser() *Parser {
	return globalParser
}

// ParseUserAgent classifies a raw User-Agent string.
func (p *Parser) ParseUserAgent(userAgent string) *DeviceInfo {
	if userAgent == "" {
		return &DeviceInfo{DeviceType: "unknown", Browser: "unknown", OS: "unknown"}
	}

	client := p.parser.Parse(userAgent)

	info := &DeviceInfo{
		Browser: orUnknown(client.UserAgent.Family),
		OS:      orUnknown(client.Os.Family),
		Raw:     userAgent,
	}
	info.DeviceType = p.deviceType(client, userAgent)

	return info
}

// deviceType decides the device class from parsed client info plus the raw
// User-Agent string.
func (p *Parser) deviceType(client *uaparser.Client, userAgent string) string {
	if isBot(client.UserAgent.Family, userAgent) {
		return "bot"
	}

	device := client.Device.Family
	if device != "" && device != "Other" {
		if containsAny(device, "iPad", "Tablet", "Kindle", "Surface") {
			return "tablet"
		}
		if containsAny(device, "iPhone", "Android", "BlackBerry", "Mobile", "Phone") {
			return "mobile"
		}
	}

	osFamily := client.Os.Family
	if containsAny(osFamily, "iOS", "Android", "Windows Phone", "BlackBerry OS") {
		if isTabletOS(osFamily, userAgent) {
			return "tablet"
		}
		return "mobile"
	}

	if containsAny(osFamily, "Windows", "Mac OS X", "macOS", "Linux", "Ubuntu", "Chrome OS", "FreeBSD") {
		return "desktop"
	}

	return "unknown"
}

// DetectDeviceType is a regex-free heuristic used when the uap parser is not
// available.
func DetectDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	if containsAny(ua, "bot", "crawler", "spider", "scraper") {
		return "bot"
	}
	if containsAny(ua, "tablet", "ipad", "kindle", "silk", "playbook") {
		return "tablet"
	}
	if containsAny(ua, "mobile", "android", "iphone", "ipod", "blackberry", "windows phone", "opera mini") {
		return "mobile"
	}

	return "desktop"
}

func isBot(uaFamily, userAgent string) bool {
	indicators := []string{
		"Googlebot", "Bingbot", "Slurp", "DuckDuckBot", "Baiduspider",
		"YandexBot", "facebookexternalhit", "Twitterbot", "LinkedInBot",
		"bot", "crawler", "spider", "scraper",
	}
	for _, ind := range indicators {
		if containsFold(uaFamily, ind) || containsFold(userAgent, ind) {
			return true
		}
	}
	return false
}

func isTabletOS(osFamily, userAgent string) bool {
	// iPads report iOS; Android tablets usually omit "Mobile".
	if containsFold(osFamily, "iOS") {
		return containsFold(userAgent, "iPad")
	}
	if containsFold(osFamily, "Android") {
		return !containsFold(userAgent, "Mobile")
	}
	return false
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if containsFold(s, sub) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	if s == "" || substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func orUnknown(s string) string {
	if s == "" || s == "Other" {
		return "unknown"
	}
	return s
}
