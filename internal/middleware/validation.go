package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/propstack/lease-rate-api/pkg/logger"
)

// suspiciousPatterns covers common SQL injection, XSS, and path traversal
// probes. Compiled once at startup.
var suspiciousPatterns = compilePatterns([]string{
	// SQL injection
	`(?i)(\bUNION\b.*\bSELECT\b)`,
	`(?i)(\bOR\b.*=.*\bOR\b)`,
	`(?i)(\bAND\b.*=.*\bAND\b)`,
	`(?i)(\bINSERT\b.*\bINTO\b)`,
	`(?i)(\bDELETE\b.*\bFROM\b)`,
	`(?i)(\bUPDATE\b.*\bSET\b)`,
	`(?i)(\bDROP\b.*\bTABLE\b)`,
	`(?i)(\bALTER\b.*\bTABLE\b)`,
	`--`,
	`/\*.*\*/`,
	// XSS
	`<script.*?>`,
	`javascript:`,
	`onload=`,
	`onclick=`,
	`onerror=`,
	`<iframe.*?>`,
	`<object.*?>`,
	`<embed.*?>`,
	// Path traversal
	`\.\.\/`,
	`\.\.\\`,
	`%2e%2e%2f`,
	`%2e%2e%5c`,
})

func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, pattern := range patterns {
		compiled[i] = regexp.MustCompile(pattern)
	}
	return compiled
}

type ValidationMiddleware struct {
	logger *logger.Logger
}

func NewValidationMiddleware(logger *logger.Logger) *ValidationMiddleware {
	return &ValidationMiddleware{
		logger: logger,
	}
}

// SanitizeInput strips null bytes and control characters from query
// parameters and headers before they reach any handler
func (m *ValidationMiddleware) SanitizeInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		for key, values := range c.Request.URL.Query() {
			for i, value := range values {
				sanitized := sanitizeString(value)
				if sanitized != value {
					m.logger.Info("Sanitized query parameter",
						zap.String("key", key),
						zap.String("original", value),
						zap.String("sanitized", sanitized))
					c.Request.URL.Query()[key][i] = sanitized
				}
			}
		}

		// Authorization carries the raw bearer token, leave it alone
		for key, values := range c.Request.Header {
			if strings.ToLower(key) == "authorization" {
				continue
			}
			for i, value := range values {
				sanitized := sanitizeString(value)
				if sanitized != value {
					m.logger.Info("Sanitized header",
						zap.String("key", key),
						zap.String("original", value),
						zap.String("sanitized", sanitized))
					c.Request.Header[key][i] = sanitized
				}
			}
		}

		c.Next()
	}
}

// ValidateContentType ensures only allowed content types on mutating requests
func (m *ValidationMiddleware) ValidateContentType(allowedTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.Method == "DELETE" {
			c.Next()
			return
		}

		contentType := c.GetHeader("Content-Type")
		if contentType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type header is required"})
			c.Abort()
			return
		}

		// Remove charset from content type
		contentType = strings.TrimSpace(strings.Split(contentType, ";")[0])

		allowed := false
		for _, allowedType := range allowedTypes {
			if contentType == allowedType {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{
				"error":         "Unsupported Content-Type",
				"allowed_types": allowedTypes,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ValidateRequestSize limits request body size
func (m *ValidationMiddleware) ValidateRequestSize(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":         "Request body too large",
				"max_size":      maxSize,
				"received_size": c.Request.ContentLength,
			})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// BlockSuspiciousPatterns rejects requests whose path, query, or headers match
// a known injection pattern
func (m *ValidationMiddleware) BlockSuspiciousPatterns() gin.HandlerFunc {
	return func(c *gin.Context) {
		if containsSuspiciousPattern(c.Request.URL.Path) {
			m.logger.Warn("Blocked suspicious request",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			c.Abort()
			return
		}

		for key, values := range c.Request.URL.Query() {
			for _, value := range values {
				if containsSuspiciousPattern(value) {
					m.logger.Warn("Blocked suspicious query parameter",
						zap.String("key", key),
						zap.String("value", value),
						zap.String("ip", c.ClientIP()))
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
					c.Abort()
					return
				}
			}
		}

		for key, values := range c.Request.Header {
			if strings.ToLower(key) == "authorization" {
				continue
			}
			for _, value := range values {
				if containsSuspiciousPattern(value) {
					m.logger.Warn("Blocked suspicious header",
						zap.String("key", key),
						zap.String("value", value),
						zap.String("ip", c.ClientIP()))
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
					c.Abort()
					return
				}
			}
		}

		c.Next()
	}
}

func sanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		// Keep printable runes plus newline, carriage return, and tab
		if r >= 32 || r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsSuspiciousPattern(input string) bool {
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}
