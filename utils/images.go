package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resonance-backend/config"

	"github.com/gin-gonic/gin"
)

// ResolveImageURL maps a stored instrument image reference to a URL the
// storefront can render. Absolute http(s) URLs pass through untouched.
// Otherwise a file present under the static directory wins over one under
// the media directory, and a reference that matches neither resolves to "".
func ResolveImageURL(c *gin.Context, image string) string {
	if image == "" {
		return ""
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}

	name := strings.TrimLeft(image, "/")

	staticDir := config.GetEnv("STATIC_DIR", "static")
	if fileExists(filepath.Join(staticDir, filepath.FromSlash(name))) {
		return absoluteURL(c, "/static/"+name)
	}

	mediaDir := config.GetEnv("MEDIA_DIR", "media")
	if fileExists(filepath.Join(mediaDir, filepath.FromSlash(name))) {
		return absoluteURL(c, "/media/"+name)
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func absoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, path)
}
