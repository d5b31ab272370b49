package helpers

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

var matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
var matchAllCap = regexp.MustCompile("([a-z0-9])([A-Z])")

func ToSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}

// AttachmentKey builds the storage key for an uploaded file. The upload
// timestamp prefix keeps keys unique while the original name stays readable.
func AttachmentKey(now time.Time, originalName string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), filepath.Base(originalName))
}

// AttachmentName strips the timestamp prefix back off a storage key.
func AttachmentName(key string) string {
	if idx := strings.Index(key, "-"); idx > 0 && idx < len(key)-1 {
		return key[idx+1:]
	}
	return key
}
