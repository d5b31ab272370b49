package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAttachmentKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	t.Run(`key is timestamp plus the original name`, func(t *testing.T) {
		key := AttachmentKey(now, "report.pdf")
		require.Equal(t, "1700000000000-report.pdf", key)
	})

	t.Run(`client-supplied paths are stripped to the base name`, func(t *testing.T) {
		key := AttachmentKey(now, "../../etc/passwd")
		require.Equal(t, "1700000000000-passwd", key)
	})

	t.Run(`name round-trips through the key`, func(t *testing.T) {
		key := AttachmentKey(now, "report.pdf")
		require.Equal(t, "report.pdf", AttachmentName(key))
	})

	t.Run(`names with dashes survive the round-trip`, func(t *testing.T) {
		key := AttachmentKey(now, "q3-2024-report.pdf")
		require.Equal(t, "q3-2024-report.pdf", AttachmentName(key))
	})

	t.Run(`a bare key stays as is`, func(t *testing.T) {
		require.Equal(t, "report.pdf", AttachmentName("report.pdf"))
	})
}

func TestToSnakeCase(t *testing.T) {
	require.Equal(t, "serial_number", ToSnakeCase("SerialNumber"))
	require.Equal(t, "from_card_no", ToSnakeCase("FromCardNo"))
	require.Equal(t, "dept", ToSnakeCase("Dept"))
}
