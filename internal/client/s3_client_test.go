package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageKey(t *testing.T) {
	key := ImageKey("avatar.png")
	require.True(t, strings.HasPrefix(key, "images/"))
	require.True(t, strings.HasSuffix(key, "_avatar.png"))
	require.NotEqual(t, key, ImageKey("avatar.png"))

	require.True(t, strings.HasSuffix(ImageKey("../../etc/passwd"), "_passwd"))
	require.True(t, strings.HasSuffix(ImageKey(`C:\Users\me\pic.jpg`), "_pic.jpg"))
	require.True(t, strings.HasSuffix(ImageKey(""), "_image"))
}
