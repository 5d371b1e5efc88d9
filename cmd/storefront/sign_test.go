package main

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignCommand(t *testing.T) {
	t.Setenv("ENOT_SHOP_ID", "")
	t.Setenv("ENOT_SECRET_KEY", "")

	cmd := signCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--merchant", "shop", "--secret", "key", "20", "frot_1"})
	require.NoError(t, cmd.Execute())

	sum := md5.Sum([]byte("shop:20:key:frot_1"))
	assert.Equal(t, hex.EncodeToString(sum[:]), strings.TrimSpace(out.String()))
}

func TestSignCommandNeedsCredentials(t *testing.T) {
	t.Setenv("ENOT_SHOP_ID", "")
	t.Setenv("ENOT_SECRET_KEY", "")

	cmd := signCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"20", "frot_1"})
	assert.Error(t, cmd.Execute())
}
