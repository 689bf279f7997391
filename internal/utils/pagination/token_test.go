package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2023, 5, 15, 14, 30, 45, 123456000, time.UTC)

	token := EncodeToken(date, "mov-42")
	assert.NotEmpty(t, token)

	gotDate, gotID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(gotDate))
	assert.Equal(t, "mov-42", gotID)

	now := time.Now().UTC()
	gotDate, _, err = DecodeToken(EncodeToken(now, "x"))
	require.NoError(t, err)
	assert.True(t, now.Equal(gotDate))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.RawURLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.RawURLEncoding.EncodeToString([]byte("notadate|mov-1"))
	_, _, err = DecodeToken(badDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")
}
