//nolint:testpackage // Need access to internal helpers
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceID(t *testing.T) {
	t.Parallel()

	id, err := parseResourceID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = parseResourceID("abc")
	require.ErrorIs(t, err, ErrInvalidResourceID)

	_, err = parseResourceID("0")
	require.ErrorIs(t, err, ErrInvalidResourceID)

	_, err = parseResourceID("-7")
	require.ErrorIs(t, err, ErrInvalidResourceID)
}

func TestParseFieldFlags(t *testing.T) {
	t.Parallel()

	fields, err := parseFieldFlags([]string{"Serial Number=SN-1", "OS=Debian 12"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"Serial Number": "SN-1",
		"OS":            "Debian 12",
	}, fields)

	fields, err = parseFieldFlags(nil)
	require.NoError(t, err)
	assert.Nil(t, fields)

	_, err = parseFieldFlags([]string{"no-separator"})
	require.ErrorIs(t, err, ErrInvalidFieldFlag)

	_, err = parseFieldFlags([]string{"=value"})
	require.ErrorIs(t, err, ErrInvalidFieldFlag)
}

func TestParseFieldFlagsKeepsEqualsInValue(t *testing.T) {
	t.Parallel()

	fields, err := parseFieldFlags([]string{"Notes=a=b=c"})
	require.NoError(t, err)
	assert.Equal(t, "a=b=c", fields["Notes"])
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	assert.Empty(t, maskSecret(""))
	assert.Equal(t, "***", maskSecret("abc"))
	assert.Equal(t, "abcd***", maskSecret("abcdefgh"))
}

func TestApplyConfigValue(t *testing.T) {
	t.Parallel()

	config := &Config{}

	require.NoError(t, applyConfigValue(config, "domain", "docs.example.com"))
	require.NoError(t, applyConfigValue(config, "api_key", "secret"))
	require.NoError(t, applyConfigValue(config, "api_version", "v2"))
	require.NoError(t, applyConfigValue(config, "output", "json"))

	assert.Equal(t, "docs.example.com", config.Domain)
	assert.Equal(t, "secret", config.APIKey)
	assert.Equal(t, "v2", config.APIVersion)
	assert.Equal(t, "json", config.Output)

	err := applyConfigValue(config, "token", "nope")
	require.ErrorIs(t, err, ErrInvalidConfigKey)
}

func TestReadArticleContentPrefersInline(t *testing.T) {
	t.Parallel()

	content, err := readArticleContent("<p>hi</p>", "")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", content)

	_, err = readArticleContent("", "")
	require.ErrorIs(t, err, ErrContentRequired)
}
