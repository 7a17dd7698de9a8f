package codec_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bodgit/unitconv/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs(t *testing.T) {
	payloads := map[string][]byte{
		"empty":      {},
		"short":      []byte("unit"),
		"repetitive": bytes.Repeat([]byte{13, 14, 1}, 4096),
	}

	for _, name := range []string{"gzip", "zstd", "lz4"} {
		c, err := codec.ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())

		for pname, p := range payloads {
			t.Run(name+"/"+pname, func(t *testing.T) {
				z, err := c.Compress(p)
				require.NoError(t, err)

				b, err := c.Decompress(z)
				require.NoError(t, err)
				assert.Equal(t, len(p), len(b))
				assert.True(t, bytes.Equal(p, b))
			})
		}
	}
}

func TestByName(t *testing.T) {
	c, err := codec.ByName("")
	require.NoError(t, err)
	assert.Equal(t, codec.Gzip{}, c)

	_, err = codec.ByName("brotli")
	assert.Error(t, err)
}

func TestArmor(t *testing.T) {
	s, err := codec.Armor(nil, []byte{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, "`AAEC`", s)

	b, err := codec.Unarmor(nil, s)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, b)

	s, err = codec.Armor(codec.Zstd{}, []byte("hello hello hello"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, codec.Delimiter))
	assert.True(t, strings.HasSuffix(s, codec.Delimiter))

	b, err = codec.Unarmor(codec.Zstd{}, s)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello hello hello"), b)

	_, err = codec.Unarmor(nil, "AAEC")
	assert.Error(t, err)
}

func TestCorruptInput(t *testing.T) {
	_, err := codec.Gzip{}.Decompress([]byte("not gzip"))
	require.Error(t, err)

	var cerr *codec.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "gzip", cerr.Codec)
}
