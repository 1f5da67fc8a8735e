package obfs

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
)

func TestPackUnpack(t *testing.T) {
	var buf bytes.Buffer
	data := []byte("some file contents worth hiding")
	assert.NoError(t, Pack(&buf, DefaultSeed, DefaultRounds, data))

	// the plain text never appears in the envelope
	assert.NotContains(t, buf.String(), "hiding")

	p, err := Unpack(&buf)
	assert.NoError(t, err)
	assert.Equal(t, DefaultSeed, p.Seed())
	assert.Equal(t, DefaultRounds, p.Rounds())
	assert.Equal(t, WidthNarrow, p.Width())
	assert.Equal(t, len(data), p.Len())

	text, err := p.Plaintext()
	assert.NoError(t, err)
	assert.Equal(t, string(data), text)

	_, err = p.Plaintext()
	assert.ErrorIs(t, err, ErrAlreadyDecrypted)
}

func TestPackUnpack_Wide(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, PackWide(&buf, DefaultSeed, DefaultRounds, "Ω says hi"))

	p, err := Unpack(&buf)
	assert.NoError(t, err)
	assert.Equal(t, WidthWide, p.Width())
	assert.Equal(t, 18, p.Len())

	text, err := p.Plaintext()
	assert.NoError(t, err)
	assert.Equal(t, "Ω says hi", text)
}

func TestPack_Reproducible(t *testing.T) {
	var a, b bytes.Buffer
	data := []byte("deterministic either way")
	assert.NoError(t, Pack(&a, 1234, DefaultRounds, data))
	assert.NoError(t, Pack(&b, 1234, DefaultRounds, data))
	assert.Equal(t, a.Bytes(), b.Bytes())

	var c bytes.Buffer
	assert.NoError(t, Pack(&c, 1235, DefaultRounds, data))
	assert.NotEqual(t, a.Bytes(), c.Bytes())
}

func TestPack_BadRounds(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Pack(&buf, DefaultSeed, 0, []byte("x")), ErrInvalidPayload)
	assert.ErrorIs(t, Pack(&buf, DefaultSeed, 256, []byte("x")), ErrInvalidPayload)
	assert.ErrorIs(t, PackWide(&buf, DefaultSeed, -1, "x"), ErrInvalidPayload)
}

func TestUnpack_HostileLength(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Pack(&buf, DefaultSeed, DefaultRounds, []byte("short")))
	// the length field sits after magic (2), seed (8), rounds (1), and width (1)
	raw := buf.Bytes()
	binary.BigEndian.PutUint64(raw[12:], 0xFFFFFFFFFFFFFFFF)
	_, err := Unpack(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	binary.BigEndian.PutUint64(raw[12:], maxPayloadLen+1)
	_, err = Unpack(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestPlaintext_DecryptsInPlace(t *testing.T) {
	// both widths leave the decrypted characters in the stored buffer
	var narrow bytes.Buffer
	assert.NoError(t, Pack(&narrow, DefaultSeed, DefaultRounds, []byte("abc")))
	p, err := Unpack(&narrow)
	assert.NoError(t, err)
	_, err = p.Plaintext()
	assert.NoError(t, err)
	assert.Equal(t, []byte("abc"), p.Ciphertext())

	var wide bytes.Buffer
	assert.NoError(t, PackWide(&wide, DefaultSeed, DefaultRounds, "Ω says hi"))
	p, err = Unpack(&wide)
	assert.NoError(t, err)
	masked := p.Ciphertext()
	_, err = p.Plaintext()
	assert.NoError(t, err)
	stored := p.Ciphertext()
	assert.NotEqual(t, masked, stored)
	units := make([]uint16, len(stored)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(stored[i*2:])
	}
	assert.Equal(t, utf16.Encode([]rune("Ω says hi")), units)
}

func TestUnpack_BadMagic(t *testing.T) {
	_, err := Unpack(strings.NewReader("not a payload at all"))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestUnpack_Truncated(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Pack(&buf, DefaultSeed, DefaultRounds, []byte("enough data to cut short")))
	cut := buf.Bytes()[:buf.Len()-5]

	_, err := Unpack(bytes.NewReader(cut))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
