package obfs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewString_DocumentedExample(t *testing.T) {
	key := DeriveKey(DefaultSeed)
	assert.Equal(t, byte(0x0b), key)

	s := NewString("Hello", key)
	assert.Equal(t, []byte{0x43, 0x69, 0x61, 0x62, 0x60}, s.Ciphertext())
	assert.Equal(t, 5, s.Len())

	text, err := DecryptString(s)
	assert.NoError(t, err)
	assert.Equal(t, "Hello", text)
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		seed := r.Uint64()
		key := DeriveKey(seed)
		plain := randomText(r, r.Intn(64))

		text, err := DecryptString(NewString(plain, key))
		assert.NoError(t, err)
		assert.Equal(t, plain, text)
		assert.Len(t, text, len(plain))
	}
}

func TestRoundTrip_Wide(t *testing.T) {
	key := DeriveKey(DefaultSeed)
	s := NewWideString("Ω says hi", key)
	assert.Equal(t, []uint16{0x3a2, 0x2c, 0x7e, 0x6f, 0x76, 0x63, 0x31, 0x7a, 0x7a}, s.Ciphertext())

	text, err := DecryptWideString(s)
	assert.NoError(t, err)
	assert.Equal(t, "Ω says hi", text)
	assert.Equal(t, 9, s.Len())
}

func TestDecrypt_Once(t *testing.T) {
	key := DeriveKey(DefaultSeed)
	s := NewString("one shot", key)
	assert.False(t, s.Decrypted())

	text, err := DecryptString(s)
	assert.NoError(t, err)
	assert.Equal(t, "one shot", text)
	assert.True(t, s.Decrypted())

	_, err = DecryptString(s)
	assert.ErrorIs(t, err, ErrAlreadyDecrypted)
	// the buffer stays intact after the refused call
	assert.Equal(t, []byte("one shot"), s.buf[:s.nbChars])
}

func TestDecrypt_Empty(t *testing.T) {
	key := DeriveKey(DefaultSeed)
	s := NewString("", key)
	assert.Equal(t, 0, s.Len())

	text, err := DecryptString(s)
	assert.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestDecrypt_TerminatorOverwritten(t *testing.T) {
	key := DeriveKey(DefaultSeed)
	s := NewString("abc", key)
	// whatever occupied the terminator slot before decryption is irrelevant
	s.buf[s.nbChars] = 0xAA

	text, err := DecryptString(s)
	assert.NoError(t, err)
	assert.Equal(t, "abc", text)
	assert.Equal(t, byte(0), s.buf[s.nbChars])
}

func TestCiphertext_NonTrivial(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		key := DeriveKey(r.Uint64())
		plain := randomText(r, r.Intn(300)+1)
		ct := NewString(plain, key).Ciphertext()
		for j := 0; j < len(plain); j++ {
			if byte(int(key)+j) != 0 {
				assert.NotEqual(t, plain[j], ct[j], "index %d with key %#x", j, key)
			}
		}
	}
}

func TestDoubleMask_PinsCorruption(t *testing.T) {
	// What ErrAlreadyDecrypted prevents: masking plain text again yields
	// plain XOR keystream, not the original bytes.
	key := DeriveKey(DefaultSeed)
	plain := []byte("Hello")
	for i, c := range plain {
		garbled := mask(c, key, i)
		assert.Equal(t, c^(key+byte(i)), garbled)
		assert.NotEqual(t, c, garbled)
	}
}

func TestFromCiphertext(t *testing.T) {
	key := DeriveKey(DefaultSeed)
	data := []byte{0x43, 0x69, 0x61, 0x62, 0x60}
	s := FromCiphertext(data, key)

	text, err := DecryptString(s)
	assert.NoError(t, err)
	assert.Equal(t, "Hello", text)
	// the source slice is copied, not decrypted in place
	assert.Equal(t, []byte{0x43, 0x69, 0x61, 0x62, 0x60}, data)
}

func randomText(r *rand.Rand, length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 _-./:"
	out := make([]byte, length)
	for i := range out {
		out[i] = charset[r.Intn(len(charset))]
	}
	return string(out)
}
