package obfs

import (
	"errors"
	"unicode/utf16"
)

// ErrAlreadyDecrypted is returned when Decrypt is called on an instance that already holds plain text.
// The mask is self-inverse, so a second pass would garble the buffer; refusing the call keeps misuse loud instead of silently corrupting.
var ErrAlreadyDecrypted = errors.New("instance was already decrypted")

// ObfuscatedString holds a character buffer in ciphertext state along with the key that produced it.
// The buffer has one slot more than the text so Decrypt can always write an explicit terminator, matching the fixed-size layout baked into build artifacts.
type ObfuscatedString[C Char] struct {
	buf     []C
	nbChars int
	key     byte
	clear   bool
}

// String is the narrow (byte) variant.
type String = ObfuscatedString[byte]

// WideString is the wide (UTF-16 code unit) variant.
type WideString = ObfuscatedString[uint16]

// New encrypts plain with key and returns the instance in ciphertext state.
// This is the build-time half of the contract: Ciphertext of the result is what a generated file embeds.
func New[C Char](plain []C, key byte) *ObfuscatedString[C] {
	s := &ObfuscatedString[C]{
		buf:     make([]C, len(plain)+1),
		nbChars: len(plain),
		key:     key,
	}
	for i, c := range plain {
		s.buf[i] = mask(c, key, i)
	}
	return s
}

// NewString encrypts a Go string as narrow bytes.
func NewString(plain string, key byte) *String {
	return New([]byte(plain), key)
}

// NewWideString encrypts a Go string as UTF-16 code units.
func NewWideString(plain string, key byte) *WideString {
	return New(utf16.Encode([]rune(plain)), key)
}

// FromCiphertext restores an instance from previously emitted ciphertext, such as the literal data in a generated file.
// The data is copied, so the source slice is never mutated by Decrypt.
func FromCiphertext[C Char](data []C, key byte) *ObfuscatedString[C] {
	s := &ObfuscatedString[C]{
		buf:     make([]C, len(data)+1),
		nbChars: len(data),
		key:     key,
	}
	copy(s.buf, data)
	return s
}

// Len returns the number of characters, excluding the terminator slot.
func (s *ObfuscatedString[C]) Len() int {
	return s.nbChars
}

// Decrypted reports whether the buffer already holds plain text.
func (s *ObfuscatedString[C]) Decrypted() bool {
	return s.clear
}

// Ciphertext returns a copy of the stored characters.
// It is only meaningful before Decrypt; afterwards the buffer holds plain text.
func (s *ObfuscatedString[C]) Ciphertext() []C {
	out := make([]C, s.nbChars)
	copy(out, s.buf[:s.nbChars])
	return out
}

// Decrypt reverses the mask in place and returns a view of the plain text, excluding the terminator.
// The terminator slot is always overwritten with zero, no matter what it held before.
// Decrypt works exactly once per instance; subsequent calls fail with ErrAlreadyDecrypted and leave the buffer untouched.
func (s *ObfuscatedString[C]) Decrypt() ([]C, error) {
	if s.clear {
		return nil, ErrAlreadyDecrypted
	}
	for i := 0; i < s.nbChars; i++ {
		s.buf[i] = mask(s.buf[i], s.key, i)
	}
	s.buf[s.nbChars] = 0
	s.clear = true
	return s.buf[:s.nbChars], nil
}

// DecryptString decrypts a narrow instance and returns the plain text as a Go string.
func DecryptString(s *String) (string, error) {
	b, err := s.Decrypt()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecryptWideString decrypts a wide instance and decodes the UTF-16 code units back to a Go string.
func DecryptWideString(s *WideString) (string, error) {
	units, err := s.Decrypt()
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}
