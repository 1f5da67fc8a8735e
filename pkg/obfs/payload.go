package obfs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"

	bin "github.com/saylorsolutions/binmap"
)

const (
	payloadMagic uint16 = 0x0b5f

	// maxPayloadLen bounds the declared data length of an envelope so a
	// corrupted or hostile header can't trigger an unbounded allocation.
	maxPayloadLen = 1 << 30

	// WidthNarrow marks a payload of single-byte characters.
	WidthNarrow uint8 = 1
	// WidthWide marks a payload of big-endian UTF-16 code units.
	WidthWide uint8 = 2
)

var (
	// ErrInvalidPayload indicates that input data can't be read as a payload envelope.
	ErrInvalidPayload = errors.New("invalid payload data")
)

// Payload is the binary envelope for a screened blob of text or file data.
// The header records the seed and round count so the reader can derive the same key the writer used.
// The key itself is never stored.
type Payload struct {
	seed   uint64
	rounds uint8
	width  uint8
	data   []byte
	clear  bool
}

func (p *Payload) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&p.seed),
		bin.Byte(&p.rounds),
		bin.Byte(&p.width),
	)
}

// Seed returns the key schedule seed recorded in the envelope header.
func (p *Payload) Seed() uint64 {
	return p.seed
}

// Rounds returns the generator round count recorded in the envelope header.
func (p *Payload) Rounds() int {
	return int(p.rounds)
}

// Width returns the character width marker, either WidthNarrow or WidthWide.
func (p *Payload) Width() uint8 {
	return p.width
}

// Len returns the stored data length in bytes.
func (p *Payload) Len() int {
	return len(p.data)
}

// Ciphertext returns a copy of the stored bytes.
// Plaintext decrypts the buffer in place for both widths, so once it has run this returns the decrypted characters instead.
func (p *Payload) Ciphertext() []byte {
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out
}

func checkRounds(rounds int) error {
	if rounds < 1 || rounds > 255 {
		return fmt.Errorf("%w: rounds %d outside of [1, 255]", ErrInvalidPayload, rounds)
	}
	return nil
}

func writeHeader(w io.Writer, p *Payload, dataLen int) error {
	if err := binary.Write(w, binary.BigEndian, payloadMagic); err != nil {
		return err
	}
	if err := p.mapper().Write(w, binary.BigEndian); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, uint64(dataLen))
}

// Pack screens data with the key derived from (seed, rounds) and writes the envelope to w.
// Output is bit-for-bit reproducible: the same seed and data always produce the same bytes.
func Pack(w io.Writer, seed uint64, rounds int, data []byte) error {
	if err := checkRounds(rounds); err != nil {
		return err
	}
	p := &Payload{
		seed:   seed,
		rounds: uint8(rounds),
		width:  WidthNarrow,
	}
	if err := writeHeader(w, p, len(data)); err != nil {
		return err
	}
	key := byte(InRange(seed, rounds, 0, 255))
	xw, err := NewWriter(w, key)
	if err != nil {
		return err
	}
	_, err = xw.Write(data)
	return err
}

// PackWide screens text as UTF-16 code units and writes the envelope to w.
// Each code unit is masked at its own index with the key widened to 16 bits, then stored big-endian.
func PackWide(w io.Writer, seed uint64, rounds int, text string) error {
	if err := checkRounds(rounds); err != nil {
		return err
	}
	p := &Payload{
		seed:   seed,
		rounds: uint8(rounds),
		width:  WidthWide,
	}
	units := utf16.Encode([]rune(text))
	if err := writeHeader(w, p, len(units)*2); err != nil {
		return err
	}
	key := byte(InRange(seed, rounds, 0, 255))
	masked := make([]uint16, len(units))
	for i, u := range units {
		masked[i] = mask(u, key, i)
	}
	return binary.Write(w, binary.BigEndian, masked)
}

// Unpack reads an envelope from r and returns the Payload in ciphertext state.
func Unpack(r io.Reader) (*Payload, error) {
	var magic uint16
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, err
	}
	if magic != payloadMagic {
		return nil, fmt.Errorf("%w: unrecognized magic bytes %#04x", ErrInvalidPayload, magic)
	}
	p := new(Payload)
	if err := p.mapper().Read(r, binary.BigEndian); err != nil {
		return nil, err
	}
	if err := checkRounds(int(p.rounds)); err != nil {
		return nil, err
	}
	if p.width != WidthNarrow && p.width != WidthWide {
		return nil, fmt.Errorf("%w: unknown character width %d", ErrInvalidPayload, p.width)
	}
	var length uint64
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, err
	}
	if length > maxPayloadLen {
		return nil, fmt.Errorf("%w: declared length %d exceeds maximum %d", ErrInvalidPayload, length, maxPayloadLen)
	}
	if p.width == WidthWide && length%2 != 0 {
		return nil, fmt.Errorf("%w: wide payload with odd length %d", ErrInvalidPayload, length)
	}
	p.data = make([]byte, int(length))
	if _, err := io.ReadFull(r, p.data); err != nil {
		return nil, fmt.Errorf("%w: truncated payload: %v", ErrInvalidPayload, err)
	}
	return p, nil
}

// Plaintext decrypts the payload and returns the original text.
// Like ObfuscatedString.Decrypt, it works exactly once; a second call fails with ErrAlreadyDecrypted.
func (p *Payload) Plaintext() (string, error) {
	if p.clear {
		return "", ErrAlreadyDecrypted
	}
	key := byte(InRange(p.seed, int(p.rounds), 0, 255))
	switch p.width {
	case WidthWide:
		units := make([]uint16, len(p.data)/2)
		for i := range units {
			u := binary.BigEndian.Uint16(p.data[i*2:])
			units[i] = mask(u, key, i)
			binary.BigEndian.PutUint16(p.data[i*2:], units[i])
		}
		p.clear = true
		return string(utf16.Decode(units)), nil
	default:
		for i := range p.data {
			p.data[i] = mask(p.data[i], key, i)
		}
		p.clear = true
		return string(p.data), nil
	}
}
