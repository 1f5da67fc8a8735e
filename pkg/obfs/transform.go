package obfs

// Char constrains the supported character widths: narrow byte strings and wide UTF-16 code units.
type Char interface {
	~uint8 | ~uint16
}

// mask applies the keystream to one character at the given index.
// The key widens to the character's type before the index is added, so narrow and wide text mask with matching operand sizes.
// XOR is its own inverse, so the same call both encrypts and decrypts.
func mask[C Char](c C, key byte, index int) C {
	return c ^ (C(key) + C(index))
}
