// Package object serializes and deserializes LC-3 object images: a
// big-endian stream of 16-bit words whose first word is the load
// origin and whose remaining words are the program image.
package object

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Image is a decoded LC-3 object file: a load origin and the words to
// place starting at that address.
type Image struct {
	Origin uint16
	Words  []uint16
}

// Encode writes words (origin word first, as produced by
// assembler.Encode) to w in big-endian byte order.
func Encode(w io.Writer, words []uint16) error {
	buf := make([]byte, 2)
	for _, word := range words {
		binary.BigEndian.PutUint16(buf, word)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("object: write word: %w", err)
		}
	}
	return nil
}

// Decode reads a big-endian LC-3 object stream from r: the first word
// is the origin, the rest is the image.
func Decode(r io.Reader) (*Image, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("object: read: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("object: stream length %d is not a whole number of 16-bit words", len(raw))
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("object: empty stream, missing origin word")
	}

	words := make([]uint16, len(raw)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(raw[i*2 : i*2+2])
	}

	return &Image{Origin: words[0], Words: words[1:]}, nil
}
