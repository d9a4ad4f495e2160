package lattice

import (
	"encoding/binary"
	"fmt"
)

const (
	encodingMagic   = 'Z'
	encodingVersion = 1
	// magic, version, Lx, Ly
	headerLen = 2 + 4 + 4
)

// MarshalBinary encodes the lattice as a 10-byte header followed by one byte
// per stored link (N, E, S, W per real site, storage order). Link bytes use
// the Link values: 0 Blank, 1 Out, 2 In.
func (l *Lattice) MarshalBinary() ([]byte, error) {
	buf := make([]byte, headerLen, headerLen+4*len(l.vertices))
	buf[0] = encodingMagic
	buf[1] = encodingVersion
	binary.BigEndian.PutUint32(buf[2:6], uint32(l.size.X))
	binary.BigEndian.PutUint32(buf[6:10], uint32(l.size.Y))
	for _, v := range l.vertices {
		buf = append(buf, byte(v.N), byte(v.E), byte(v.S), byte(v.W))
	}

	return buf, nil
}

// UnmarshalBinary replaces the receiver with the encoded lattice and
// recomputes the filled-link counter from the decoded links.
func (l *Lattice) UnmarshalBinary(data []byte) error {
	if len(data) < headerLen || data[0] != encodingMagic || data[1] != encodingVersion {
		return fmt.Errorf("header: %w", ErrCorruptEncoding)
	}
	lx := int(binary.BigEndian.Uint32(data[2:6]))
	ly := int(binary.BigEndian.Uint32(data[6:10]))
	if err := ValidateSize(lx, ly); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptEncoding, err)
	}
	// The body holds 2·lx·ly bytes. Bounding each side by the body length
	// first keeps the product from overflowing and New from allocating a
	// size the data cannot back.
	body := data[headerLen:]
	if lx > len(body) || ly > len(body) || 2*lx*ly != len(body) {
		return fmt.Errorf("body length %d for %dx%d: %w", len(body), lx, ly, ErrCorruptEncoding)
	}
	fresh, err := New(lx, ly)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptEncoding, err)
	}
	for i := range fresh.vertices {
		for j, d := range directions {
			link := Link(body[4*i+j])
			if !link.Valid() {
				return fmt.Errorf("link byte %d at site %d: %w", body[4*i+j], i, ErrCorruptEncoding)
			}
			fresh.vertices[i].setLink(d, link)
		}
	}
	fresh.filled = fresh.CountNonBlankLinks()
	*l = *fresh

	return nil
}
