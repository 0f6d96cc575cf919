package hxhoc

import (
	"github.com/pthm/hxhoc/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// EncodeProps packs props for use in a URL. Sensitive HOCs get encrypted
// payloads; everything else is signed.
func EncodeProps(enc *Encoder, h *HOC, props Props) (string, error) {
	return enc.Encode(props, h.IsSensitive())
}

// DecodeProps reverses EncodeProps. Encoding failures are mapped onto the
// package sentinel errors.
func DecodeProps(enc *Encoder, h *HOC, encoded string) (Props, error) {
	m, err := enc.Decode(encoded, h.IsSensitive())
	if err != nil {
		return nil, WrapDecodeError(err)
	}
	return Props(m), nil
}
