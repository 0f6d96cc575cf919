package encoding

import (
	"errors"
	"testing"
)

func TestNewEncoder(t *testing.T) {
	// Should work with any key length (derives 32-byte key)
	_, err := NewEncoder([]byte("short"))
	if err != nil {
		t.Fatalf("NewEncoder with short key failed: %v", err)
	}

	_, err = NewEncoder([]byte("this-is-a-32-byte-key-for-aes!!!"))
	if err != nil {
		t.Fatalf("NewEncoder with 32-byte key failed: %v", err)
	}

	_, err = NewEncoder([]byte("this-key-is-considerably-longer-than-thirty-two-bytes"))
	if err != nil {
		t.Fatalf("NewEncoder with long key failed: %v", err)
	}
}

func TestSignedRoundTrip(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	original := map[string]any{"name": "x", "age": "28", "admin": true}

	encoded, err := enc.Encode(original, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(encoded) == 0 {
		t.Fatal("Encoded string is empty")
	}

	decoded, err := enc.Decode(encoded, false)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if decoded["name"] != "x" {
		t.Errorf("name mismatch: got %v, want %q", decoded["name"], "x")
	}
	if decoded["age"] != "28" {
		t.Errorf("age mismatch: got %v, want %q", decoded["age"], "28")
	}
	if decoded["admin"] != true {
		t.Errorf("admin mismatch: got %v, want true", decoded["admin"])
	}
}

func TestEncryptedRoundTrip(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	original := map[string]any{"user": "secret-user"}

	encoded, err := enc.Encode(original, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := enc.Decode(encoded, true)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded["user"] != "secret-user" {
		t.Errorf("user mismatch: got %v", decoded["user"])
	}
}

func TestSignatureVerificationFailure(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	encoded, err := enc.Encode(map[string]any{"name": "test"}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Swap the payload for a different one under the old signature
	other, err := enc.Encode(map[string]any{"name": "evil"}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	tampered := other[:indexDot(other)] + encoded[indexDot(encoded):]

	_, err = enc.Decode(tampered, false)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Expected ErrSignatureInvalid, got: %v", err)
	}
}

func TestDecryptionFailure(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	encoded, err := enc.Encode(map[string]any{"name": "test"}, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tampered := encoded[:len(encoded)-4] + "AAAA"
	if tampered == encoded {
		tampered = encoded[:len(encoded)-4] + "BBBB"
	}

	_, err = enc.Decode(tampered, true)
	if err == nil {
		t.Error("Expected error for tampered ciphertext, got nil")
	}
}

func TestInvalidFormat(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	_, err = enc.Decode("invalidbase64withoutseparator", false)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got: %v", err)
	}

	_, err = enc.Decode("!!!", true)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat for bad ciphertext encoding, got: %v", err)
	}
}

func TestDifferentKeysCannotDecode(t *testing.T) {
	enc1, _ := NewEncoder([]byte("key-one"))
	enc2, _ := NewEncoder([]byte("key-two"))

	encoded, err := enc1.Encode(map[string]any{"name": "test"}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if _, err := enc2.Decode(encoded, false); err == nil {
		t.Error("Expected error when decoding with different key")
	}
}

func TestEmptyProps(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	for _, sensitive := range []bool{false, true} {
		encoded, err := enc.Encode(nil, sensitive)
		if err != nil {
			t.Fatalf("Encode(sensitive=%v) failed: %v", sensitive, err)
		}

		decoded, err := enc.Decode(encoded, sensitive)
		if err != nil {
			t.Fatalf("Decode(sensitive=%v) failed: %v", sensitive, err)
		}
		if decoded == nil || len(decoded) != 0 {
			t.Errorf("Empty props not decoded correctly: %v", decoded)
		}
	}
}

func indexDot(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return i
		}
	}
	return len(s)
}
