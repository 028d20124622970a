package types

import (
	"crypto/sha256"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ContentID identifies a scanned file snapshot by the SHA-256 of its bytes.
// Descriptors carry offsets into exactly one snapshot, so stored results are
// keyed by content rather than path.
type ContentID [32]byte

// ComputeContentID hashes content.
func ComputeContentID(content []byte) ContentID {
	return ContentID(sha256.Sum256(content))
}

// Hex returns the 64-character hex string.
func (id ContentID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ContentID) String() string {
	return id.Hex()
}

// ParseContentID parses a 64-char hex string.
func ParseContentID(hexStr string) (ContentID, error) {
	var id ContentID
	if len(hexStr) != 2*len(id) {
		return id, fmt.Errorf("invalid content ID length: expected %d, got %d", 2*len(id), len(hexStr))
	}
	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return id, fmt.Errorf("invalid hex string: %w", err)
	}
	copy(id[:], decoded)
	return id, nil
}

// MarshalJSON implements json.Marshaler.
func (id ContentID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ContentID) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	parsed, err := ParseContentID(hexStr)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value implements driver.Valuer.
func (id ContentID) Value() (driver.Value, error) {
	return id.Hex(), nil
}

// Scan implements sql.Scanner.
func (id *ContentID) Scan(value interface{}) error {
	var hexStr string
	switch v := value.(type) {
	case string:
		hexStr = v
	case []byte:
		hexStr = string(v)
	default:
		return fmt.Errorf("cannot scan type %T into ContentID", value)
	}
	parsed, err := ParseContentID(hexStr)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
