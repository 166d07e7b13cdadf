// Package ledger implements the ledger client (C3): Ed25519 keypair
// generation rendered in the ledger's strkey address format, test-account
// funding, and memo-bearing payment anchoring. See SPEC_FULL.md §4.3.
package ledger

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

const (
	versionPublicKey byte = 6 << 3  // 'G...' addresses
	versionSeed      byte = 18 << 3 // 'S...' secret seeds
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// crc16xmodem computes the CRC-16/XMODEM checksum used by the ledger's
// strkey encoding (polynomial 0x1021, initial value 0).
func crc16xmodem(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// encodeStrkey renders version||payload||crc16(version||payload) as an
// unpadded base32 string. A 1-byte version plus 32-byte payload plus 2-byte
// checksum is 35 bytes, which base32-encodes to exactly 56 characters.
func encodeStrkey(version byte, payload []byte) string {
	buf := make([]byte, 0, 1+len(payload)+2)
	buf = append(buf, version)
	buf = append(buf, payload...)

	crc := crc16xmodem(buf)
	buf = append(buf, byte(crc), byte(crc>>8))

	return encoding.EncodeToString(buf)
}

func decodeStrkey(s string, wantVersion byte) ([]byte, error) {
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("ledger: decode strkey: %w", err)
	}
	if len(raw) != 35 {
		return nil, fmt.Errorf("ledger: strkey has unexpected length %d", len(raw))
	}
	version := raw[0]
	payload := raw[1 : len(raw)-2]
	wantCRC := crc16xmodem(raw[:len(raw)-2])
	gotCRC := uint16(raw[len(raw)-2]) | uint16(raw[len(raw)-1])<<8
	if wantCRC != gotCRC {
		return nil, fmt.Errorf("ledger: strkey checksum mismatch")
	}
	if version != wantVersion {
		return nil, fmt.Errorf("ledger: strkey version mismatch")
	}
	return payload, nil
}

// EncodePublicKey renders a 32-byte Ed25519 public key as a 56-character
// 'G...' address.
func EncodePublicKey(pub ed25519.PublicKey) string {
	return encodeStrkey(versionPublicKey, pub)
}

// EncodeSeed renders a 32-byte Ed25519 seed as a 56-character 'S...' secret key.
func EncodeSeed(seed []byte) string {
	return encodeStrkey(versionSeed, seed)
}

// DecodeSeed parses a 56-character 'S...' secret key back into its 32-byte
// Ed25519 seed, from which the full keypair can be reconstructed.
func DecodeSeed(secretKey string) (ed25519.PrivateKey, error) {
	seed, err := decodeStrkey(secretKey, versionSeed)
	if err != nil {
		return nil, err
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// ValidatePublicKey reports whether publicKey has the correct strkey shape
// for a ledger account address.
func ValidatePublicKey(publicKey string) bool {
	_, err := decodeStrkey(publicKey, versionPublicKey)
	return err == nil
}

// GenerateKeypair creates a fresh Ed25519 keypair rendered in the ledger's
// address format.
func GenerateKeypair() (publicKey, secretKey string, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("ledger: generate keypair: %w", err)
	}
	seed := priv.Seed()
	return EncodePublicKey(pub), EncodeSeed(seed), nil
}
