// Package common provides utility functions for random identifiers and
// profile attributes shared by both storage variants.
package common

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding them as a hexadecimal string, so the final string length is twice
// the size.
//
// It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// RandomHue returns a uniformly distributed color hue in [0, 359].
// Assigned to every user at registration and preserved across profile edits.
func RandomHue() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(360))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
