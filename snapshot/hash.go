// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package snapshot

import murmur "github.com/aviddiviner/go-murmur"

// checksumSeed is mixed into every payload checksum.  Changing it
// invalidates existing snapshots.
const checksumSeed = uint64(0x56454354)

// checksum hashes the raw, uncompressed element bytes.
func checksum(raw []byte) uint64 {
	return murmur.MurmurHash64A(raw, checksumSeed)
}
