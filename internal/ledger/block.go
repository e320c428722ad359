package ledger

import (
	"encoding/binary"
	"slices"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Block is a sealed batch of transactions. Blocks are immutable once appended
// to the chain; the previous block is always reached by index, never by pointer.
type Block struct {
	Index        int           // position in the chain, genesis is 0
	Timestamp    time.Time     // creation instant
	Transactions []Transaction // in admission order
	Proof        uint64        // accepted puzzle solution
	PreviousHash string        // Hash of the block at Index-1, empty for genesis
	Hash         string        // digest of this block, computed when it is created
}

// clone returns a copy of b that shares no memory with it.
func (b Block) clone() Block {
	b.Transactions = slices.Clone(b.Transactions)
	return b
}

// DigestMode selects what a block digest commits to.
type DigestMode int

const (
	// DigestTimestamp hashes only the block's creation instant. Two blocks with
	// different content but the same timestamp share a digest, so PreviousHash
	// links blocks but is not a tamper-evidence guarantee.
	DigestTimestamp DigestMode = iota

	// DigestContent hashes index, timestamp, transactions, proof and previous
	// hash, making PreviousHash a content commitment.
	DigestContent
)

// String returns the configuration name of the mode.
func (m DigestMode) String() string {
	switch m {
	case DigestContent:
		return "content"
	default:
		return "timestamp"
	}
}

// ParseDigestMode maps "timestamp" and "content" to their DigestMode.
func ParseDigestMode(s string) (DigestMode, bool) {
	switch s {
	case "timestamp":
		return DigestTimestamp, true
	case "content":
		return DigestContent, true
	}

	return DigestTimestamp, false
}

// digest computes the xxhash64 digest of b under mode, rendered in base 10.
// The Hash field of b is ignored.
func digest(mode DigestMode, b Block) string {
	h := xxhash.New()

	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	writeString := func(s string) {
		writeUint(uint64(len(s)))
		_, _ = h.WriteString(s)
	}

	writeUint(uint64(b.Timestamp.UnixNano()))

	if mode == DigestContent {
		writeUint(uint64(b.Index))
		writeUint(uint64(len(b.Transactions)))
		for _, tx := range b.Transactions {
			writeString(tx.Sender)
			writeString(tx.Recipient)
			writeString(tx.Amount.String())
		}
		writeUint(b.Proof)
		writeString(b.PreviousHash)
	}

	return strconv.FormatUint(h.Sum64(), 10)
}
