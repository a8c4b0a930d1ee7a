package graph

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unsafe"
)

const (
	magicBytes = "PCACHE01"
	version    = uint32(1)
	maxNodes   = 50_000_000
	maxEdges   = 200_000_000
)

// fileHeader is the binary header for an exported Snapshot.
type fileHeader struct {
	Magic    [8]byte
	Version  uint32
	NumNodes uint32
	NumEdges uint32
}

// ExportSnapshot serializes snap to path. Intended for inspection
// tooling, not for persisting the live mutable cache: a Snapshot
// reflects one instant and carries no way to resume incremental updates
// against it.
func ExportSnapshot(path string, snap *Snapshot) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	cw := &crc32Writer{w: f, hash: crc32.NewIEEE()}

	hdr := fileHeader{
		Version:  version,
		NumNodes: snap.NumNodes,
		NumEdges: uint32(len(snap.Head)),
	}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := writeUint64Slice(cw, snap.IDs); err != nil {
		return fmt.Errorf("write IDs: %w", err)
	}
	if err := writeInt32Slice(cw, snap.PosX); err != nil {
		return fmt.Errorf("write PosX: %w", err)
	}
	if err := writeInt32Slice(cw, snap.PosY); err != nil {
		return fmt.Errorf("write PosY: %w", err)
	}
	if err := writeInt32Slice(cw, snap.ChunkCX); err != nil {
		return fmt.Errorf("write ChunkCX: %w", err)
	}
	if err := writeInt32Slice(cw, snap.ChunkCY); err != nil {
		return fmt.Errorf("write ChunkCY: %w", err)
	}
	if err := writeUint32Slice(cw, snap.FirstOut); err != nil {
		return fmt.Errorf("write FirstOut: %w", err)
	}
	if err := writeUint32Slice(cw, snap.Head); err != nil {
		return fmt.Errorf("write Head: %w", err)
	}
	if err := writeInt64Slice(cw, snap.Weight); err != nil {
		return fmt.Errorf("write Weight: %w", err)
	}
	if err := writeByteSlice(cw, snap.Bridge); err != nil {
		return fmt.Errorf("write Bridge: %w", err)
	}

	checksum := cw.hash.Sum32()
	if err := binary.Write(f, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ImportSnapshot deserializes a Snapshot previously written by
// ExportSnapshot, validating its CRC32 trailer and CSR invariants.
func ImportSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	cr := &crc32Reader{r: f, hash: crc32.NewIEEE()}

	var hdr fileHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != magicBytes {
		return nil, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}
	if hdr.NumNodes > maxNodes {
		return nil, fmt.Errorf("NumNodes %d exceeds limit %d", hdr.NumNodes, maxNodes)
	}
	if hdr.NumEdges > maxEdges {
		return nil, fmt.Errorf("NumEdges %d exceeds limit %d", hdr.NumEdges, maxEdges)
	}

	snap := &Snapshot{NumNodes: hdr.NumNodes}
	n := int(hdr.NumNodes)
	e := int(hdr.NumEdges)

	if snap.IDs, err = readUint64Slice(cr, n); err != nil {
		return nil, fmt.Errorf("read IDs: %w", err)
	}
	if snap.PosX, err = readInt32Slice(cr, n); err != nil {
		return nil, fmt.Errorf("read PosX: %w", err)
	}
	if snap.PosY, err = readInt32Slice(cr, n); err != nil {
		return nil, fmt.Errorf("read PosY: %w", err)
	}
	if snap.ChunkCX, err = readInt32Slice(cr, n); err != nil {
		return nil, fmt.Errorf("read ChunkCX: %w", err)
	}
	if snap.ChunkCY, err = readInt32Slice(cr, n); err != nil {
		return nil, fmt.Errorf("read ChunkCY: %w", err)
	}
	if snap.FirstOut, err = readUint32Slice(cr, n+1); err != nil {
		return nil, fmt.Errorf("read FirstOut: %w", err)
	}
	if snap.Head, err = readUint32Slice(cr, e); err != nil {
		return nil, fmt.Errorf("read Head: %w", err)
	}
	if snap.Weight, err = readInt64Slice(cr, e); err != nil {
		return nil, fmt.Errorf("read Weight: %w", err)
	}
	if snap.Bridge, err = readByteSlice(cr, e); err != nil {
		return nil, fmt.Errorf("read Bridge: %w", err)
	}

	expectedCRC := cr.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(f, binary.LittleEndian, &storedCRC); err != nil {
		return nil, fmt.Errorf("read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, fmt.Errorf("CRC32 mismatch: stored=%08x computed=%08x", storedCRC, expectedCRC)
	}

	if err := validateCSR(snap.FirstOut, snap.Head, hdr.NumNodes); err != nil {
		return nil, fmt.Errorf("CSR invalid: %w", err)
	}
	return snap, nil
}

func validateCSR(firstOut []uint32, head []uint32, numNodes uint32) error {
	if uint32(len(firstOut)) != numNodes+1 {
		return fmt.Errorf("FirstOut length %d != NumNodes+1 %d", len(firstOut), numNodes+1)
	}
	numEdges := firstOut[numNodes]
	if uint32(len(head)) != numEdges {
		return fmt.Errorf("Head length %d != FirstOut[NumNodes] %d", len(head), numEdges)
	}
	for i := uint32(1); i <= numNodes; i++ {
		if firstOut[i] < firstOut[i-1] {
			return fmt.Errorf("FirstOut not monotonic at %d: %d < %d", i, firstOut[i], firstOut[i-1])
		}
	}
	for i, h := range head {
		if h >= numNodes {
			return fmt.Errorf("Head[%d]=%d >= NumNodes=%d", i, h, numNodes)
		}
	}
	return nil
}

// Zero-copy I/O helpers using unsafe.Slice, matched to the fixed-width
// fields a Snapshot is made of.

func writeUint32Slice(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeInt32Slice(w io.Writer, s []int32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeInt64Slice(w io.Writer, s []int64) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

func writeUint64Slice(w io.Writer, s []uint64) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

func writeByteSlice(w io.Writer, s []uint8) error {
	if len(s) == 0 {
		return nil
	}
	_, err := w.Write(s)
	return err
}

func readUint32Slice(r io.Reader, n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readInt32Slice(r io.Reader, n int) ([]int32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]int32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readInt64Slice(r io.Reader, n int) ([]int64, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]int64, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readUint64Slice(r io.Reader, n int) ([]uint64, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint64, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readByteSlice(r io.Reader, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]byte, n)
	if _, err := io.ReadFull(r, s); err != nil {
		return nil, err
	}
	return s, nil
}

// CRC32 wrapping writers/readers.

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
