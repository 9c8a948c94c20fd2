package ogg

import "encoding/binary"

// Ogg CRC-32 implementation using polynomial 0x04C11DB7.
//
// Note: This is NOT the standard IEEE CRC-32 (polynomial 0xEDB88320).
// The register is not reflected, starts at 0 and has no final XOR, so
// the standard library hash/crc32 package cannot be used here.

// oggCRCTable is the pre-computed lookup table for Ogg CRC-32.
var oggCRCTable [256]uint32

func init() {
	const poly = uint32(0x04C11DB7)
	for i := 0; i < 256; i++ {
		crc := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		oggCRCTable[i] = crc
	}
}

// oggCRC computes the Ogg CRC-32 checksum from scratch.
func oggCRC(data []byte) uint32 {
	return oggCRCUpdate(0, data)
}

// oggCRCUpdate updates a running CRC with additional data.
func oggCRCUpdate(crc uint32, data []byte) uint32 {
	for _, b := range data {
		crc = (crc << 8) ^ oggCRCTable[byte(crc>>24)^b]
	}
	return crc
}

var zeroChecksum [4]byte

// pageCRC hashes a whole page with the checksum field read as zero.
// The page bytes are not modified.
func pageCRC(page []byte) uint32 {
	crc := oggCRCUpdate(0, page[:checksumOffset])
	crc = oggCRCUpdate(crc, zeroChecksum[:])
	return oggCRCUpdate(crc, page[checksumOffset+4:])
}

// ChecksumOf returns the checksum the given page bytes should carry,
// hashing the checksum field as zero. It returns 0 for buffers shorter
// than the fixed page header.
func ChecksumOf(page []byte) uint32 {
	if len(page) < pageHeaderSize {
		return 0
	}
	return pageCRC(page)
}

func writeChecksum(page []byte) {
	binary.LittleEndian.PutUint32(page[checksumOffset:checksumOffset+4], pageCRC(page))
}
