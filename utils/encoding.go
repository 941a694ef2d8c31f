package utils

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

const maxDWORD = 0xFFFFFFFF

// CheckDWORD validates that n fits an unsigned 32 bit integer
func CheckDWORD(n int64) (uint32, error) {
	input := strconv.FormatInt(n, 10)
	if n < 0 {
		return 0, newEncodingError(input, "number is less than 0", nil)
	}
	if n > maxDWORD {
		return 0, newEncodingError(input, "number is more than 2**32-1", nil)
	}
	return uint32(n), nil
}

// ParseDWORD parses a decimal string into an unsigned 32 bit integer
func ParseDWORD(s string) (uint32, error) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "-") {
		if _, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return 0, newEncodingError(s, "number is less than 0", nil)
		}
	}
	n, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, newEncodingError(s, "number is more than 2**32-1", nil)
		}
		return 0, newEncodingError(s, "not a decimal number", err)
	}
	if n > maxDWORD {
		return 0, newEncodingError(s, "number is more than 2**32-1", nil)
	}
	return uint32(n), nil
}

// DWORDHexFromNumber encodes n as 8 lowercase hex digits
func DWORDHexFromNumber(n int64) (string, error) {
	dword, err := CheckDWORD(n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%08x", dword), nil
}

// DWORDHexFromString parses a decimal string and encodes it as 8 lowercase hex digits
func DWORDHexFromString(s string) (string, error) {
	dword, err := ParseDWORD(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%08x", dword), nil
}

// DWORDHexToNumber decodes a hex string (optionally 0x prefixed) of at most 32 bits
func DWORDHexToNumber(s string) (uint32, error) {
	digits := trimHexPrefix(strings.TrimSpace(s))
	if digits == "" {
		return 0, newEncodingError(s, "not hexadecimal", nil)
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, newEncodingError(s, "number is more than 2**32-1", nil)
		}
		return 0, newEncodingError(s, "not hexadecimal", err)
	}
	return uint32(n), nil
}

// BytesToHex encodes bytes as lowercase hex without prefix
func BytesToHex(data []byte) string {
	return hex.EncodeToString(data)
}

// HexToBytes decodes hex text, with or without 0x prefix
func HexToBytes(s string) ([]byte, error) {
	digits := trimHexPrefix(s)
	if len(digits)%2 != 0 {
		return nil, newEncodingError(s, "odd length hex string", nil)
	}
	data, err := hex.DecodeString(digits)
	if err != nil {
		return nil, newEncodingError(s, "not hexadecimal", err)
	}
	return data, nil
}

// Str2Vec returns the UTF-16 code units of s, the layout of on-chain string properties
func Str2Vec(s string) []int {
	units := utf16.Encode([]rune(s))
	vec := make([]int, len(units))
	for i, unit := range units {
		vec[i] = int(unit)
	}
	return vec
}

// Vec2Str builds text from UTF-16 code units. Codes outside 0..0xFFFF and unpaired
// surrogates are rejected.
func Vec2Str(vec []int) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(vec); i++ {
		code := vec[i]
		if code < 0 || code > 0xFFFF {
			return "", newEncodingError(strconv.Itoa(code), fmt.Sprintf("char code at %d out of range", i), nil)
		}
		r := rune(code)
		if !utf16.IsSurrogate(r) {
			sb.WriteRune(r)
			continue
		}
		if i+1 < len(vec) {
			if decoded := utf16.DecodeRune(r, rune(vec[i+1])); decoded != unicode.ReplacementChar {
				sb.WriteRune(decoded)
				i++
				continue
			}
		}
		return "", newEncodingError(strconv.Itoa(code), fmt.Sprintf("unpaired surrogate at %d", i), nil)
	}
	return sb.String(), nil
}

// ParseVec converts decimal char codes given as text, as some nodes return them
func ParseVec(items []string) ([]int, error) {
	vec := make([]int, len(items))
	for i, item := range items {
		code, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			return nil, newEncodingError(item, fmt.Sprintf("char code at %d is not a number", i), err)
		}
		vec[i] = code
	}
	return vec, nil
}

func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
