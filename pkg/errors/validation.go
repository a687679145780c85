package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxGenotypeLength bounds the size of a genotype accepted from users.
// Real genotypes are a few hundred bytes.
const MaxGenotypeLength = 64 << 10

// ValidateGenotypeInput rejects user input that cannot be a genotype
// before it reaches the decoder: blank text, text over MaxGenotypeLength
// bytes and text with control characters inside it. Surrounding
// whitespace is ignored. Failures carry ErrCodeInvalidSyntax, so users see
// RejectedMessage like any other bad genotype.
func ValidateGenotypeInput(code string) error {
	if len(code) > MaxGenotypeLength {
		return New(ErrCodeInvalidSyntax, "genotype too long (max %d bytes)", MaxGenotypeLength)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return New(ErrCodeInvalidSyntax, "genotype cannot be empty")
	}
	if i := strings.IndexFunc(code, unicode.IsControl); i >= 0 {
		return New(ErrCodeInvalidSyntax, "genotype contains a control character at byte %d", i)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}

// ValidateCount checks a batch size against the range [1, limit].
func ValidateCount(n, limit int) error {
	switch {
	case n < 1:
		return New(ErrCodeInvalidInput, "count must be at least 1")
	case n > limit:
		return New(ErrCodeInvalidInput, "count too large (max %d)", limit)
	}
	return nil
}
