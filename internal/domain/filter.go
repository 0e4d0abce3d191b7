package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPattern is returned when an SSID filter pattern does not compile.
var ErrInvalidPattern = errors.New("invalid ssid pattern")

// Filter decides per record whether it is kept. Each predicate is optional
// and an unset predicate always passes; set predicates are AND-combined.
//
// SSID patterns are matched against the raw kismet.device.base.name, not the
// resolved SSID, so a record with an empty base name never matches an include
// pattern even when ResolveSSID falls back to another source.
type Filter struct {
	include    *regexp.Regexp
	exclude    *regexp.Regexp
	encryption *string
	deviceType *string
}

// FilterOption configures a Filter.
type FilterOption func(*filterOptions)

type filterOptions struct {
	include    *string
	exclude    *string
	encryption *string
	deviceType *string
}

// WithSSIDPattern keeps only records whose base name matches pattern at its start.
func WithSSIDPattern(pattern string) FilterOption {
	return func(o *filterOptions) { o.include = &pattern }
}

// WithExcludeSSIDPattern drops records whose base name matches pattern at its start.
func WithExcludeSSIDPattern(pattern string) FilterOption {
	return func(o *filterOptions) { o.exclude = &pattern }
}

// WithEncryption keeps only records whose encryption contains sub (case-sensitive).
func WithEncryption(sub string) FilterOption {
	return func(o *filterOptions) { o.encryption = &sub }
}

// WithDeviceType keeps only records whose base type contains sub (case-sensitive).
func WithDeviceType(sub string) FilterOption {
	return func(o *filterOptions) { o.deviceType = &sub }
}

// NewFilter compiles the configured predicates.
func NewFilter(opts ...FilterOption) (*Filter, error) {
	var o filterOptions
	for _, opt := range opts {
		opt(&o)
	}

	f := &Filter{encryption: o.encryption, deviceType: o.deviceType}
	var err error
	if o.include != nil {
		if f.include, err = compilePrefixPattern(*o.include); err != nil {
			return nil, err
		}
	}
	if o.exclude != nil {
		if f.exclude, err = compilePrefixPattern(*o.exclude); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// compilePrefixPattern anchors pattern at the start of the input only, so
// "Home" matches "HomeNet" but "Net" does not.
func compilePrefixPattern(pattern string) (*regexp.Regexp, error) {
	// Validate the bare pattern first; wrapping alone could hide a stray ")".
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
	}
	return regexp.MustCompile(`^(?:` + pattern + `)`), nil
}

// Accept reports whether the record passes every configured predicate.
// A nil Filter accepts everything.
func (f *Filter) Accept(r RawRecord) bool {
	if f == nil {
		return true
	}
	if f.include != nil && !f.include.MatchString(Name(r)) {
		return false
	}
	if f.exclude != nil && f.exclude.MatchString(Name(r)) {
		return false
	}
	if f.encryption != nil && !strings.Contains(Encryption(r), *f.encryption) {
		return false
	}
	if f.deviceType != nil && !strings.Contains(Type(r), *f.deviceType) {
		return false
	}
	return true
}
