package model

import (
	"encoding/json"
	"strings"
)

// An AssetKind tells how an Asset value must be rendered.
type AssetKind int

const (
	// AssetNone is an empty asset.
	AssetNone AssetKind = iota
	// AssetSymbol is a symbolic icon name (e.g. "Bot").
	AssetSymbol
	// AssetRemoteURL is an image reachable by URL.
	AssetRemoteURL
	// AssetInlineImage is an image embedded as a data URI.
	AssetInlineImage
)

// String implements fmt.Stringer.
func (k AssetKind) String() string {
	switch k {
	case AssetSymbol:
		return "symbol"
	case AssetRemoteURL:
		return "url"
	case AssetInlineImage:
		return "inline"
	default:
		return "none"
	}
}

// An Asset is an icon or an image.
// It is serialized as a plain string and classified when decoded.
type Asset struct {
	Kind  AssetKind
	Value string
}

// ParseAsset classifies the given value.
func ParseAsset(v string) Asset {
	switch {
	case v == "":
		return Asset{}
	case strings.HasPrefix(v, "data:"):
		return Asset{Kind: AssetInlineImage, Value: v}
	case strings.HasPrefix(v, "http://"),
		strings.HasPrefix(v, "https://"),
		strings.HasPrefix(v, "//"),
		strings.HasPrefix(v, "/"):
		return Asset{Kind: AssetRemoteURL, Value: v}
	default:
		return Asset{Kind: AssetSymbol, Value: v}
	}
}

// Symbol returns a symbolic asset.
func Symbol(name string) Asset {
	return Asset{Kind: AssetSymbol, Value: name}
}

// URL returns a remote asset.
func URL(u string) Asset {
	return Asset{Kind: AssetRemoteURL, Value: u}
}

// IsZero returns true for an empty asset.
func (a Asset) IsZero() bool {
	return a.Value == ""
}

// String implements fmt.Stringer.
func (a Asset) String() string {
	return a.Value
}

// MarshalJSON implements json.Marshaler.
func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Asset) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Asset{}
		return nil
	}

	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = ParseAsset(v)
	return nil
}
