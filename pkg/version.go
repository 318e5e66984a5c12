package yeyo

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Token is a prerelease token. The zero value means "no prerelease".
type Token string

// The supported prerelease tokens, in ascending order.
const (
	TokenDev   Token = "dev"
	TokenAlpha Token = "a"
	TokenBeta  Token = "b"
	TokenRC    Token = "rc"
)

// DefaultToken is used when a prerelease is started without an explicit token.
const DefaultToken = TokenDev

// Tokens lists the supported prerelease tokens in ascending order.
var Tokens = []Token{TokenDev, TokenAlpha, TokenBeta, TokenRC}

// rank orders tokens dev < a < b < rc. Unknown tokens rank 0.
func (t Token) rank() int {
	for i, tok := range Tokens {
		if tok == t {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether t is one of the supported tokens.
func (t Token) Valid() bool {
	return t.rank() > 0
}

// ParseToken parses a prerelease token.
func ParseToken(s string) (Token, error) {
	t := Token(s)
	if !t.Valid() {
		return "", newError(ParseError, "unknown prerelease token %q (want one of %s)", s, tokenList())
	}
	return t, nil
}

func tokenList() string {
	names := make([]string, len(Tokens))
	for i, t := range Tokens {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Version is an immutable semantic version with an optional prerelease.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	// Token is empty when the version has no prerelease.
	Token Token
	// Number is the prerelease number. It is always 0 when Token is empty.
	Number uint64
}

var versionRe = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-([a-z]+)\.(0|[1-9]\d*))?$`)

// ParseVersion parses MAJOR.MINOR.PATCH or MAJOR.MINOR.PATCH-TOKEN.N.
// Surrounding whitespace is ignored.
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	m := versionRe.FindStringSubmatch(raw)
	if m == nil {
		return Version{}, parseFailure(raw)
	}

	var v Version
	var err error
	if v.Major, err = strconv.ParseUint(m[1], 10, 64); err != nil {
		return Version{}, &Error{Kind: ParseError, Message: fmt.Sprintf("invalid major in %q", raw), Cause: err}
	}
	if v.Minor, err = strconv.ParseUint(m[2], 10, 64); err != nil {
		return Version{}, &Error{Kind: ParseError, Message: fmt.Sprintf("invalid minor in %q", raw), Cause: err}
	}
	if v.Patch, err = strconv.ParseUint(m[3], 10, 64); err != nil {
		return Version{}, &Error{Kind: ParseError, Message: fmt.Sprintf("invalid patch in %q", raw), Cause: err}
	}
	if m[4] != "" {
		tok, err := ParseToken(m[4])
		if err != nil {
			return Version{}, newError(ParseError, "version %q has unsupported prerelease token %q (want one of %s)", raw, m[4], tokenList())
		}
		v.Token = tok
		if v.Number, err = strconv.ParseUint(m[5], 10, 64); err != nil {
			return Version{}, &Error{Kind: ParseError, Message: fmt.Sprintf("invalid prerelease number in %q", raw), Cause: err}
		}
	}
	return v, nil
}

// parseFailure explains why raw was rejected. Strings that are valid semver
// but use a prerelease or build form yeyo does not track get a specific message.
func parseFailure(raw string) error {
	if !isFullSemver("v" + raw) {
		return newError(ParseError, "%q is not a semantic version (want MAJOR.MINOR.PATCH[-TOKEN.N])", raw)
	}
	if b := semver.Build("v" + raw); b != "" {
		return newError(ParseError, "version %q has build metadata %q, which is not supported", raw, b)
	}
	return newError(ParseError, "version %q has unsupported prerelease %q (want -TOKEN.N with TOKEN one of %s)",
		raw, strings.TrimPrefix(semver.Prerelease("v"+raw), "-"), tokenList())
}

// isFullSemver is semver.IsValid without the vMAJOR and vMAJOR.MINOR
// shorthands.
func isFullSemver(v string) bool {
	if !semver.IsValid(v) {
		return false
	}
	return semver.Canonical(v) == strings.TrimSuffix(v, semver.Build(v))
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical form of v.
func (v Version) String() string {
	base := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Token != "" {
		return fmt.Sprintf("%s-%s.%d", base, v.Token, v.Number)
	}
	return base
}

// IsPrerelease reports whether v carries a prerelease.
func (v Version) IsPrerelease() bool {
	return v.Token != ""
}

// BumpMajor returns {major+1, 0, 0} without prerelease. Like BumpMinor and
// BumpPatch it wraps at math.MaxUint64; Bump rejects that case.
func BumpMajor(v Version) Version {
	return Version{Major: v.Major + 1}
}

// BumpMinor returns {major, minor+1, 0} without prerelease.
func BumpMinor(v Version) Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// BumpPatch returns {major, minor, patch+1} without prerelease.
func BumpPatch(v Version) Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// ToPrerelease moves v onto the prerelease track of tok. A version without a
// prerelease, or with a different token, starts at tok.0; the same token
// increments the number. Tokens are not required to progress monotonically.
func ToPrerelease(v Version, tok Token) Version {
	next := v
	if v.Token == tok {
		next.Number = v.Number + 1
		return next
	}
	next.Token = tok
	next.Number = 0
	return next
}

// BumpPrerelease increments the prerelease number of v.
func BumpPrerelease(v Version) (Version, error) {
	if !v.IsPrerelease() {
		return Version{}, newError(InvalidStateError, "version %s has no prerelease to bump", v)
	}
	next := v
	next.Number++
	return next, nil
}

// Finalize drops the prerelease of v. Finalizing a final version is an error.
func Finalize(v Version) (Version, error) {
	if !v.IsPrerelease() {
		return Version{}, newError(InvalidStateError, "version %s has no prerelease to finalize", v)
	}
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}, nil
}

// Compare returns -1, 0 or 1. A final version sorts after all of its
// prereleases, and prereleases sort by token (dev < a < b < rc), then number.
func Compare(a, b Version) int {
	if c := cmpUint(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmpUint(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := cmpUint(a.Patch, b.Patch); c != 0 {
		return c
	}
	switch {
	case !a.IsPrerelease() && !b.IsPrerelease():
		return 0
	case !a.IsPrerelease():
		return 1
	case !b.IsPrerelease():
		return -1
	}
	if c := cmpUint(uint64(a.Token.rank()), uint64(b.Token.rank())); c != 0 {
		return c
	}
	return cmpUint(a.Number, b.Number)
}

func overflow(v Version, part string) error {
	return newError(InvalidStateError, "cannot bump the %s of %s past its maximum", part, v)
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// BumpKind names a version transition.
type BumpKind string

// Supported bump kinds.
const (
	BumpKindMajor      BumpKind = "major"
	BumpKindMinor      BumpKind = "minor"
	BumpKindPatch      BumpKind = "patch"
	BumpKindPrerelease BumpKind = "prerelease"
	BumpKindFinalize   BumpKind = "finalize"
	BumpKindExplicit   BumpKind = "explicit"
)

// Bump applies kind to v. For major, minor and patch, prerel moves the result
// onto the tok prerelease track (e.g. 1.0.0 -> 2.0.0-dev.0). For prerelease,
// an empty tok increments the current prerelease, or starts a DefaultToken
// prerelease when there is none; a non-empty tok goes through ToPrerelease.
func Bump(v Version, kind BumpKind, prerel bool, tok Token) (Version, error) {
	if tok != "" && !tok.Valid() {
		return Version{}, newError(ParseError, "unknown prerelease token %q (want one of %s)", tok, tokenList())
	}
	var next Version
	switch kind {
	case BumpKindMajor:
		if v.Major == math.MaxUint64 {
			return Version{}, overflow(v, "major")
		}
		next = BumpMajor(v)
	case BumpKindMinor:
		if v.Minor == math.MaxUint64 {
			return Version{}, overflow(v, "minor")
		}
		next = BumpMinor(v)
	case BumpKindPatch:
		if v.Patch == math.MaxUint64 {
			return Version{}, overflow(v, "patch")
		}
		next = BumpPatch(v)
	case BumpKindPrerelease:
		if v.IsPrerelease() && v.Number == math.MaxUint64 && (tok == "" || tok == v.Token) {
			return Version{}, overflow(v, "prerelease number")
		}
		if tok != "" {
			return ToPrerelease(v, tok), nil
		}
		if v.IsPrerelease() {
			return BumpPrerelease(v)
		}
		return ToPrerelease(v, DefaultToken), nil
	case BumpKindFinalize:
		return Finalize(v)
	default:
		return Version{}, newError(InvalidStateError, "unknown bump kind %q", kind)
	}
	if prerel {
		if tok == "" {
			tok = DefaultToken
		}
		next = ToPrerelease(next, tok)
	}
	return next, nil
}
