// Package sharelink builds and parses presently://sharing deep links.
package sharelink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/julianstephens/presently/internal/constants"
)

var (
	// ErrEmptyContent is returned when there is nothing to share
	ErrEmptyContent = errors.New("cannot share an empty entry")
	// ErrInvalidLink is returned by Parse for anything Build could not have produced
	ErrInvalidLink = errors.New("invalid share link")
)

// Build returns presently://sharing/{date}/{content}. Both segments are
// percent-encoded with spaces as %20.
func Build(date time.Time, content string) (string, error) {
	if content == "" {
		return "", ErrEmptyContent
	}
	return fmt.Sprintf("%s://%s/%s/%s",
		constants.ShareScheme,
		constants.ShareHost,
		escape(date.Format(constants.ShareDateLayout)),
		escape(content),
	), nil
}

// Parse reverses Build.
func Parse(link string) (time.Time, string, error) {
	prefix := constants.ShareScheme + "://" + constants.ShareHost + "/"
	if !strings.HasPrefix(link, prefix) {
		return time.Time{}, "", fmt.Errorf("%w: expected prefix %q", ErrInvalidLink, prefix)
	}

	segments := strings.Split(strings.TrimPrefix(link, prefix), "/")
	if len(segments) != 2 {
		return time.Time{}, "", fmt.Errorf("%w: expected date and content segments", ErrInvalidLink)
	}

	rawDate, err := url.PathUnescape(segments[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	date, err := time.Parse(constants.ShareDateLayout, rawDate)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}

	content, err := url.PathUnescape(segments[1])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if content == "" {
		return time.Time{}, "", ErrEmptyContent
	}
	return date, content, nil
}

// escape is QueryEscape with %20 for spaces, so "/" and every reserved character stay encoded.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
