// Package magic identifies byte streams by their leading magic numbers and
// extracts header details for a few formats, reading the stream forward only.
package magic

import (
	"bytes"
	"context"
	"fmt"

	"github.com/authzed/readkit/internal/logging"
	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/source"
	"github.com/authzed/readkit/pkg/view"
)

// PrefixSize is the number of leading bytes inspected to identify a stream.
const PrefixSize = 32

// Matcher reports whether the leading bytes of a stream belong to a format. The
// prefix is shorter than PrefixSize if the stream is.
type Matcher func(prefix []byte) bool

// Extractor reads header details from a stream positioned at its first byte.
type Extractor func(ctx context.Context, c *cursor.Cursor[byte]) (map[string]any, error)

// A Tag describes how to recognize a file type.
type Tag struct {
	Name    string
	Mime    string
	Match   Matcher
	Extract Extractor
}

// Result is an identified stream.
type Result struct {
	Tag     Tag
	Details map[string]any
}

// Identify reads the start of c and returns the first tag in Tags that matches
// it, along with the details its extractor found. It returns (nil, nil) for an
// empty or unrecognized stream.
//
// If the tag has an extractor, c is read past the prefix as far as the
// extractor needs. A failing extractor returns the match together with the
// error.
func Identify(ctx context.Context, c *cursor.Cursor[byte]) (*Result, error) {
	prefix, ok, err := view.ReadBounded(ctx, c, 0, PrefixSize)
	if err != nil {
		return nil, fmt.Errorf("reading magic prefix: %w", err)
	}
	if !ok {
		return nil, nil
	}

	for _, tag := range Tags {
		if !tag.Match(prefix) {
			continue
		}

		result := &Result{Tag: tag}
		logging.Ctx(ctx).Debug().Str("mime", tag.Mime).Int("prefix", len(prefix)).Msg("identified stream")
		if tag.Extract == nil {
			return result, nil
		}

		// Replay the prefix so that extractors see the stream from its start.
		replay := cursor.New(source.Concat[byte](source.Bytes(prefix), c))
		details, err := tag.Extract(ctx, replay)
		if err != nil {
			return result, fmt.Errorf("extracting %s details: %w", tag.Name, err)
		}
		result.Details = details
		return result, nil
	}

	return nil, nil
}

func matchMagic(magic string, offset int) Matcher {
	return func(prefix []byte) bool {
		end := offset + len(magic)
		return len(prefix) >= end && string(prefix[offset:end]) == magic
	}
}

func matchRIFF(ident string) Matcher {
	riff, form := matchMagic("RIFF", 0), matchMagic(ident, 8)
	return func(prefix []byte) bool {
		return riff(prefix) && form(prefix)
	}
}

var jpegMagic = []string{
	"\xff\xd8\xff\xdb",
	"\xff\xd8\xff\xe0\x00\x10\x4a\x46\x49\x46\x00\x01", // JFIF
	"\xff\xd8\xff\xee",
	"\xff\xd8\xff\xe0",
	"\x00\x00\x00\x0c\x6a\x50\x20\x20\x0d\x0a\x87\x0a", // JPEG 2000
	"\xff\x4f\xff\x51",
}

func matchJPEG(prefix []byte) bool {
	for _, magic := range jpegMagic {
		if bytes.HasPrefix(prefix, []byte(magic)) {
			return true
		}
	}

	// EXIF
	return matchMagic("\xff\xd8\xff\xe1", 0)(prefix) && matchMagic("Exif\x00\x00", 6)(prefix)
}

// Tags is the identification table. Earlier entries take precedence, so
// specific formats precede the generic containers they are built on.
var Tags = []Tag{
	{Name: "Quite Ok Image (QOI) data", Mime: "image/x-qoi", Match: matchMagic("qoif", 0), Extract: ExtractQOI},
	{Name: "Quite Ok Audio (QOA) data", Mime: "audio/x-qoa", Match: matchMagic("qoaf", 0), Extract: ExtractQOA},
	{Name: "Paint.NET image", Mime: "image/x-paintnet", Match: matchMagic("PDN3", 0), Extract: ExtractPDN},
	{Name: "Waveform Audio file", Mime: "audio/wav", Match: matchRIFF("WAVE")},
	{Name: "Audio Video Interleave (AVI) file", Mime: "video/x-msvideo", Match: matchRIFF("AVI ")},
	{Name: "WebP image", Mime: "image/webp", Match: matchRIFF("WEBP")},
	{Name: "Generic RIFF container", Mime: "application/x-riff", Match: matchMagic("RIFF", 0)},
	{Name: "Compound File Binary Format", Mime: "application/x-ole-storage", Match: matchMagic("\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1", 0)},
	{Name: "Adobe Portable Document Format", Mime: "application/pdf", Match: matchMagic("%PDF-", 0)},
	{Name: "MZ Portable Executable", Mime: "application/x-msdownload", Match: matchMagic("MZ", 0)},
	{Name: "Windows Bitmap file", Mime: "image/bmp", Match: matchMagic("BM", 0)},
	{Name: "Adobe Photoshop Document", Mime: "image/vnd.adobe.photoshop", Match: matchMagic("8BPS", 0)},
	{Name: "Executable and Linkable Format", Mime: "application/x-executable", Match: matchMagic("\x7fELF", 0)},
	{Name: "ZIP compressed archive", Mime: "application/zip", Match: matchMagic("PK\x03\x04", 0)},
	{Name: "Portable Network Graphics (PNG) image", Mime: "image/png", Match: matchMagic("\x89PNG\r\n\x1a\n", 0)},
	{Name: "GZip compressed file", Mime: "application/gzip", Match: matchMagic("\x1f\x8b", 0)},
	{Name: "Roshal Archive (RAR) v1.5+", Mime: "application/x-rar-compressed", Match: matchMagic("Rar!\x1a\x07\x00", 0)},
	{Name: "Roshal Archive (RAR) v5.0+", Mime: "application/x-rar-compressed", Match: matchMagic("Rar!\x1a\x07\x01\x00", 0)},
	{Name: "Extended Module (XM)", Mime: "audio/x-xm", Match: matchMagic("Extended Module: ", 0)},
	{Name: "TrueType Font", Mime: "font/ttf", Match: matchMagic("\x00\x01\x00\x00\x00", 0)},
	{Name: "OpenType Font", Mime: "font/otf", Match: matchMagic("OTTO", 0)},
	{Name: "TIFF (little-endian)", Mime: "image/tiff", Match: matchMagic("II\x2a\x00", 0)},
	{Name: "TIFF (big-endian)", Mime: "image/tiff", Match: matchMagic("MM\x00\x2a", 0)},
	{Name: "Ogg Container", Mime: "application/ogg", Match: matchMagic("OggS", 0)},
	{Name: "Windows Icon", Mime: "image/x-icon", Match: matchMagic("\x00\x00\x01\x00", 0), Extract: ExtractICO},
	{Name: "Graphics Interchange Format (GIF) version 87", Mime: "image/gif", Match: matchMagic("GIF87a", 0)},
	{Name: "Graphics Interchange Format (GIF) version 89", Mime: "image/gif", Match: matchMagic("GIF89a", 0)},
	{Name: "Sphinx Objects Inventory version 2", Mime: "application/x-intersphinx", Match: matchMagic("# Sphinx inventory version 2", 0)},
	{Name: "JPEG image", Mime: "image/jpeg", Match: matchJPEG},
	{Name: "SQLite database file", Mime: "application/vnd.sqlite3", Match: matchMagic("SQLite format 3\x00", 0)},
}
