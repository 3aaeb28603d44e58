package magic

import (
	"context"
	"encoding/binary"
	"encoding/xml"
	"fmt"

	"github.com/ccoveille/go-safecast/v2"

	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/view"
)

const (
	qoiHeaderSize      = 14
	qoaFrameHeaderSize = 8
	qoaSamplesPerFrame = 256 * 20
	icoEntrySize       = 16

	// maxDescribedFrames caps how many QOA frame headers are described.
	maxDescribedFrames = 16

	maxPDNHeaderSize = 1 << 20
)

// readHeader reads exactly n bytes, treating an exhausted stream as truncated.
func readHeader(ctx context.Context, c *cursor.Cursor[byte], n int) ([]byte, error) {
	header, ok, err := view.ReadExactly(ctx, c, n)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &view.InsufficientElementsError{Minimum: n, Actual: 0}
	}
	return header, nil
}

// ExtractQOI reads the dimensions and color space of a Quite Ok Image.
func ExtractQOI(ctx context.Context, c *cursor.Cursor[byte]) (map[string]any, error) {
	header, err := readHeader(ctx, c, qoiHeaderSize)
	if err != nil {
		return nil, err
	}

	width := binary.BigEndian.Uint32(header[4:8])
	height := binary.BigEndian.Uint32(header[8:12])

	var csName string
	switch header[12] {
	case 3:
		csName = "RGB"
	case 4:
		csName = "RGBA"
	default:
		csName = "unknown color space"
	}

	var csKind string
	switch header[13] {
	case 0:
		csKind = "sRGB with linear alpha"
	case 1:
		csKind = "all channels linear"
	default:
		csKind = "unknown type"
	}

	return map[string]any{
		"size":       fmt.Sprintf("%dx%d pixels", width, height),
		"colorspace": fmt.Sprintf("%s (%s)", csName, csKind),
	}, nil
}

// ExtractQOA reads the sample count of a Quite Ok Audio file and describes its
// first frames, skipping over their encoded samples.
func ExtractQOA(ctx context.Context, c *cursor.Cursor[byte]) (map[string]any, error) {
	header, err := readHeader(ctx, c, 8)
	if err != nil {
		return nil, err
	}

	samples := binary.BigEndian.Uint32(header[4:8])
	total, err := safecast.Convert[int](samples)
	if err != nil {
		return nil, fmt.Errorf("converting sample count: %w", err)
	}
	frames := (total + qoaSamplesPerFrame - 1) / qoaSamplesPerFrame

	var described []string
	for range min(frames, maxDescribedFrames) {
		frame, err := readHeader(ctx, c, qoaFrameHeaderSize)
		if err != nil {
			return nil, fmt.Errorf("reading frame %d: %w", len(described), err)
		}

		channels := frame[0]
		sampleRate := uint32(frame[1])<<16 | uint32(frame[2])<<8 | uint32(frame[3])
		frameSamples := binary.BigEndian.Uint16(frame[4:6])
		frameSize := int(binary.BigEndian.Uint16(frame[6:8]))
		if frameSize < qoaFrameHeaderSize {
			return nil, fmt.Errorf("frame %d declares %d bytes, less than its header", len(described), frameSize)
		}

		payloadSize := frameSize - qoaFrameHeaderSize
		skipped, err := c.Discard(ctx, payloadSize)
		if err != nil {
			return nil, err
		}
		if skipped < payloadSize {
			return nil, fmt.Errorf("reading frame %d: %w", len(described), &view.InsufficientElementsError{Minimum: payloadSize, Actual: skipped})
		}

		described = append(described, fmt.Sprintf("%d channel(s) @ %d hz, %d sample(s) per channel", channels, sampleRate, frameSamples))
	}

	return map[string]any{
		"samples per channel": samples,
		"frame count":         frames,
		"frames":              described,
	}, nil
}

type icoEntry struct {
	width, height int
	colorCount    int
	planes        uint16
	bitCount      uint16
	size          uint32
	offset        uint32
}

func (e icoEntry) String() string {
	if e.colorCount == 0 {
		return fmt.Sprintf("%dx%d pixels, %d color plane(s), %d bpp, %d bytes at offset %d",
			e.width, e.height, e.planes, e.bitCount, e.size, e.offset)
	}
	return fmt.Sprintf("%dx%d pixels, %d color(s), %d color plane(s), %d bpp, %d bytes at offset %d",
		e.width, e.height, e.colorCount, e.planes, e.bitCount, e.size, e.offset)
}

// ExtractICO describes every image in the directory of a Windows icon file.
func ExtractICO(ctx context.Context, c *cursor.Cursor[byte]) (map[string]any, error) {
	header, err := readHeader(ctx, c, 6)
	if err != nil {
		return nil, err
	}

	count := int(binary.LittleEndian.Uint16(header[4:6]))
	icons := make([]string, 0, count)
	for i := range count {
		entry, ok, err := view.WithBounded(ctx, c, icoEntrySize, icoEntrySize, readICOEntry)
		if err != nil {
			return nil, fmt.Errorf("reading icon %d: %w", i, err)
		}
		if !ok {
			return nil, fmt.Errorf("reading icon %d: %w", i, &view.InsufficientElementsError{Minimum: icoEntrySize, Actual: 0})
		}
		icons = append(icons, entry.String())
	}

	return map[string]any{"icons": icons}, nil
}

func readICOEntry(ctx context.Context, v *view.BoundedView[byte]) (icoEntry, error) {
	raw := make([]byte, 0, icoEntrySize)
	for {
		b, ok, err := v.Next(ctx)
		if err != nil {
			return icoEntry{}, err
		}
		if !ok {
			break
		}
		raw = append(raw, b)
	}

	entry := icoEntry{
		width:      int(raw[0]),
		height:     int(raw[1]),
		colorCount: int(raw[2]),
		planes:     binary.LittleEndian.Uint16(raw[4:6]),
		bitCount:   binary.LittleEndian.Uint16(raw[6:8]),
		size:       binary.LittleEndian.Uint32(raw[8:12]),
		offset:     binary.LittleEndian.Uint32(raw[12:16]),
	}
	if entry.width == 0 {
		entry.width = 256
	}
	if entry.height == 0 {
		entry.height = 256
	}
	return entry, nil
}

type pdnHeader struct {
	Width   int    `xml:"width,attr"`
	Height  int    `xml:"height,attr"`
	Layers  int    `xml:"layers,attr"`
	Version string `xml:"savedWithVersion,attr"`
}

// ExtractPDN reads the XML header of a Paint.NET image.
func ExtractPDN(ctx context.Context, c *cursor.Cursor[byte]) (map[string]any, error) {
	header, err := readHeader(ctx, c, 7)
	if err != nil {
		return nil, err
	}

	size := int(header[4]) | int(header[5])<<8 | int(header[6])<<16
	if size > maxPDNHeaderSize {
		return nil, fmt.Errorf("header of %d bytes exceeds the maximum of %d", size, maxPDNHeaderSize)
	}

	raw, err := readHeader(ctx, c, size)
	if err != nil {
		return nil, err
	}

	var pdn pdnHeader
	if err := xml.Unmarshal(raw, &pdn); err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}

	return map[string]any{
		"size":               fmt.Sprintf("%dx%d pixels", pdn.Width, pdn.Height),
		"layers":             pdn.Layers,
		"saved with version": pdn.Version,
	}, nil
}
