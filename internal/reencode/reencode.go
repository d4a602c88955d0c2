// Package reencode adapts the teacher's charset table into a concrete
// implementation of the commitgraph.Reencoder collaborator
// (transcode(bytes, from, to) from spec.md §6), used by the pretty printer
// whenever a commit's declared encoding differs from the requested output
// encoding.
package reencode

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

var encodings = map[string]encoding.Encoding{
	"iso-8859-2":   charmap.ISO8859_2,
	"iso-8859-3":   charmap.ISO8859_3,
	"iso-8859-4":   charmap.ISO8859_4,
	"iso-8859-5":   charmap.ISO8859_5,
	"iso-8859-6":   charmap.ISO8859_6,
	"iso-8859-7":   charmap.ISO8859_7,
	"iso-8859-8":   charmap.ISO8859_8,
	"iso-8859-8i":  charmap.ISO8859_8I,
	"iso-8859-10":  charmap.ISO8859_10,
	"iso-8859-13":  charmap.ISO8859_13,
	"iso-8859-14":  charmap.ISO8859_14,
	"iso-8859-15":  charmap.ISO8859_15,
	"iso-8859-16":  charmap.ISO8859_16,
	"koi8-r":       charmap.KOI8R,
	"koi8-u":       charmap.KOI8U,
	"windows-874":  charmap.Windows874,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"windows-1253": charmap.Windows1253,
	"windows-1254": charmap.Windows1254,
	"windows-1255": charmap.Windows1255,
	"windows-1256": charmap.Windows1256,
	"windows-1257": charmap.Windows1257,
	"windows-1258": charmap.Windows1258,
	"gbk":          simplifiedchinese.GBK,
	"gb18030":      simplifiedchinese.GB18030,
	"big5":         traditionalchinese.Big5,
	"euc-jp":       japanese.EUCJP,
	"iso-2022-jp":  japanese.ISO2022JP,
	"shift_jis":    japanese.ShiftJIS,
	"euc-kr":       korean.EUCKR,
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
}

const utf8Name = "utf-8"

// TextEncoder is the concrete Reencoder collaborator. The zero value is
// ready to use.
type TextEncoder struct{}

// Transcode converts buf from the charset named by from to the charset
// named by to. Either name empty or "utf-8" (case-insensitive) means
// UTF-8. If from == to (after normalization) buf is returned unchanged.
func (TextEncoder) Transcode(buf []byte, from, to string) ([]byte, error) {
	from = normalize(from)
	to = normalize(to)
	if from == to {
		return buf, nil
	}
	var utf8 []byte
	var err error
	if from == utf8Name {
		utf8 = buf
	} else {
		dec, ok := encodings[from]
		if !ok {
			return nil, fmt.Errorf("commitgraph: unrecognized source charset %q", from)
		}
		if utf8, err = dec.NewDecoder().Bytes(buf); err != nil {
			return nil, fmt.Errorf("commitgraph: decode from %q: %w", from, err)
		}
	}
	if to == utf8Name {
		return utf8, nil
	}
	enc, ok := encodings[to]
	if !ok {
		return nil, fmt.Errorf("commitgraph: unrecognized target charset %q", to)
	}
	out, err := enc.NewEncoder().Bytes(utf8)
	if err != nil {
		return nil, fmt.Errorf("commitgraph: encode to %q: %w", to, err)
	}
	return out, nil
}

func normalize(charset string) string {
	if charset == "" {
		return utf8Name
	}
	return strings.ToLower(charset)
}
