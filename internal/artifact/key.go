package artifact

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the payload carried by an artifact file.
type Kind string

const (
	// KindText is the prompt text payload (.txt).
	KindText Kind = "txt"
	// KindAudio is the recorded waveform payload (.wav).
	KindAudio Kind = "wav"
)

const namePrefix = "script"

// Key is the logical identity of one artifact file: item number,
// submission date, and payload kind.
type Key struct {
	Num  int
	Date string // fixed-width YYYYMMDD
	Kind Kind
}

// Filename renders the canonical artifact filename for the key.
func (k Key) Filename() string {
	return fmt.Sprintf("%s%04d_%s.%s", namePrefix, k.Num, k.Date, k.Kind)
}

// Pair returns the text and audio keys sharing this key's num and date.
func (k Key) Pair() (Key, Key) {
	text := Key{Num: k.Num, Date: k.Date, Kind: KindText}
	audio := Key{Num: k.Num, Date: k.Date, Kind: KindAudio}
	return text, audio
}

// ParseName parses an artifact filename into a Key. Names that do not
// match the script{num:04d}_{date:YYYYMMDD}.{txt|wav} convention are not
// project artifacts; ok is false for those.
func ParseName(name string) (Key, bool) {
	base, ext, found := strings.Cut(name, ".")
	if !found {
		return Key{}, false
	}

	var kind Kind
	switch ext {
	case string(KindText):
		kind = KindText
	case string(KindAudio):
		kind = KindAudio
	default:
		return Key{}, false
	}

	if !strings.HasPrefix(base, namePrefix) {
		return Key{}, false
	}
	rest := base[len(namePrefix):]
	numField, dateField, found := strings.Cut(rest, "_")
	if !found {
		return Key{}, false
	}
	if len(numField) != 4 || !allDigits(numField) {
		return Key{}, false
	}
	if len(dateField) != 8 || !allDigits(dateField) {
		return Key{}, false
	}

	num, err := strconv.Atoi(numField)
	if err != nil {
		return Key{}, false
	}

	return Key{Num: num, Date: dateField, Kind: kind}, true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
