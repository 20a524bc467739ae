package musicdomain

import "fmt"

// Instrument is the role a musician plays within a band.
type Instrument string

const (
	InstrumentGuitar    Instrument = "GUITAR"
	InstrumentBass      Instrument = "BASS"
	InstrumentDrums     Instrument = "DRUMS"
	InstrumentVocals    Instrument = "VOCALS"
	InstrumentKeyboard  Instrument = "KEYBOARD"
	InstrumentViolin    Instrument = "VIOLIN"
	InstrumentSaxophone Instrument = "SAXOPHONE"
)

func Instruments() []Instrument {
	return []Instrument{
		InstrumentGuitar, InstrumentBass, InstrumentDrums, InstrumentVocals,
		InstrumentKeyboard, InstrumentViolin, InstrumentSaxophone,
	}
}

// IsValid checks if the instrument is a valid value.
func (i Instrument) IsValid() bool {
	switch i {
	case InstrumentGuitar, InstrumentBass, InstrumentDrums, InstrumentVocals,
		InstrumentKeyboard, InstrumentViolin, InstrumentSaxophone:
		return true
	default:
		return false
	}
}

func (i Instrument) String() string {
	return string(i)
}

// ParseInstrument converts an exact tag such as "GUITAR" into an Instrument.
func ParseInstrument(s string) (Instrument, error) {
	i := Instrument(s)
	if !i.IsValid() {
		return "", fmt.Errorf("invalid instrument %q", s)
	}
	return i, nil
}
